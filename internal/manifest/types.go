package manifest

// Manifest identifies an extension and the host versions it supports.
type Manifest struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	Version       string `yaml:"version" json:"version"`
	MinAppVersion string `yaml:"minAppVersion" json:"minAppVersion"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	Author        string `yaml:"author,omitempty" json:"author,omitempty"`
	AuthorURL     string `yaml:"authorUrl,omitempty" json:"authorUrl,omitempty"`
	FundingURL    string `yaml:"fundingUrl,omitempty" json:"fundingUrl,omitempty"`
	IsDesktopOnly bool   `yaml:"isDesktopOnly,omitempty" json:"isDesktopOnly,omitempty"`
}
