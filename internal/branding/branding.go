// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with go:embed and overlaid on the hard defaults
// below, so a fork only edits the YAML file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	HostVersion string `yaml:"host_version"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "amytools",
			DisplayName: "amytools",
			Description: "Terminal host for the amytools note vault extension",
			HomeDir:     ".amytools",
			EnvPrefix:   "AMYTOOLS",
			GoModule:    "github.com/amytools-labs/amytools",
			HostVersion: "1.4.0",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "amytools").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name used under $HOME and inside a vault
// (e.g., ".amytools").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AMYTOOLS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// HostVersion returns the host API version that extension manifests are
// checked against (minAppVersion).
func HostVersion() string { load(); return defaults.HostVersion }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("VAULT") → "AMYTOOLS_VAULT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
