package host

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/amytools-labs/amytools/internal/branding"
)

// gitignoreLine returns the vault-relative ignore rule for an extension's
// data record.
func gitignoreLine(pluginID string) string {
	return "/" + filepath.ToSlash(filepath.Join(branding.HomeDir(), PluginsDir, pluginID, DataFile))
}

// IgnoreData adds the extension's data record to the vault's .gitignore so
// settings are not committed. Vaults that are not git repositories are left
// alone. If the line already exists, this is a no-op.
func (h *Host) IgnoreData(pluginID string) (bool, error) {
	if _, err := os.Stat(filepath.Join(h.root, ".git")); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	gitignorePath := filepath.Join(h.root, ".gitignore")
	line := gitignoreLine(pluginID)

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("reading .gitignore: %w", err)
	}

	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == line {
			return false, nil
		}
	}

	// Ensure there's a newline before our addition.
	suffix := line + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePerm)
	if err != nil {
		return false, fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return false, fmt.Errorf("writing to .gitignore: %w", err)
	}
	return true, nil
}
