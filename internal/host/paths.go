package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/amytools-labs/amytools/internal/branding"
)

// Directory and file names inside a vault.
const (
	PluginsDir = "plugins"
	DataFile   = "data.yaml"
)

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// ConfigDir returns <vault>/.amytools.
func (h *Host) ConfigDir() string {
	return filepath.Join(h.root, branding.HomeDir())
}

// PluginDir returns the directory holding one extension's files.
func (h *Host) PluginDir(pluginID string) string {
	return filepath.Join(h.ConfigDir(), PluginsDir, pluginID)
}

// DataPath returns the path of an extension's persisted data record.
func (h *Host) DataPath(pluginID string) string {
	return filepath.Join(h.PluginDir(pluginID), DataFile)
}

// resolve makes path absolute relative to the vault root.
func (h *Host) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(h.root, path)
}

// Rel returns path relative to the vault root, or path unchanged when it
// lies outside the vault.
func (h *Host) Rel(path string) string {
	rel, err := filepath.Rel(h.root, h.resolve(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
