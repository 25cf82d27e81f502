//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amytools-labs/amytools/internal/amytools"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/ui"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir  string // HOME, holds ~/.amytools/config.yaml
	VaultDir string // AMYTOOLS_VAULT, the vault the extension runs against
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all amytools operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		VaultDir: t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("AMYTOOLS_VAULT", env.VaultDir)

	writeFile(t, filepath.Join(env.VaultDir, "Daily", "today.md"), "# Today\n\n- [ ] water the garden\n")
	return env
}

// session is an activated extension with dialogs captured by a recorder.
type session struct {
	Host    *host.Host
	Manager *plugin.Manager
	Dialogs *ui.Recorder
}

// startSession activates the bundled extension over the vault.
func startSession(t *testing.T, env *testEnv) *session {
	t.Helper()

	ext, err := amytools.New(amytools.Options{})
	if err != nil {
		t.Fatalf("amytools.New: %v", err)
	}
	rec := &ui.Recorder{}
	h := host.New(env.VaultDir, host.WithPresenter(rec))
	m := plugin.NewManager(ext, h, plugin.WithHostVersion("1.4.0"))
	if err := m.Activate(context.Background()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return &session{Host: h, Manager: m, Dialogs: rec}
}

// stop deactivates the session and fails the test on error.
func (s *session) stop(t *testing.T) {
	t.Helper()
	if err := s.Manager.Deactivate(context.Background()); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
