//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amytools-labs/amytools/internal/amytools"
	"github.com/amytools-labs/amytools/internal/ftp"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/project"
)

// TestFullLifecycle walks one vault through two sessions:
// activate -> change settings -> use every command -> deactivate -> reactivate.
func TestFullLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	dataFile := filepath.Join(env.VaultDir, ".amytools", "plugins", "amytools", "data.yaml")

	// Step 1: first activation on an empty vault uses the defaults and
	// writes nothing.
	s := startSession(t, env)
	if got := s.Manager.Store().Get(amytools.KeySecret); got != "default" {
		t.Fatalf("mySetting = %q, want default", got)
	}
	assertFileNotExists(t, dataFile)

	// Step 2: a burst of keystrokes in the settings pane persists the last one.
	for _, v := range []string{"s", "se", "sec", "secret"} {
		if err := s.Manager.Panel().OnFieldChange(ctx, amytools.KeySecret, v); err != nil {
			t.Fatalf("OnFieldChange: %v", err)
		}
	}
	if err := s.Manager.Panel().Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	assertFileExists(t, dataFile)
	assertFileContains(t, dataFile, "mySetting: secret")

	// Step 3: create a project through its dialog.
	if _, err := s.Manager.Invoke(ctx, amytools.CmdCreateProject); err != nil {
		t.Fatalf("Invoke %s: %v", amytools.CmdCreateProject, err)
	}
	pd, ok := s.Dialogs.Last().(*project.Dialog)
	if !ok {
		t.Fatalf("expected project dialog, got %T", s.Dialogs.Last())
	}
	pd.Form().SetValue(0, "garden plan")
	pd.Form().SetValue(1, "Beds and seeds")
	pd.Form().Submit()
	assertFileContains(t, filepath.Join(env.VaultDir, "Projects", "Garden Plan.md"), "description: Beds and seeds")

	// Step 4: save an FTP profile; the secret must survive the write.
	if _, err := s.Manager.Invoke(ctx, amytools.CmdOpenFTP); err != nil {
		t.Fatalf("Invoke %s: %v", amytools.CmdOpenFTP, err)
	}
	fd := s.Dialogs.Last().(*ftp.Dialog)
	fd.Form().SetValue(0, "ftp.example.com")
	fd.Form().SetValue(1, "2121")
	fd.Form().Submit()
	if !fd.Done() {
		t.Fatalf("ftp dialog still open: %s", fd.Form().Err())
	}
	assertFileContains(t, dataFile, "ftpPort: \"2121\"")
	assertFileContains(t, dataFile, "mySetting: secret")

	// Step 5: the sample modal appears only once a markdown note is open.
	if ran, err := s.Manager.Invoke(ctx, amytools.CmdSampleModal); err != nil || ran {
		t.Fatalf("sample modal without a note: ran=%v err=%v", ran, err)
	}
	if err := s.Host.OpenFile(filepath.Join("Daily", "today.md")); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if ran, err := s.Manager.Invoke(ctx, amytools.CmdSampleModal); err != nil || !ran {
		t.Fatalf("sample modal with a note: ran=%v err=%v", ran, err)
	}

	// Step 6: deactivate; the ribbon and status bar are cleaned up.
	s.Dialogs.CloseAll()
	s.stop(t)
	if n := len(s.Host.RibbonItems()); n != 0 {
		t.Errorf("ribbon items after deactivation: %d", n)
	}
	if n := len(s.Host.StatusItems()); n != 0 {
		t.Errorf("status items after deactivation: %d", n)
	}
	if _, err := s.Manager.Invoke(ctx, amytools.CmdPassword); !errors.Is(err, plugin.ErrNotActive) {
		t.Errorf("invoke after deactivation: %v", err)
	}

	// Step 7: a new session sees everything persisted.
	s2 := startSession(t, env)
	defer s2.stop(t)
	if got := s2.Manager.Store().Get(amytools.KeySecret); got != "secret" {
		t.Errorf("mySetting after restart = %q, want secret", got)
	}
	if got := s2.Manager.Store().Get(ftp.KeyHost); got != "ftp.example.com" {
		t.Errorf("ftpHost after restart = %q", got)
	}
}

// TestCorruptDataAbortsActivation checks that a data record that cannot be
// parsed stops activation instead of silently resetting to defaults.
func TestCorruptDataAbortsActivation(t *testing.T) {
	env := setupTestEnv(t)
	dataFile := filepath.Join(env.VaultDir, ".amytools", "plugins", "amytools", "data.yaml")
	writeFile(t, dataFile, "mySetting: [unterminated\n")

	ext, err := amytools.New(amytools.Options{})
	if err != nil {
		t.Fatal(err)
	}
	m := plugin.NewManager(ext, host.New(env.VaultDir))
	if err := m.Activate(context.Background()); err == nil {
		t.Fatal("expected activation to fail on a corrupt record")
	}
	if m.State() != plugin.StateInactive {
		t.Errorf("state = %s, want inactive", m.State())
	}
	if len(m.Commands()) != 0 {
		t.Errorf("commands registered after aborted activation: %d", len(m.Commands()))
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mySetting: [unterminated\n" {
		t.Errorf("corrupt record was overwritten: %q", data)
	}
}
