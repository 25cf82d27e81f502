package amytools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amytools-labs/amytools/internal/ftp"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/password"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/project"
	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type session struct {
	host    *host.Host
	manager *plugin.Manager
	dialogs *ui.Recorder
	logs    *observer.ObservedLogs
}

func start(t *testing.T, opts Options) *session {
	t.Helper()
	ext, err := New(opts)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	rec := &ui.Recorder{}
	h := host.New(t.TempDir(), host.WithPresenter(rec))
	m := plugin.NewManager(ext, h, plugin.WithLogger(zap.New(core)), plugin.WithHostVersion("1.4.0"))
	require.NoError(t, m.Activate(context.Background()))
	t.Cleanup(func() { _ = m.Deactivate(context.Background()) })
	return &session{host: h, manager: m, dialogs: rec, logs: logs}
}

func TestManifest(t *testing.T) {
	m, err := Manifest()
	require.NoError(t, err)
	assert.Equal(t, "amytools", m.ID)
	assert.Equal(t, "0.15.0", m.MinAppVersion)
}

func TestContributions(t *testing.T) {
	s := start(t, Options{})

	names := map[string]string{}
	for _, a := range s.manager.Commands() {
		names[a.ID] = a.Name
	}
	assert.Equal(t, map[string]string{
		CmdCreateProject: "Create project",
		CmdOpenFTP:       "Open Ftp",
		CmdPassword:      "Create a random password",
		CmdSampleModal:   "Open sample modal (complex)",
	}, names)

	ribbon := s.host.RibbonItems()
	require.Len(t, ribbon, 1)
	assert.Equal(t, RibbonIcon, ribbon[0].Icon)
	assert.Equal(t, RibbonTitle, ribbon[0].Title)
	assert.Equal(t, []string{RibbonClass}, ribbon[0].Classes())

	status := s.host.StatusItems()
	require.Len(t, status, 1)
	assert.Equal(t, StatusText, status[0].Text())

	fields := s.manager.Panel().Render(s.manager.Store().Snapshot())
	require.Len(t, fields, 1)
	assert.Equal(t, "Setting #1", fields[0].Label)
	assert.Equal(t, "It's a secret", fields[0].Description)
	assert.Equal(t, "Enter your secret", fields[0].Placeholder)
	assert.Equal(t, "default", fields[0].Value)
}

func TestRibbonClickShowsNotice(t *testing.T) {
	s := start(t, Options{})
	require.NoError(t, s.host.ClickRibbon(RibbonIcon))
	assert.Equal(t, []string{RibbonNotice}, s.host.Notices())

	require.NoError(t, s.manager.Deactivate(context.Background()))
	assert.Empty(t, s.host.RibbonItems(), "ribbon icon removed on deactivation")
	assert.Empty(t, s.host.StatusItems(), "status item removed on deactivation")
}

func TestClickIsLogged(t *testing.T) {
	s := start(t, Options{})
	s.host.Click(10, 20)
	entries := s.logs.FilterMessage("click").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].ContextMap()["x"])
}

func TestIntervalTicks(t *testing.T) {
	s := start(t, Options{Interval: time.Millisecond})
	require.Eventually(t, func() bool {
		return s.logs.FilterMessage("setInterval").Len() > 0
	}, time.Second, time.Millisecond)
}

func TestSampleModalGatedOnMarkdown(t *testing.T) {
	s := start(t, Options{})
	ctx := context.Background()

	ran, err := s.manager.Invoke(ctx, CmdSampleModal)
	require.NoError(t, err)
	assert.False(t, ran, "no active markdown view")
	assert.Nil(t, s.dialogs.Last())

	note := filepath.Join(s.host.Root(), "idea.md")
	require.NoError(t, os.WriteFile(note, []byte("# Idea\n\nA **bold** plan.\n"), 0o644))
	require.NoError(t, s.host.OpenFile("idea.md"))

	ran, err = s.manager.Invoke(ctx, CmdSampleModal)
	require.NoError(t, err)
	assert.True(t, ran)
	modal, ok := s.dialogs.Last().(*SampleModal)
	require.True(t, ok)
	assert.Equal(t, "Add New Project", modal.Title())
	assert.Contains(t, modal.Render(), "idea.md")
	assert.Contains(t, modal.Render(), "plan")
}

func TestCreateProjectCommand(t *testing.T) {
	s := start(t, Options{})
	ran, err := s.manager.Invoke(context.Background(), CmdCreateProject)
	require.NoError(t, err)
	require.True(t, ran)

	d, ok := s.dialogs.Last().(*project.Dialog)
	require.True(t, ok)
	d.Form().SetValue(0, "moon base")
	d.Form().Submit()
	require.True(t, d.Done())

	_, err = os.Stat(filepath.Join(s.host.Root(), "Projects", "Moon Base.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Project created: " + filepath.Join("Projects", "Moon Base.md")}, s.host.Notices())
}

func TestOpenFTPCommand(t *testing.T) {
	s := start(t, Options{})
	ran, err := s.manager.Invoke(context.Background(), CmdOpenFTP)
	require.NoError(t, err)
	require.True(t, ran)

	d, ok := s.dialogs.Last().(*ftp.Dialog)
	require.True(t, ok)
	d.Form().SetValue(0, "ftp.example.com")
	d.Form().Submit()
	require.True(t, d.Done())
	assert.Equal(t, "ftp.example.com", s.manager.Store().Get(ftp.KeyHost))
	assert.Equal(t, "default", s.manager.Store().Get(KeySecret))
}

func TestPasswordCommand(t *testing.T) {
	s := start(t, Options{Password: password.Options{Length: 24, Digits: true}})
	ran, err := s.manager.Invoke(context.Background(), CmdPassword)
	require.NoError(t, err)
	require.True(t, ran)

	d, ok := s.dialogs.Last().(*password.Dialog)
	require.True(t, ok)
	assert.Len(t, d.Password(), 24)
}

func TestSettingPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	ext, err := New(Options{})
	require.NoError(t, err)
	h := host.New(t.TempDir())

	m := plugin.NewManager(ext, h)
	require.NoError(t, m.Activate(ctx))
	for _, v := range []string{"h", "hu", "hunter2"} {
		require.NoError(t, m.Panel().OnFieldChange(ctx, KeySecret, v))
	}
	require.NoError(t, m.Deactivate(ctx))

	m2 := plugin.NewManager(ext, h)
	require.NoError(t, m2.Activate(ctx))
	defer m2.Deactivate(ctx)
	assert.Equal(t, "hunter2", m2.Store().Get(KeySecret))
}
