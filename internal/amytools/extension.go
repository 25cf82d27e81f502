package amytools

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/amytools-labs/amytools/internal/action"
	"github.com/amytools-labs/amytools/internal/event"
	"github.com/amytools-labs/amytools/internal/ftp"
	"github.com/amytools-labs/amytools/internal/hook"
	"github.com/amytools-labs/amytools/internal/manifest"
	"github.com/amytools-labs/amytools/internal/password"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/project"
	"github.com/amytools-labs/amytools/internal/settings"
	"github.com/amytools-labs/amytools/internal/store"
	"go.uber.org/zap"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Command IDs.
const (
	CmdCreateProject = "project-ultra-create"
	CmdOpenFTP       = "open-ftp"
	CmdPassword      = "create-password"
	CmdSampleModal   = "open-sample-modal-complex"
)

// Ribbon and status bar contributions.
const (
	RibbonIcon   = "dice"
	RibbonTitle  = "amytools"
	RibbonClass  = "my-plugin-ribbon-class"
	RibbonNotice = "Project Plugin of Obsidian"
	StatusText   = "Status Bar Text"
)

// KeySecret is the only user-facing setting.
const KeySecret = "mySetting"

// DefaultInterval is how often the timer hook ticks.
const DefaultInterval = 5 * time.Minute

// Manifest parses the embedded manifest.
func Manifest() (*manifest.Manifest, error) {
	return manifest.Parse(manifestYAML)
}

// ManifestYAML returns the embedded manifest source.
func ManifestYAML() []byte {
	return append([]byte(nil), manifestYAML...)
}

// Options tunes the extension.
type Options struct {
	// Interval is the timer hook period. Zero means DefaultInterval.
	Interval time.Duration

	// Password configures the create-password command.
	Password password.Options
}

// Extension implements plugin.Extension.
type Extension struct {
	manifest *manifest.Manifest
	opts     Options
}

// New builds the extension.
func New(opts Options) (*Extension, error) {
	m, err := Manifest()
	if err != nil {
		return nil, fmt.Errorf("bundled manifest: %w", err)
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Password == (password.Options{}) {
		opts.Password = password.DefaultOptions()
	}
	return &Extension{manifest: m, opts: opts}, nil
}

func (e *Extension) Manifest() *manifest.Manifest { return e.manifest }

func (e *Extension) DefaultSettings() store.Configuration {
	return store.Configuration{KeySecret: "default"}
}

func (e *Extension) SettingDefinitions() []settings.Definition {
	return []settings.Definition{{
		Key:         KeySecret,
		Label:       "Setting #1",
		Description: "It's a secret",
		Placeholder: "Enter your secret",
		Default:     "default",
		Secret:      true,
	}}
}

func (e *Extension) Commands(env *plugin.Env) []action.Action {
	h := env.Host
	return []action.Action{
		{
			ID:   CmdCreateProject,
			Name: "Create project",
			Icon: "folder-plus",
			Run: func(ctx context.Context) error {
				d := project.NewDialog(h.Root())
				d.OnCreated = func(path string) {
					h.Notice("Project created: " + h.Rel(path))
				}
				return h.OpenDialog(ctx, d)
			},
		},
		{
			ID:   CmdOpenFTP,
			Name: "Open Ftp",
			Icon: "server",
			Run: func(ctx context.Context) error {
				return h.OpenDialog(ctx, ftp.NewDialog(ctx, env.Store))
			},
		},
		{
			ID:   CmdPassword,
			Name: "Create a random password",
			Icon: "key",
			Run: func(ctx context.Context) error {
				return h.OpenDialog(ctx, password.NewDialog(e.opts.Password))
			},
		},
		{
			ID:   CmdSampleModal,
			Name: "Open sample modal (complex)",
			Run: func(ctx context.Context) error {
				view, ok := h.ActiveMarkdown()
				if !ok {
					return nil
				}
				return h.OpenDialog(ctx, NewSampleModal(h.Rel(view.Path), view.Content))
			},
			Available: func() bool {
				_, ok := h.ActiveMarkdown()
				return ok
			},
		},
	}
}

func (e *Extension) Hooks(env *plugin.Env) []hook.Hook {
	h := env.Host
	logger := env.Logger
	return []hook.Hook{
		hook.Func{
			Name: "ribbon",
			Fn: func(guard hook.Guard) (func(), error) {
				item := h.AddRibbonIcon(RibbonIcon, RibbonTitle, func() {
					guard(func() { h.Notice(RibbonNotice) })
				})
				item.AddClass(RibbonClass)
				return item.Remove, nil
			},
		},
		hook.Func{
			Name: "status-bar",
			Fn: func(hook.Guard) (func(), error) {
				item := h.AddStatusBarItem()
				item.SetText(StatusText)
				return item.Remove, nil
			},
		},
		hook.EventTap{
			Source: h.Events(),
			Name:   event.Click,
			Fn: func(ev event.Event) {
				logger.Info("click", zap.Int("x", ev.X), zap.Int("y", ev.Y))
			},
		},
		hook.Interval{
			Every: e.opts.Interval,
			Fn: func(t time.Time) {
				logger.Info("setInterval", zap.Time("at", t))
			},
		},
	}
}

var _ plugin.Extension = (*Extension)(nil)
