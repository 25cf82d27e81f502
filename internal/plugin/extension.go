package plugin

import (
	"context"

	"github.com/amytools-labs/amytools/internal/action"
	"github.com/amytools-labs/amytools/internal/hook"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/manifest"
	"github.com/amytools-labs/amytools/internal/settings"
	"github.com/amytools-labs/amytools/internal/store"
	"go.uber.org/zap"
)

// Extension declares what an extension contributes. The Manager decides
// when each contribution is installed.
type Extension interface {
	Manifest() *manifest.Manifest
	DefaultSettings() store.Configuration
	SettingDefinitions() []settings.Definition
	Commands(env *Env) []action.Action
	Hooks(env *Env) []hook.Hook
}

// Unloader is implemented by extensions with extra teardown.
type Unloader interface {
	OnUnload(ctx context.Context, env *Env) error
}

// Env is what an extension sees of the running session.
type Env struct {
	Host   *host.Host
	Store  *store.Store
	Logger *zap.Logger
}

// Setting returns the live value of key.
func (e *Env) Setting(key string) string {
	return e.Store.Get(key)
}
