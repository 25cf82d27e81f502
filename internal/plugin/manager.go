package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amytools-labs/amytools/internal/action"
	"github.com/amytools-labs/amytools/internal/hook"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/manifest"
	"github.com/amytools-labs/amytools/internal/metrics"
	"github.com/amytools-labs/amytools/internal/settings"
	"github.com/amytools-labs/amytools/internal/store"
	"go.uber.org/zap"
)

// Manager owns one extension's session state.
type Manager struct {
	ext         Extension
	host        *host.Host
	hostVersion string
	logger      *zap.Logger
	metrics     *metrics.Metrics

	store   *store.Store
	actions *action.Registry
	hooks   *hook.Hooks
	panel   *settings.Panel
	env     *Env

	// hostStorage is set when the configuration lives in the host's data
	// record.
	hostStorage bool

	// lifecycle serializes Activate and Deactivate.
	lifecycle sync.Mutex

	mu    sync.RWMutex
	state State
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	storage     store.Storage
	hostVersion string
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// WithStorage overrides the storage the configuration is persisted to. The
// default is the host's data record for the extension.
func WithStorage(s store.Storage) Option {
	return func(o *managerOptions) { o.storage = s }
}

// WithHostVersion sets the version checked against the manifest's
// minAppVersion. "dev" or empty skips the check.
func WithHostVersion(v string) Option {
	return func(o *managerOptions) { o.hostVersion = v }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *managerOptions) { o.logger = logger }
}

// WithMetrics records lifecycle activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *managerOptions) { o.metrics = m }
}

// NewManager creates an inactive manager for ext running inside h.
func NewManager(ext Extension, h *host.Host, opts ...Option) *Manager {
	o := managerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	id := ext.Manifest().ID
	hostStorage := o.storage == nil
	if hostStorage {
		o.storage = h.Storage(id)
	}
	logger := o.logger.With(zap.String("extension", id))

	m := &Manager{
		ext:         ext,
		host:        h,
		hostVersion: o.hostVersion,
		logger:      logger.With(zap.String("component", "plugin_manager")),
		metrics:     o.metrics,
		store:       store.New(o.storage, ext.DefaultSettings(), store.WithLogger(logger), store.WithMetrics(o.metrics)),
		actions:     action.NewRegistry(logger, o.metrics),
		hooks:       hook.New(logger, o.metrics),
		hostStorage: hostStorage,
	}
	m.panel = settings.NewPanel(m.store, ext.SettingDefinitions(), logger)
	m.env = &Env{Host: h, Store: m.store, Logger: logger}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()
	m.logger.Debug("state changed", zap.Stringer("from", prev), zap.Stringer("to", s))
}

// Activate loads the configuration, registers every command and attaches
// every hook. A load failure aborts activation and leaves the extension
// inactive. Command and hook failures are collected; the extension still
// becomes active and the returned error wraps ErrPartialActivation.
func (m *Manager) Activate(ctx context.Context) error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if s := m.State(); s != StateInactive {
		return fmt.Errorf("%w: cannot activate while %s", ErrInvalidState, s)
	}

	mf := m.ext.Manifest()
	if err := manifest.CheckCompatibility(mf, m.hostVersion); err != nil {
		return fmt.Errorf("activating %s: %w", mf.ID, err)
	}

	m.setState(StateActivating)

	if _, err := m.store.Load(ctx); err != nil {
		m.setState(StateInactive)
		m.logger.Error("activation aborted", zap.Error(err))
		return fmt.Errorf("activating %s: %w", mf.ID, err)
	}

	if m.hostStorage {
		if added, err := m.host.IgnoreData(mf.ID); err != nil {
			m.logger.Warn("could not update .gitignore", zap.Error(err))
		} else if added {
			m.logger.Info("data record added to .gitignore")
		}
	}

	var errs []error
	for _, a := range m.ext.Commands(m.env) {
		if a.Source == "" {
			a.Source = mf.ID
		}
		if err := m.actions.Register(a); err != nil {
			m.logger.Warn("command registration failed", zap.String("command", a.ID), zap.Error(err))
			errs = append(errs, err)
		}
	}

	for _, h := range m.ext.Hooks(m.env) {
		if _, err := m.hooks.Attach(h); err != nil {
			m.logger.Warn("hook attach failed", zap.Error(err))
			errs = append(errs, err)
		}
	}

	m.setState(StateActive)
	m.logger.Info("extension activated",
		zap.Int("commands", m.actions.Len()),
		zap.Int("hooks", m.hooks.Len()),
		zap.Int("failures", len(errs)))

	if len(errs) > 0 {
		return fmt.Errorf("activating %s: %w: %w", mf.ID, ErrPartialActivation, errors.Join(errs...))
	}
	return nil
}

// Deactivate releases every hook and waits for callbacks still running,
// clears the commands, waits for pending settings saves and runs the extension's own teardown. It is safe to call
// after a failed or partial activation and when already inactive. The
// returned error joins failed saves and teardown errors.
func (m *Manager) Deactivate(ctx context.Context) error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	wasActive := m.State() == StateActive
	m.setState(StateDeactivating)

	m.hooks.ReleaseAll()
	m.actions.Clear()

	var errs []error
	if err := m.hooks.Wait(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := m.panel.Wait(); err != nil {
		errs = append(errs, fmt.Errorf("pending settings saves: %w", err))
	}
	if u, ok := m.ext.(Unloader); ok && wasActive {
		if err := u.OnUnload(ctx, m.env); err != nil {
			errs = append(errs, fmt.Errorf("unloading: %w", err))
		}
	}

	m.setState(StateInactive)
	if wasActive {
		m.logger.Info("extension deactivated")
	}
	return errors.Join(errs...)
}

// Invoke runs a command by ID. See action.Registry.Invoke.
func (m *Manager) Invoke(ctx context.Context, id string) (bool, error) {
	if s := m.State(); s != StateActive {
		return false, fmt.Errorf("%w: %s is %s", ErrNotActive, m.ext.Manifest().ID, s)
	}
	return m.actions.Invoke(ctx, id)
}

// Commands returns every registered command sorted by name.
func (m *Manager) Commands() []action.Action { return m.actions.List() }

// Available returns the commands that can run now, for the palette.
func (m *Manager) Available() []action.Action { return m.actions.Available() }

// Panel returns the settings panel.
func (m *Manager) Panel() *settings.Panel { return m.panel }

// Store returns the configuration store.
func (m *Manager) Store() *store.Store { return m.store }

// HookCount returns the number of attached hooks.
func (m *Manager) HookCount() int { return m.hooks.Len() }

// Manifest returns the extension's manifest.
func (m *Manager) Manifest() *manifest.Manifest { return m.ext.Manifest() }

// Host returns the host the extension runs in.
func (m *Manager) Host() *host.Host { return m.host }
