package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/amytools-labs/amytools/internal/metrics"
	"go.uber.org/zap"
)

// Storage is the host's persistence for one extension's data record.
type Storage interface {
	// LoadData returns the persisted record, or nil with no error when
	// nothing has been saved yet.
	LoadData(ctx context.Context) (map[string]string, error)

	// SaveData replaces the persisted record.
	SaveData(ctx context.Context, data map[string]string) error
}

// Store owns the live Configuration.
type Store struct {
	storage  Storage
	defaults Configuration
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	current Configuration
	seq     uint64

	writeMu sync.Mutex
	written uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records save outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store over storage. Until Load is called the live
// configuration is a copy of defaults.
func New(storage Storage, defaults Configuration, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		defaults: defaults.Clone(),
		logger:   zap.NewNop(),
		current:  defaults.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "config_store"))
	return s
}

// Defaults returns a copy of the built-in defaults.
func (s *Store) Defaults() Configuration {
	return s.defaults.Clone()
}

// Load reads the persisted record and overlays it onto the defaults. A
// missing record is the normal first-run case and yields the defaults.
func (s *Store) Load(ctx context.Context) (Configuration, error) {
	data, err := s.storage.LoadData(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cfg := Merge(s.defaults, data)

	s.mu.Lock()
	s.current = cfg
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	// What was just read is what storage holds.
	s.writeMu.Lock()
	if seq > s.written {
		s.written = seq
	}
	s.writeMu.Unlock()

	s.logger.Debug("configuration loaded", zap.Int("keys", len(cfg)), zap.Bool("persisted", data != nil))
	return cfg.Clone(), nil
}

// Save replaces the live configuration with cfg (defaults fill any missing
// key) and persists it. Storage failures are returned, not retried.
func (s *Store) Save(ctx context.Context, cfg Configuration) error {
	s.mu.Lock()
	s.current = Merge(s.defaults, cfg)
	s.seq++
	s.mu.Unlock()

	return s.flush(ctx)
}

// Set updates one key and persists the whole configuration. If the save
// fails the in-memory value is kept and the error is returned; memory and
// storage stay diverged until the next successful save.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.current[key] = value
	s.seq++
	s.mu.Unlock()

	if err := s.flush(ctx); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Update applies fn to the live configuration and persists the result.
// fn runs under the store lock, so no concurrent Set can be lost between
// reading and writing. Keys fn deletes fall back to their defaults.
func (s *Store) Update(ctx context.Context, fn func(Configuration)) error {
	s.mu.Lock()
	next := s.current.Clone()
	fn(next)
	s.current = Merge(s.defaults, next)
	s.seq++
	s.mu.Unlock()

	return s.flush(ctx)
}

// Get returns the live value for key.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current[key]
}

// Snapshot returns a copy of the live configuration.
func (s *Store) Snapshot() Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// flush persists the newest snapshot unless a newer or equal one has already
// been written.
func (s *Store) flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	seq := s.seq
	snapshot := s.current.Clone()
	s.mu.Unlock()

	if seq <= s.written {
		s.metrics.ConfigSave("superseded")
		s.logger.Debug("save superseded", zap.Uint64("seq", seq), zap.Uint64("written", s.written))
		return nil
	}

	if err := s.storage.SaveData(ctx, snapshot); err != nil {
		s.metrics.ConfigSave("error")
		s.logger.Warn("save failed", zap.Uint64("seq", seq), zap.Error(err))
		return fmt.Errorf("saving configuration: %w", err)
	}

	s.written = seq
	s.metrics.ConfigSave("ok")
	s.logger.Debug("configuration saved", zap.Uint64("seq", seq))
	return nil
}
