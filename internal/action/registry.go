package action

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/amytools-labs/amytools/internal/metrics"
	"go.uber.org/zap"
)

type entry struct {
	action Action

	// running serializes invocations of the same action.
	running sync.Mutex
}

// Registry holds the actions registered in the current session.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates an empty registry. logger and m may be nil.
func NewRegistry(logger *zap.Logger, m *metrics.Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]*entry),
		logger:  logger.With(zap.String("component", "action_registry")),
		metrics: m,
	}
}

// Register adds a. The ID must be unique within the session; a duplicate is
// rejected and the first registration stays in place.
func (r *Registry) Register(a Action) error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidAction)
	case a.Name == "":
		return fmt.Errorf("%w: %q has no name", ErrInvalidAction, a.ID)
	case a.Run == nil:
		return fmt.Errorf("%w: %q has no callback", ErrInvalidAction, a.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[a.ID]; ok {
		return fmt.Errorf("%w: %q (registered as %q)", ErrDuplicateAction, a.ID, existing.action.Name)
	}
	r.entries[a.ID] = &entry{action: a}
	r.logger.Debug("action registered", zap.String("id", a.ID), zap.String("name", a.Name))
	return nil
}

// Invoke runs the action with the given ID. When its availability check
// fails the call does nothing and reports ran=false with a nil error.
func (r *Registry) Invoke(ctx context.Context, id string) (ran bool, err error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrActionNotFound, id)
	}

	e.running.Lock()
	defer e.running.Unlock()

	if !e.action.IsAvailable() {
		r.metrics.ActionSkipped(id)
		r.logger.Debug("action unavailable, skipped", zap.String("id", id))
		return false, nil
	}

	r.metrics.ActionInvoked(id)
	r.logger.Debug("invoking action", zap.String("id", id))
	if err := e.action.Run(ctx); err != nil {
		return true, fmt.Errorf("action %q: %w", id, err)
	}
	return true, nil
}

// Get returns the action with the given ID.
func (r *Registry) Get(id string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Action{}, false
	}
	return e.action, true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// List returns every registered action sorted by name.
func (r *Registry) List() []Action {
	r.mu.RLock()
	result := make([]Action, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.action)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Available returns the actions whose availability check passes now, sorted
// by name.
func (r *Registry) Available() []Action {
	all := r.List()
	result := all[:0]
	for _, a := range all {
		if a.IsAvailable() {
			result = append(result, a)
		}
	}
	return result
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear drops every action, ending the session.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := len(r.entries)
	r.entries = make(map[string]*entry)
	r.mu.Unlock()
	r.logger.Debug("actions cleared", zap.Int("count", n))
}
