package hook

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/amytools-labs/amytools/internal/metrics"
	"go.uber.org/zap"
)

// Handle is the cancellation capability for one attached hook.
type Handle struct {
	id   uint64
	kind string

	// mu orders the guard's liveness check against Release.
	mu     sync.RWMutex
	alive  atomic.Bool
	once   sync.Once
	cancel func()
	owner  *Hooks
}

// Kind returns the hook kind.
func (h *Handle) Kind() string { return h.kind }

// Active reports whether the hook has not been released.
func (h *Handle) Active() bool { return h.alive.Load() }

// Release cancels the hook. Safe to call any number of times, including
// from the hook's own callback. When Release returns no new callback body
// can start; bodies already running are tracked by Hooks.Wait.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.mu.Lock()
		h.alive.Store(false)
		h.mu.Unlock()
		if h.cancel != nil {
			h.cancel()
		}
		h.owner.forget(h)
		h.owner.metrics.HookReleased()
		h.owner.logger.Debug("hook released", zap.String("kind", h.kind), zap.Uint64("id", h.id))
	})
}

// Hooks tracks every hook attached during a session.
type Hooks struct {
	mu      sync.Mutex
	next    uint64
	handles map[uint64]*Handle
	running int
	idle    chan struct{}

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates an empty collection. logger and m may be nil.
func New(logger *zap.Logger, m *metrics.Metrics) *Hooks {
	if logger == nil {
		logger = zap.NewNop()
	}
	idle := make(chan struct{})
	close(idle)
	return &Hooks{
		handles: make(map[uint64]*Handle),
		idle:    idle,
		logger:  logger.With(zap.String("component", "lifecycle_hooks")),
		metrics: m,
	}
}

// Attach installs h and returns its handle.
func (hs *Hooks) Attach(h Hook) (*Handle, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil hook", ErrInvalidHook)
	}

	hs.mu.Lock()
	hs.next++
	handle := &Handle{id: hs.next, kind: h.Kind(), owner: hs}
	hs.mu.Unlock()
	handle.alive.Store(true)

	guard := func(body func()) {
		handle.mu.RLock()
		if !handle.alive.Load() {
			handle.mu.RUnlock()
			hs.metrics.HookFire(handle.kind, false)
			return
		}
		hs.enter()
		handle.mu.RUnlock()
		defer hs.exit()

		hs.metrics.HookFire(handle.kind, true)
		body()
	}

	cancel, err := h.Install(guard)
	if err != nil {
		handle.alive.Store(false)
		return nil, fmt.Errorf("attaching %s hook: %w", handle.kind, err)
	}
	handle.cancel = cancel

	hs.mu.Lock()
	hs.handles[handle.id] = handle
	hs.mu.Unlock()

	hs.metrics.HookAttached()
	hs.logger.Debug("hook attached", zap.String("kind", handle.kind), zap.Uint64("id", handle.id))
	return handle, nil
}

// ReleaseAll releases every attached hook. Hooks released individually
// beforehand are skipped; calling ReleaseAll again is a no-op.
func (hs *Hooks) ReleaseAll() {
	hs.mu.Lock()
	handles := make([]*Handle, 0, len(hs.handles))
	for _, h := range hs.handles {
		handles = append(handles, h)
	}
	hs.mu.Unlock()

	for _, h := range handles {
		h.Release()
	}
	if len(handles) > 0 {
		hs.logger.Debug("hooks released", zap.Int("count", len(handles)))
	}
}

// Wait blocks until no callback body is running or ctx ends. Call it after
// ReleaseAll to be sure every body has returned. It must not be called from
// inside a hook callback.
func (hs *Hooks) Wait(ctx context.Context) error {
	hs.mu.Lock()
	idle := hs.idle
	hs.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for hook callbacks: %w", ctx.Err())
	}
}

func (hs *Hooks) enter() {
	hs.mu.Lock()
	if hs.running == 0 {
		hs.idle = make(chan struct{})
	}
	hs.running++
	hs.mu.Unlock()
}

func (hs *Hooks) exit() {
	hs.mu.Lock()
	hs.running--
	if hs.running == 0 {
		close(hs.idle)
	}
	hs.mu.Unlock()
}

// Len returns the number of attached hooks.
func (hs *Hooks) Len() int {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return len(hs.handles)
}

func (hs *Hooks) forget(h *Handle) {
	hs.mu.Lock()
	delete(hs.handles, h.id)
	hs.mu.Unlock()
}
