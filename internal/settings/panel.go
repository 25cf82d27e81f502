package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amytools-labs/amytools/internal/store"
	"go.uber.org/zap"
)

// ErrUnknownSetting is returned for a key with no definition.
var ErrUnknownSetting = errors.New("unknown setting")

// Definition describes one setting.
type Definition struct {
	Key         string
	Label       string
	Description string
	Placeholder string
	Default     string
	Secret      bool
}

// Field is a definition with its current value.
type Field struct {
	Definition
	Value string
}

// Writer persists a single key.
type Writer interface {
	Set(ctx context.Context, key, value string) error
}

type change struct {
	key, value string
}

// Panel binds definitions to a configuration.
type Panel struct {
	defs   []Definition
	byKey  map[string]int
	writer Writer
	logger *zap.Logger

	mu      sync.Mutex
	pending []change
	running bool
	idle    chan struct{}
	errs    []error
}

// NewPanel creates a panel writing through w. logger may be nil.
func NewPanel(w Writer, defs []Definition, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Panel{
		defs:   defs,
		byKey:  make(map[string]int, len(defs)),
		writer: w,
		logger: logger.With(zap.String("component", "settings_panel")),
	}
	for i, d := range defs {
		p.byKey[d.Key] = i
	}
	return p
}

// Definitions returns the setting definitions in display order.
func (p *Panel) Definitions() []Definition {
	return append([]Definition(nil), p.defs...)
}

// Render returns one field per definition with the value from cfg, or the
// definition's default when cfg lacks the key.
func (p *Panel) Render(cfg store.Configuration) []Field {
	fields := make([]Field, 0, len(p.defs))
	for _, d := range p.defs {
		v, ok := cfg[d.Key]
		if !ok {
			v = d.Default
		}
		fields = append(fields, Field{Definition: d, Value: v})
	}
	return fields
}

// OnFieldChange queues a write of value to key and returns immediately.
// Queued writes survive cancellation of ctx; Wait reports their failures.
func (p *Panel) OnFieldChange(ctx context.Context, key, value string) error {
	if _, ok := p.byKey[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, change{key: key, value: value})
	if !p.running {
		p.running = true
		p.idle = make(chan struct{})
		go p.drain(context.WithoutCancel(ctx), p.idle)
	}
	return nil
}

// drain applies queued changes until the queue is empty. Consecutive
// changes to the same key collapse to the newest one.
func (p *Panel) drain(ctx context.Context, idle chan struct{}) {
	defer close(idle)
	for {
		p.mu.Lock()
		if len(p.pending) == 0 {
			p.running = false
			p.mu.Unlock()
			return
		}
		batch := coalesce(p.pending)
		p.pending = nil
		p.mu.Unlock()

		for _, c := range batch {
			if err := p.writer.Set(ctx, c.key, c.value); err != nil {
				p.logger.Warn("saving setting failed", zap.String("key", c.key), zap.Error(err))
				p.mu.Lock()
				p.errs = append(p.errs, err)
				p.mu.Unlock()
			}
		}
	}
}

func coalesce(changes []change) []change {
	last := make(map[string]int, len(changes))
	for i, c := range changes {
		last[c.key] = i
	}
	out := make([]change, 0, len(last))
	for i, c := range changes {
		if last[c.key] == i {
			out = append(out, c)
		}
	}
	return out
}

// Pending reports whether writes are queued or in flight.
func (p *Panel) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Wait blocks until every queued write has been attempted and returns the
// failures since the previous Wait.
func (p *Panel) Wait() error {
	for {
		p.mu.Lock()
		if !p.running {
			err := errors.Join(p.errs...)
			p.errs = nil
			p.mu.Unlock()
			return err
		}
		idle := p.idle
		p.mu.Unlock()
		<-idle
	}
}
