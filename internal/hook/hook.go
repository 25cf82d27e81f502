package hook

import (
	"errors"
	"fmt"
	"time"

	"github.com/amytools-labs/amytools/internal/event"
)

// ErrInvalidHook is returned when a hook is misconfigured.
var ErrInvalidHook = errors.New("invalid hook")

// Guard runs body only while the owning handle is live.
type Guard func(body func())

// Hook is an installable listener or timer.
type Hook interface {
	// Kind names the hook for logs and metrics ("interval", "event", ...).
	Kind() string

	// Install starts the hook. Every callback must go through guard. The
	// returned cancel function is called exactly once on release.
	Install(guard Guard) (cancel func(), err error)
}

// Interval fires Fn every Every until released.
type Interval struct {
	Every time.Duration
	Fn    func(time.Time)
}

func (iv Interval) Kind() string { return "interval" }

func (iv Interval) Install(guard Guard) (func(), error) {
	if iv.Every <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidHook, iv.Every)
	}
	if iv.Fn == nil {
		return nil, fmt.Errorf("%w: interval has no callback", ErrInvalidHook)
	}

	ticker := time.NewTicker(iv.Every)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				guard(func() { iv.Fn(t) })
			}
		}
	}()
	return func() { close(done) }, nil
}

// Source is anything events can be tapped from.
type Source interface {
	Subscribe(name string, h event.Handler) (unsubscribe func())
}

// EventTap listens for events named Name on Source.
type EventTap struct {
	Source Source
	Name   string
	Fn     event.Handler
}

func (et EventTap) Kind() string { return "event" }

func (et EventTap) Install(guard Guard) (func(), error) {
	if et.Source == nil || et.Name == "" || et.Fn == nil {
		return nil, fmt.Errorf("%w: event tap needs a source, a name and a callback", ErrInvalidHook)
	}
	return et.Source.Subscribe(et.Name, func(e event.Event) {
		guard(func() { et.Fn(e) })
	}), nil
}

// Func adapts an arbitrary host registration (ribbon icon, status bar item)
// into a hook.
type Func struct {
	Name string
	Fn   func(guard Guard) (cancel func(), err error)
}

func (f Func) Kind() string {
	if f.Name == "" {
		return "func"
	}
	return f.Name
}

func (f Func) Install(guard Guard) (func(), error) {
	if f.Fn == nil {
		return nil, fmt.Errorf("%w: %s has no install function", ErrInvalidHook, f.Kind())
	}
	return f.Fn(guard)
}
