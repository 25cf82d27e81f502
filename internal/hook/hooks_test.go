package hook

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amytools-labs/amytools/internal/event"
	"github.com/amytools-labs/amytools/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInterval_FiresUntilReleased(t *testing.T) {
	hs := New(nil, nil)
	var ticks atomic.Int32

	h, err := hs.Attach(Interval{Every: time.Millisecond, Fn: func(time.Time) { ticks.Add(1) }})
	require.NoError(t, err)
	assert.Equal(t, "interval", h.Kind())

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	hs.ReleaseAll()
	assert.False(t, h.Active())
	assert.Equal(t, 0, hs.Len())

	require.NoError(t, hs.Wait(context.Background()))
	after := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "interval fired after release")
}

func TestEventTap(t *testing.T) {
	bus := event.NewBus()
	hs := New(nil, nil)
	var clicks []event.Event

	_, err := hs.Attach(EventTap{Source: bus, Name: event.Click, Fn: func(e event.Event) { clicks = append(clicks, e) }})
	require.NoError(t, err)

	bus.Publish(event.Event{Name: event.Click, X: 1, Y: 2})
	require.Len(t, clicks, 1)

	hs.ReleaseAll()
	assert.Equal(t, 0, bus.Subscribers(event.Click))
	bus.Publish(event.Event{Name: event.Click})
	assert.Len(t, clicks, 1)
}

func TestReleaseAll_Idempotent(t *testing.T) {
	hs := New(nil, nil)
	cancels := 0
	install := Func{Name: "ribbon", Fn: func(Guard) (func(), error) {
		return func() { cancels++ }, nil
	}}

	first, err := hs.Attach(install)
	require.NoError(t, err)
	_, err = hs.Attach(install)
	require.NoError(t, err)

	first.Release()
	first.Release()
	assert.Equal(t, 1, cancels)

	assert.NotPanics(t, func() {
		hs.ReleaseAll()
		hs.ReleaseAll()
	})
	assert.Equal(t, 2, cancels)
	assert.Equal(t, 0, hs.Len())
}

func TestGuard_DropsLateCallbacks(t *testing.T) {
	hs := New(nil, nil)
	var captured Guard
	_, err := hs.Attach(Func{Fn: func(g Guard) (func(), error) {
		captured = g
		return func() {}, nil
	}})
	require.NoError(t, err)

	ran := 0
	captured(func() { ran++ })
	assert.Equal(t, 1, ran)

	hs.ReleaseAll()

	// A callback that was already scheduled when the hook was released.
	captured(func() { ran++ })
	assert.Equal(t, 1, ran)
}

func TestWait_BlocksForRunningBody(t *testing.T) {
	hs := New(nil, nil)
	var captured Guard
	_, err := hs.Attach(Func{Fn: func(g Guard) (func(), error) {
		captured = g
		return func() {}, nil
	}})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		captured(func() {
			close(entered)
			<-release
		})
	}()
	<-entered

	hs.ReleaseAll()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, hs.Wait(ctx), context.DeadlineExceeded, "body still running")

	close(release)
	<-finished
	require.NoError(t, hs.Wait(context.Background()))
}

func TestRelease_FromOwnCallback(t *testing.T) {
	hs := New(nil, nil)
	bus := event.NewBus()
	var handle *Handle
	fired := 0

	h, err := hs.Attach(EventTap{Source: bus, Name: event.Click, Fn: func(event.Event) {
		fired++
		handle.Release()
	}})
	require.NoError(t, err)
	handle = h

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(event.Event{Name: event.Click})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("releasing a hook from its own callback deadlocked")
	}

	bus.Publish(event.Event{Name: event.Click})
	assert.Equal(t, 1, fired)
	assert.False(t, h.Active())
	require.NoError(t, hs.Wait(context.Background()))
}

func TestReleaseAll_NoBodyStartsAfterReturn(t *testing.T) {
	for range 200 {
		hs := New(nil, nil)
		var captured Guard
		_, err := hs.Attach(Func{Fn: func(g Guard) (func(), error) {
			captured = g
			return func() {}, nil
		}})
		require.NoError(t, err)

		var released, late atomic.Bool
		done := make(chan struct{})
		go func() {
			defer close(done)
			for range 100 {
				captured(func() {
					if released.Load() {
						late.Store(true)
					}
				})
			}
		}()

		hs.ReleaseAll()
		require.NoError(t, hs.Wait(context.Background()))
		released.Store(true)
		<-done
		require.False(t, late.Load(), "callback body started after ReleaseAll and Wait returned")
	}
}

func TestAttach_InvalidHooks(t *testing.T) {
	hs := New(nil, nil)
	cases := map[string]Hook{
		"zero interval": Interval{Fn: func(time.Time) {}},
		"nil interval":  Interval{Every: time.Second},
		"empty tap":     EventTap{},
		"empty func":    Func{Name: "status-bar"},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := hs.Attach(h)
			assert.ErrorIs(t, err, ErrInvalidHook)
		})
	}

	_, err := hs.Attach(nil)
	assert.ErrorIs(t, err, ErrInvalidHook)
	assert.Equal(t, 0, hs.Len())
}

func TestAttach_InstallErrorPropagates(t *testing.T) {
	hs := New(nil, nil)
	boom := errors.New("no status bar on this host")
	_, err := hs.Attach(Func{Name: "status-bar", Fn: func(Guard) (func(), error) { return nil, boom }})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "status-bar")
}

func TestAttachAfterReleaseAll(t *testing.T) {
	hs := New(nil, nil)
	_, err := hs.Attach(Func{Fn: func(Guard) (func(), error) { return func() {}, nil }})
	require.NoError(t, err)
	hs.ReleaseAll()

	h, err := hs.Attach(Func{Fn: func(Guard) (func(), error) { return func() {}, nil }})
	require.NoError(t, err)
	assert.True(t, h.Active())
	assert.Equal(t, 1, hs.Len())
	hs.ReleaseAll()
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	hs := New(nil, m)
	var captured Guard
	_, err := hs.Attach(Func{Name: "ribbon", Fn: func(g Guard) (func(), error) {
		captured = g
		return func() {}, nil
	}})
	require.NoError(t, err)

	captured(func() {})
	hs.ReleaseAll()
	captured(func() {})

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	assert.True(t, found["amytools_hook_fires_total"])
	assert.True(t, found["amytools_hooks_attached"])
}
