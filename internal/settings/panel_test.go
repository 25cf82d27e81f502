package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amytools-labs/amytools/internal/store"
	"github.com/amytools-labs/amytools/internal/store/storetest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var secret = Definition{
	Key:         "mySetting",
	Label:       "Setting #1",
	Description: "It's a secret",
	Placeholder: "Enter your secret",
	Default:     "default",
}

func newStore(t *testing.T) (*store.Store, *storetest.Memory) {
	t.Helper()
	storage := storetest.NewMemory(nil)
	s := store.New(storage, store.Configuration{"mySetting": "default"})
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s, storage
}

func TestRender(t *testing.T) {
	p := NewPanel(nil, []Definition{secret, {Key: "other", Label: "Other", Default: "x"}}, nil)

	fields := p.Render(store.Configuration{"mySetting": "hunter2"})
	require.Len(t, fields, 2)
	assert.Equal(t, "Setting #1", fields[0].Label)
	assert.Equal(t, "It's a secret", fields[0].Description)
	assert.Equal(t, "Enter your secret", fields[0].Placeholder)
	assert.Equal(t, "hunter2", fields[0].Value)
	assert.Equal(t, "x", fields[1].Value, "missing key falls back to the default")
}

func TestOnFieldChange_WritesThrough(t *testing.T) {
	s, storage := newStore(t)
	p := NewPanel(s, []Definition{secret}, nil)

	require.NoError(t, p.OnFieldChange(context.Background(), "mySetting", "hunter2"))
	require.NoError(t, p.Wait())

	assert.Equal(t, map[string]string{"mySetting": "hunter2"}, storage.Data())
	assert.False(t, p.Pending())
}

func TestOnFieldChange_UnknownKey(t *testing.T) {
	p := NewPanel(nil, []Definition{secret}, nil)
	err := p.OnFieldChange(context.Background(), "nope", "x")
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

// gatedWriter blocks every Set until the gate is opened and records order.
type gatedWriter struct {
	gate   chan struct{}
	mu     sync.Mutex
	values []string
	fail   error
}

func (g *gatedWriter) Set(_ context.Context, key, value string) error {
	<-g.gate
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values = append(g.values, value)
	return g.fail
}

func TestOnFieldChange_DoesNotBlockAndKeepsLatest(t *testing.T) {
	w := &gatedWriter{gate: make(chan struct{})}
	p := NewPanel(w, []Definition{secret}, nil)
	ctx := context.Background()

	// Keystrokes while the first save is stuck.
	for _, v := range []string{"h", "hu", "hun", "hunter2"} {
		require.NoError(t, p.OnFieldChange(ctx, "mySetting", v))
	}
	assert.True(t, p.Pending())

	close(w.gate)
	require.NoError(t, p.Wait())

	w.mu.Lock()
	defer w.mu.Unlock()
	require.NotEmpty(t, w.values)
	assert.Equal(t, "hunter2", w.values[len(w.values)-1])
	assert.LessOrEqual(t, len(w.values), 2, "queued keystrokes collapse")
}

func TestWait_ReportsFailures(t *testing.T) {
	gate := make(chan struct{})
	close(gate)
	w := &gatedWriter{gate: gate, fail: errors.New("storage unavailable")}
	p := NewPanel(w, []Definition{secret}, nil)

	require.NoError(t, p.OnFieldChange(context.Background(), "mySetting", "x"))
	err := p.Wait()
	assert.ErrorContains(t, err, "storage unavailable")

	// Errors are reported once.
	assert.NoError(t, p.Wait())
}

func TestOnFieldChange_SurvivesCancelledContext(t *testing.T) {
	s, storage := newStore(t)
	p := NewPanel(s, []Definition{secret}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.OnFieldChange(ctx, "mySetting", "late"))
	cancel()

	require.NoError(t, p.Wait())
	assert.Equal(t, "late", storage.Data()["mySetting"])
}

func TestCoalesce(t *testing.T) {
	in := []change{{"a", "1"}, {"b", "1"}, {"a", "2"}}
	assert.Equal(t, []change{{"b", "1"}, {"a", "2"}}, coalesce(in))
}

func TestEditor_TypingWritesThrough(t *testing.T) {
	s, storage := newStore(t)
	p := NewPanel(s, []Definition{secret}, nil)
	e := NewEditor(context.Background(), "amytools settings", p, s.Snapshot())

	assert.Contains(t, e.Render(), "Setting #1")

	// Clear the default and type a new secret.
	for range len("default") {
		e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range "hunter2" {
		e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.NoError(t, p.Wait())
	assert.Equal(t, "hunter2", storage.Data()["mySetting"])
	assert.Equal(t, "hunter2", s.Get("mySetting"))

	e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, e.Done())
}

func TestEditor_CloseReportsFailedSaves(t *testing.T) {
	s, storage := newStore(t)
	storage.SetSaveErr(errors.New("read-only vault"))
	p := NewPanel(s, []Definition{secret}, nil)
	e := NewEditor(context.Background(), "amytools settings", p, s.Snapshot())

	var reported error
	e.OnSaveError = func(err error) { reported = err }

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, e.Done())

	e.OnClose()
	require.Error(t, reported)
	assert.ErrorContains(t, reported, "read-only vault")
	assert.Equal(t, reported, e.Err())
	assert.NoError(t, p.Wait(), "failures are handed to the editor once")
}

func TestEditor_CloseWithoutChanges(t *testing.T) {
	s, _ := newStore(t)
	p := NewPanel(s, []Definition{secret}, nil)
	e := NewEditor(context.Background(), "amytools settings", p, s.Snapshot())

	called := false
	e.OnSaveError = func(error) { called = true }
	e.OnClose()
	assert.False(t, called)
	assert.NoError(t, e.Err())
}
