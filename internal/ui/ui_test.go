package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(f *Form, k tea.KeyType) {
	f.Update(tea.KeyMsg{Type: k})
}

func TestForm_TypeNavigateSubmit(t *testing.T) {
	var changes []string
	f := NewForm("Save Project",
		FormField{Label: "Name", Placeholder: "Project Name"},
		FormField{Label: "Description", Placeholder: "Project Description"},
	)
	f.OnChange = func(i int, v string) { changes = append(changes, v) }

	typeText(f, "ab")
	press(f, tea.KeyTab)
	typeText(f, "c")
	assert.Equal(t, []string{"ab", "c"}, f.Values())
	assert.Equal(t, []string{"a", "ab", "c"}, changes)

	press(f, tea.KeyEnter)
	assert.Equal(t, 2, f.Focused(), "enter on the last field moves to the button")
	assert.False(t, f.Done())

	press(f, tea.KeyEnter)
	assert.True(t, f.Submitted())
	assert.True(t, f.Done())
}

func TestForm_SubmitErrorKeepsFormOpen(t *testing.T) {
	f := NewForm("Save", FormField{Label: "Name"})
	f.OnSubmit = func(values []string) error {
		if values[0] == "" {
			return errors.New("name is required")
		}
		return nil
	}

	f.Submit()
	assert.False(t, f.Done())
	assert.Equal(t, "name is required", f.Err())
	assert.Contains(t, f.View(), "name is required")

	f.SetValue(0, "notes")
	f.Submit()
	assert.True(t, f.Submitted())
	assert.Empty(t, f.Err())
}

func TestForm_EscCancels(t *testing.T) {
	f := NewForm("Save", FormField{Label: "Name"})
	press(f, tea.KeyEsc)
	assert.True(t, f.Cancelled())
	assert.False(t, f.Submitted())
}

func TestForm_NoButton(t *testing.T) {
	f := NewForm("", FormField{Label: "A"}, FormField{Label: "B"})
	press(f, tea.KeyShiftTab)
	assert.Equal(t, 1, f.Focused(), "focus wraps around")
	press(f, tea.KeyEnter)
	assert.True(t, f.Submitted())
}

type staticDialog struct {
	closed bool
}

func (d *staticDialog) Title() string  { return "Add New Project" }
func (d *staticDialog) Render() string { return "body text" }
func (d *staticDialog) OnClose()       { d.closed = true }

func TestTerminalPresenter_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	p := &TerminalPresenter{Out: &out}
	d := &staticDialog{}

	require.NoError(t, p.Present(context.Background(), d))
	assert.Contains(t, out.String(), "Add New Project")
	assert.Contains(t, out.String(), "body text")
	assert.True(t, d.closed)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	d := &staticDialog{}
	require.NoError(t, r.Present(context.Background(), d))

	assert.Same(t, d, r.Last())
	assert.False(t, d.closed)

	r.CloseAll()
	assert.True(t, d.closed)
	assert.Nil(t, r.Last())
}

func TestFrame(t *testing.T) {
	assert.Contains(t, Frame("Title", "body"), "Title")
	assert.Contains(t, Frame("", "body"), "body")
}
