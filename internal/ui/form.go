package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormField describes one text input.
type FormField struct {
	Label       string
	Description string
	Placeholder string
	Value       string
	Secret      bool
}

// Form is a vertical list of text inputs followed by a submit button.
// Tab/shift+tab and up/down move focus, enter advances or submits, esc
// cancels.
type Form struct {
	fields      []FormField
	inputs      []textinput.Model
	focus       int
	submitLabel string
	submitted   bool
	cancelled   bool
	err         string

	// OnChange is called with the field index and new value whenever an
	// input's value changes.
	OnChange func(index int, value string)

	// OnSubmit is called when the button is pressed. A non-nil error keeps
	// the form open and is shown under the button.
	OnSubmit func(values []string) error
}

// NewForm builds a form. An empty submitLabel hides the button; enter on
// the last field then finishes the form.
func NewForm(submitLabel string, fields ...FormField) *Form {
	f := &Form{fields: fields, submitLabel: submitLabel}
	for _, field := range fields {
		in := textinput.New()
		in.Placeholder = field.Placeholder
		in.Prompt = "> "
		in.CharLimit = 256
		in.Width = 40
		in.SetValue(field.Value)
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Init starts the cursor blink.
func (f *Form) Init() tea.Cmd { return textinput.Blink }

func (f *Form) stops() int {
	if f.submitLabel == "" {
		return len(f.inputs)
	}
	return len(f.inputs) + 1
}

func (f *Form) setFocus(i int) {
	n := f.stops()
	if n == 0 {
		return
	}
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *Form) onButton() bool { return f.submitLabel != "" && f.focus == len(f.inputs) }

// Update handles a message.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.Done() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.cancelled = true
			return nil
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		case "enter":
			if f.onButton() || (f.submitLabel == "" && f.focus == len(f.inputs)-1) {
				f.Submit()
				return nil
			}
			f.setFocus(f.focus + 1)
			return nil
		}
	}

	if f.onButton() || f.focus >= len(f.inputs) {
		return nil
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if after := f.inputs[f.focus].Value(); after != before && f.OnChange != nil {
		f.OnChange(f.focus, after)
	}
	return cmd
}

// Submit presses the button.
func (f *Form) Submit() {
	if f.OnSubmit != nil {
		if err := f.OnSubmit(f.Values()); err != nil {
			f.err = err.Error()
			return
		}
	}
	f.err = ""
	f.submitted = true
}

// SetValue replaces a field's value and reports it through OnChange.
func (f *Form) SetValue(index int, value string) {
	if index < 0 || index >= len(f.inputs) {
		return
	}
	f.inputs[index].SetValue(value)
	if f.OnChange != nil {
		f.OnChange(index, value)
	}
}

// Value returns the current value of field index.
func (f *Form) Value(index int) string {
	if index < 0 || index >= len(f.inputs) {
		return ""
	}
	return f.inputs[index].Value()
}

// Values returns all current values in field order.
func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = f.inputs[i].Value()
	}
	return out
}

// Focused returns the index of the focused stop; len(fields) is the button.
func (f *Form) Focused() int { return f.focus }

func (f *Form) Submitted() bool { return f.submitted }
func (f *Form) Cancelled() bool { return f.cancelled }
func (f *Form) Done() bool      { return f.submitted || f.cancelled }

// Err returns the last submit error message.
func (f *Form) Err() string { return f.err }

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := field.Label
		if i == f.focus {
			label = SelectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		if field.Description != "" {
			b.WriteString(MutedStyle.Render(field.Description))
			b.WriteString("\n")
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}
	if f.submitLabel != "" {
		if f.onButton() {
			b.WriteString(ButtonFocused.Render(f.submitLabel))
		} else {
			b.WriteString(ButtonStyle.Render(f.submitLabel))
		}
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString(ErrorStyle.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render("tab: next • enter: confirm • esc: close"))
	return b.String()
}
