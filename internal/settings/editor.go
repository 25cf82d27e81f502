package settings

import (
	"context"

	"github.com/amytools-labs/amytools/internal/store"
	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor is the interactive settings pane. Every keystroke is written
// through the panel.
type Editor struct {
	// OnSaveError, when set, receives the save failures collected while
	// the editor was open. It runs from OnClose.
	OnSaveError func(error)

	title string
	panel *Panel
	form  *ui.Form
	keys  []string
	err   error
}

// NewEditor builds an editor over the current configuration.
func NewEditor(ctx context.Context, title string, panel *Panel, cfg store.Configuration) *Editor {
	fields := panel.Render(cfg)
	formFields := make([]ui.FormField, 0, len(fields))
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		formFields = append(formFields, ui.FormField{
			Label:       f.Label,
			Description: f.Description,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Secret:      f.Secret,
		})
		keys = append(keys, f.Key)
	}

	e := &Editor{title: title, panel: panel, form: ui.NewForm("", formFields...), keys: keys}
	e.form.OnChange = func(i int, value string) {
		// Keys come from the panel's own definitions.
		_ = panel.OnFieldChange(ctx, e.keys[i], value)
	}
	return e
}

func (e *Editor) Title() string              { return e.title }
func (e *Editor) Render() string             { return e.form.View() }
func (e *Editor) Init() tea.Cmd              { return e.form.Init() }
func (e *Editor) Update(msg tea.Msg) tea.Cmd { return e.form.Update(msg) }
func (e *Editor) Done() bool                 { return e.form.Done() }

// OnClose waits for the writes the editor queued and reports failures.
func (e *Editor) OnClose() {
	e.err = e.panel.Wait()
	if e.err != nil && e.OnSaveError != nil {
		e.OnSaveError(e.err)
	}
}

// Err returns the save failures seen by OnClose.
func (e *Editor) Err() error { return e.err }

// Form exposes the underlying form.
func (e *Editor) Form() *ui.Form { return e.form }

var _ ui.Interactive = (*Editor)(nil)
