package app

import (
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// openFileDialog asks for a vault path and makes it the active view.
type openFileDialog struct {
	form *ui.Form
}

func newOpenFileDialog(h *host.Host) *openFileDialog {
	d := &openFileDialog{}
	d.form = ui.NewForm("Open", ui.FormField{Label: "Path", Placeholder: "Notes/today.md"})
	d.form.OnSubmit = func(values []string) error {
		return h.OpenFile(values[0])
	}
	return d
}

func (d *openFileDialog) Title() string              { return "Open file" }
func (d *openFileDialog) Render() string             { return d.form.View() }
func (d *openFileDialog) Init() tea.Cmd              { return d.form.Init() }
func (d *openFileDialog) Update(msg tea.Msg) tea.Cmd { return d.form.Update(msg) }
func (d *openFileDialog) Done() bool                 { return d.form.Done() }
func (d *openFileDialog) OnClose()                   {}
