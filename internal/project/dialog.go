package project

import (
	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Dialog is the "Add New Project" form.
type Dialog struct {
	vault string
	form  *ui.Form
	path  string

	// OnCreated is called with the path of the new note.
	OnCreated func(path string)
}

// NewDialog builds a project form writing into vault.
func NewDialog(vault string) *Dialog {
	d := &Dialog{vault: vault}
	d.form = ui.NewForm("Save Project",
		ui.FormField{Label: "Name", Placeholder: "Project Name"},
		ui.FormField{Label: "Description", Placeholder: "Project Description"},
	)
	d.form.OnSubmit = func(values []string) error {
		path, err := Create(d.vault, Project{Name: values[0], Description: values[1]})
		if err != nil {
			return err
		}
		d.path = path
		if d.OnCreated != nil {
			d.OnCreated(path)
		}
		return nil
	}
	return d
}

func (d *Dialog) Title() string { return "Add New Project" }

func (d *Dialog) Render() string {
	if d.path != "" {
		return ui.SuccessStyle.Render("Project saved: " + d.path)
	}
	return d.form.View()
}

func (d *Dialog) Init() tea.Cmd              { return d.form.Init() }
func (d *Dialog) Update(msg tea.Msg) tea.Cmd { return d.form.Update(msg) }
func (d *Dialog) Done() bool                 { return d.form.Done() }
func (d *Dialog) OnClose()                   {}

// Form exposes the underlying form.
func (d *Dialog) Form() *ui.Form { return d.form }

// Path returns the created note, or "" before a successful save.
func (d *Dialog) Path() string { return d.path }

var _ ui.Interactive = (*Dialog)(nil)
