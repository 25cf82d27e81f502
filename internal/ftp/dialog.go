package ftp

import (
	"context"
	"strconv"

	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Dialog edits the FTP profile.
type Dialog struct {
	form  *ui.Form
	saved *Profile
}

// NewDialog builds the profile form prefilled from s.
func NewDialog(ctx context.Context, s Store) *Dialog {
	p := FromConfig(s.Snapshot())
	d := &Dialog{}
	d.form = ui.NewForm("Save",
		ui.FormField{Label: "Host", Placeholder: "ftp.example.com", Value: p.Host},
		ui.FormField{Label: "Port", Placeholder: strconv.Itoa(DefaultPort), Value: strconv.Itoa(p.Port)},
		ui.FormField{Label: "Username", Placeholder: "anonymous", Value: p.User},
		ui.FormField{Label: "Remote directory", Placeholder: "/", Value: p.RemoteDir},
	)
	d.form.OnSubmit = func(values []string) error {
		port, err := ParsePort(values[1])
		if err != nil {
			return err
		}
		next := Profile{Host: values[0], Port: port, User: values[2], RemoteDir: values[3]}
		if err := Save(ctx, s, next); err != nil {
			return err
		}
		d.saved = &next
		return nil
	}
	return d
}

func (d *Dialog) Title() string { return "FTP" }

func (d *Dialog) Render() string {
	if d.saved != nil {
		return ui.SuccessStyle.Render("Saved profile for " + d.saved.Address())
	}
	return d.form.View()
}

func (d *Dialog) Init() tea.Cmd              { return d.form.Init() }
func (d *Dialog) Update(msg tea.Msg) tea.Cmd { return d.form.Update(msg) }
func (d *Dialog) Done() bool                 { return d.form.Done() }
func (d *Dialog) OnClose()                   {}

// Form exposes the underlying form.
func (d *Dialog) Form() *ui.Form { return d.form }

var _ ui.Interactive = (*Dialog)(nil)
