package password

import (
	"strings"

	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Dialog shows a generated password. r regenerates, c copies, enter, q or
// esc closes.
type Dialog struct {
	opts     Options
	password string
	status   string
	err      error
	done     bool

	// Copy writes to the system clipboard.
	Copy func(text string) error
}

// NewDialog generates a first password with opts.
func NewDialog(opts Options) *Dialog {
	d := &Dialog{opts: opts, Copy: clipboard.WriteAll}
	d.Regenerate()
	return d
}

// Regenerate replaces the shown password.
func (d *Dialog) Regenerate() {
	d.password, d.err = Generate(d.opts)
	d.status = ""
}

// CopyToClipboard copies the shown password.
func (d *Dialog) CopyToClipboard() {
	if d.password == "" {
		return
	}
	if err := d.Copy(d.password); err != nil {
		d.status = ui.ErrorStyle.Render("Copy failed: " + err.Error())
		return
	}
	d.status = ui.SuccessStyle.Render("Copied to clipboard")
}

// Password returns the shown password.
func (d *Dialog) Password() string { return d.password }

// Err returns the generation error, if any.
func (d *Dialog) Err() error { return d.err }

func (d *Dialog) Title() string { return "Random password" }

func (d *Dialog) Render() string {
	var b strings.Builder
	if d.err != nil {
		b.WriteString(ui.ErrorStyle.Render(d.err.Error()))
	} else {
		b.WriteString(ui.TextStyle.Render(d.password))
	}
	b.WriteString("\n\n")
	if d.status != "" {
		b.WriteString(d.status)
		b.WriteString("\n")
	}
	b.WriteString(ui.MutedStyle.Render("r regenerate · c copy · enter close"))
	return b.String()
}

func (d *Dialog) Init() tea.Cmd { return nil }

func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "r":
		d.Regenerate()
	case "c":
		d.CopyToClipboard()
	case "enter", "esc", "q":
		d.done = true
	}
	return nil
}

func (d *Dialog) Done() bool { return d.done }
func (d *Dialog) OnClose()   {}

var _ ui.Interactive = (*Dialog)(nil)
