package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Dialog is anything that can be shown to the user.
type Dialog interface {
	Title() string
	Render() string
	OnClose()
}

// Interactive dialogs handle input until Done reports true.
type Interactive interface {
	Dialog
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	Done() bool
}

// Presenter shows dialogs. Present returns once the dialog is closed, and
// always calls OnClose.
type Presenter interface {
	Present(ctx context.Context, d Dialog) error
}

// TerminalPresenter runs interactive dialogs as bubbletea programs when
// attached to a terminal and prints a framed render otherwise.
type TerminalPresenter struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// NewTerminalPresenter presents on stdin/stdout, interactively when stdin is
// a terminal.
func NewTerminalPresenter() *TerminalPresenter {
	return &TerminalPresenter{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (p *TerminalPresenter) Present(ctx context.Context, d Dialog) error {
	defer d.OnClose()

	if in, ok := d.(Interactive); ok && p.Interactive {
		program := tea.NewProgram(dialogModel{d: in}, tea.WithContext(ctx), tea.WithInput(p.In), tea.WithOutput(p.Out))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running %q dialog: %w", d.Title(), err)
		}
		return nil
	}

	_, err := fmt.Fprintln(p.Out, Frame(d.Title(), d.Render()))
	return err
}

// dialogModel adapts an Interactive dialog to tea.Model.
type dialogModel struct {
	d Interactive
}

func (m dialogModel) Init() tea.Cmd { return m.d.Init() }

func (m dialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	cmd := m.d.Update(msg)
	if m.d.Done() {
		return m, tea.Batch(cmd, tea.Quit)
	}
	return m, cmd
}

func (m dialogModel) View() string {
	return Frame(m.d.Title(), m.d.Render())
}

// Recorder is a Presenter that keeps every dialog it is given and leaves
// them open so callers can drive them; CloseAll closes them. Interactive
// dialogs are initialised but receive no input.
type Recorder struct {
	mu      sync.Mutex
	dialogs []Dialog
}

func (r *Recorder) Present(_ context.Context, d Dialog) error {
	if in, ok := d.(Interactive); ok {
		in.Init()
	}
	r.mu.Lock()
	r.dialogs = append(r.dialogs, d)
	r.mu.Unlock()
	return nil
}

// Dialogs returns the dialogs presented so far.
func (r *Recorder) Dialogs() []Dialog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Dialog(nil), r.dialogs...)
}

// Last returns the most recent dialog, or nil.
func (r *Recorder) Last() Dialog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.dialogs) == 0 {
		return nil
	}
	return r.dialogs[len(r.dialogs)-1]
}

// CloseAll calls OnClose on every recorded dialog and forgets them.
func (r *Recorder) CloseAll() {
	r.mu.Lock()
	dialogs := r.dialogs
	r.dialogs = nil
	r.mu.Unlock()
	for _, d := range dialogs {
		d.OnClose()
	}
}
