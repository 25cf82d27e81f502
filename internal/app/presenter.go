package app

import (
	"context"
	"errors"
	"sync"

	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotRunning is returned when a dialog is opened outside a session.
var ErrNotRunning = errors.New("workspace session not running")

// openDialogMsg asks the workspace to show a dialog; done is closed when
// the user dismisses it.
type openDialogMsg struct {
	dialog ui.Dialog
	done   chan struct{}
}

// Presenter shows dialogs inside the running workspace program.
type Presenter struct {
	mu      sync.Mutex
	program *tea.Program
}

func (p *Presenter) attach(program *tea.Program) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

func (p *Presenter) detach() { p.attach(nil) }

// Present hands d to the workspace and blocks until it is dismissed or ctx
// ends.
func (p *Presenter) Present(ctx context.Context, d ui.Dialog) error {
	defer d.OnClose()

	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program == nil {
		return ErrNotRunning
	}

	done := make(chan struct{})
	program.Send(openDialogMsg{dialog: d, done: done})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ui.Presenter = (*Presenter)(nil)
