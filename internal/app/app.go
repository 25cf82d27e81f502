package app

import (
	"context"
	"fmt"

	"github.com/amytools-labs/amytools/internal/plugin"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run shows the workspace until the user quits or ctx ends. The manager
// must already be active; p must be the presenter its host was built with.
func Run(ctx context.Context, m *plugin.Manager, p *Presenter, logger *zap.Logger, opts ...tea.ProgramOption) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newModel(ctx, m, logger.With(zap.String("component", "workspace")))
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	program := tea.NewProgram(model, opts...)

	p.attach(program)
	defer p.detach()

	_, err := program.Run()
	interrupted := ctx.Err() != nil
	cancel()
	model.closeAll()
	if err != nil && !interrupted {
		return fmt.Errorf("workspace: %w", err)
	}
	return nil
}
