package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var execFile string

var execCmd = &cobra.Command{
	Use:   "exec <command-id>",
	Short: "Run one of the extension's commands",
	Long: `Activate the extension, run one command and deactivate again.

Dialogs are interactive when attached to a terminal and printed otherwise.
A command that is not available in the current state (for example one that
needs an open markdown note) does nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execFile, "file", "", "Open this vault file first")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	presenter := ui.NewTerminalPresenter()
	presenter.In = cmd.InOrStdin()
	presenter.Out = cmd.OutOrStdout()
	presenter.Interactive = presenter.Interactive && isTerminal(presenter.Out)

	s, err := openSession(ctx, sessionOptions{
		presenter: presenter,
		notices:   cmd.OutOrStdout(),
		file:      execFile,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ran, runErr := s.manager.Invoke(ctx, args[0])
	if runErr == nil && !ran {
		fmt.Fprintf(cmd.OutOrStdout(), "Command %q is not available here.\n", args[0])
	}
	return errors.Join(runErr, s.close(ctx))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
