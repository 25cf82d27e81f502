package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/amytools-labs/amytools/internal/branding"
	"github.com/amytools-labs/amytools/internal/settings"
	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/spf13/cobra"
)

var settingsReveal bool

func init() {
	settingsCmd.Flags().BoolVar(&settingsReveal, "reveal", false, "Show secret values")
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsEditCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the extension's settings",
	Long:  `Show the settings pane of the extension with the values stored in the vault.`,
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings interactively",
	Long:  `Open the settings pane. Every keystroke is saved; esc or enter closes it.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsEdit,
}

func runSettings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, sessionOptions{presenter: &ui.Recorder{}}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	fields := s.manager.Panel().Render(s.manager.Store().Snapshot())
	if err := s.close(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tDESCRIPTION\tVALUE")
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Key, f.Label, f.Description, displayValue(f))
	}
	return w.Flush()
}

func displayValue(f settings.Field) string {
	if f.Secret && !settingsReveal && f.Value != "" {
		return "********"
	}
	return f.Value
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, sessionOptions{presenter: &ui.Recorder{}}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	setErr := s.manager.Panel().OnFieldChange(ctx, key, value)
	if setErr == nil {
		setErr = s.manager.Panel().Wait()
	}
	if err := errors.Join(setErr, s.close(ctx)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	return nil
}

func runSettingsEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	presenter := ui.NewTerminalPresenter()
	if !presenter.Interactive {
		return fmt.Errorf("settings edit needs a terminal; use '%s settings set <key> <value>'", branding.CLIName())
	}

	s, err := openSession(ctx, sessionOptions{presenter: presenter}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	editor := settings.NewEditor(ctx, s.manager.Manifest().Name+" settings", s.manager.Panel(), s.manager.Store().Snapshot())
	presentErr := s.host.OpenDialog(ctx, editor)
	if err := editor.Err(); err != nil {
		presentErr = errors.Join(presentErr, fmt.Errorf("saving settings: %w", err))
	}
	return errors.Join(presentErr, s.close(ctx))
}
