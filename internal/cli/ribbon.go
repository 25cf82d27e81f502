package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	ribbonCmd.AddCommand(ribbonClickCmd)
	rootCmd.AddCommand(ribbonCmd)
}

var ribbonCmd = &cobra.Command{
	Use:   "ribbon",
	Short: "List ribbon icons and status bar items",
	Args:  cobra.NoArgs,
	RunE:  runRibbon,
}

var ribbonClickCmd = &cobra.Command{
	Use:   "click <id>",
	Short: "Click a ribbon icon",
	Args:  cobra.ExactArgs(1),
	RunE:  runRibbonClick,
}

func runRibbon(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, sessionOptions{presenter: &ui.Recorder{}}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tICON\tTITLE\tCLASSES")
	for _, it := range s.host.RibbonItems() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.ID, it.Icon, it.Title, strings.Join(it.Classes(), " "))
	}
	for _, it := range s.host.StatusItems() {
		fmt.Fprintf(w, "status\t-\t%s\t-\n", it.Text())
	}
	return errors.Join(w.Flush(), s.close(ctx))
}

func runRibbonClick(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, sessionOptions{presenter: &ui.Recorder{}, notices: cmd.OutOrStdout()}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return errors.Join(s.host.ClickRibbon(args[0]), s.close(ctx))
}
