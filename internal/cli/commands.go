package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/spf13/cobra"
)

var (
	commandsFile string
	commandsJSON bool
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the extension's commands",
	Long: `List every command the extension registers and whether it is available.

Some commands depend on the active view; pass --file to open a note first.`,
	Args: cobra.NoArgs,
	RunE: runCommands,
}

func init() {
	commandsCmd.Flags().StringVar(&commandsFile, "file", "", "Open this vault file before listing")
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(commandsCmd)
}

// commandEntry represents a command for display.
type commandEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func runCommands(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	s, err := openSession(ctx, sessionOptions{presenter: &ui.Recorder{}, file: commandsFile}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var entries []commandEntry
	for _, a := range s.manager.Commands() {
		entries = append(entries, commandEntry{ID: a.ID, Name: a.Name, Available: a.IsAvailable()})
	}
	if err := s.close(ctx); err != nil {
		return err
	}

	if commandsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAVAILABLE")
	for _, e := range entries {
		avail := "yes"
		if !e.Available {
			avail = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, avail)
	}
	return w.Flush()
}
