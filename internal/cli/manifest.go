package cli

import (
	"fmt"

	"github.com/amytools-labs/amytools/internal/amytools"
	"github.com/amytools-labs/amytools/internal/branding"
	"github.com/amytools-labs/amytools/internal/manifest"
	"github.com/spf13/cobra"
)

var manifestFile string

func init() {
	manifestCmd.Flags().StringVar(&manifestFile, "file", "", "Validate this manifest file instead of the bundled one")
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print and validate the extension manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		data := amytools.ManifestYAML()
		result, err := manifest.Validate(data)
		if manifestFile != "" {
			result, err = manifest.ValidateFile(manifestFile)
		} else {
			fmt.Fprint(out, string(data))
		}
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%w: %d issue(s)", manifest.ErrInvalidManifest, len(result.Issues))
		}

		var m *manifest.Manifest
		if manifestFile != "" {
			m, err = manifest.ParseFile(manifestFile)
		} else {
			m, err = amytools.Manifest()
		}
		if err != nil {
			return err
		}
		if err := manifest.CheckCompatibility(m, branding.HostVersion()); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s %s: valid, compatible with host %s\n", m.ID, m.Version, branding.HostVersion())
		return nil
	},
}
