package cli

import (
	"fmt"

	"github.com/amytools-labs/amytools/internal/config"
	"github.com/amytools-labs/amytools/internal/project"
	"github.com/spf13/cobra"
)

var (
	projectName        string
	projectDescription string
)

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name (required)")
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	_ = projectCreateCmd.MarkFlagRequired("name")
	projectCmd.AddCommand(projectCreateCmd)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project notes",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project note",
	Long:  `Create Projects/<Name>.md in the vault with id, name, description and creation time in its front matter.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vault, err := config.VaultRoot()
		if err != nil {
			return err
		}
		path, err := project.Create(vault, project.Project{Name: projectName, Description: projectDescription})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}
