package cli

import (
	"fmt"
	"os"

	"github.com/amytools-labs/amytools/internal/branding"
	"github.com/amytools-labs/amytools/internal/config"
	"github.com/amytools-labs/amytools/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	flagVault   string
	flagVerbose bool

	// appLog is built in PersistentPreRunE and synced in PersistentPostRun.
	appLog = &logging.Logger{Logger: zap.NewNop(), Level: zap.NewAtomicLevel()}
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs the bundled extension against a markdown vault: project notes,
an FTP profile, a password generator and a settings pane, from the command line
or an interactive workspace (` + "`" + branding.CLIName() + ` run` + "`" + `).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if flagVault != "" {
			viper.Set(config.KeyVault, flagVault)
		}

		opts := logging.Options{
			Level:   config.Get(config.KeyLogLevel),
			File:    config.Get(config.KeyLogFile),
			Verbose: flagVerbose,
		}
		// One-shot commands log to the terminal when asked to; the
		// workspace always logs to the file.
		if flagVerbose && cmd.Name() != "run" {
			opts.File = ""
		}
		l, err := logging.New(opts)
		if err != nil {
			return err
		}
		appLog = l
		appLog.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", buildVersion))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLog.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "Vault directory (default: $"+branding.EnvVar("VAULT")+", the config file, or the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
