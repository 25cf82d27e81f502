package cli

import (
	"fmt"

	"github.com/amytools-labs/amytools/internal/password"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	passwordLength    int
	passwordNoLower   bool
	passwordNoUpper   bool
	passwordNoDigits  bool
	passwordNoSymbols bool
	passwordCopy      bool
)

func init() {
	passwordCmd.Flags().IntVarP(&passwordLength, "length", "n", password.DefaultLength, "Password length")
	passwordCmd.Flags().BoolVar(&passwordNoLower, "no-lower", false, "Exclude lowercase letters")
	passwordCmd.Flags().BoolVar(&passwordNoUpper, "no-upper", false, "Exclude uppercase letters")
	passwordCmd.Flags().BoolVar(&passwordNoDigits, "no-digits", false, "Exclude digits")
	passwordCmd.Flags().BoolVar(&passwordNoSymbols, "no-symbols", false, "Exclude symbols")
	passwordCmd.Flags().BoolVarP(&passwordCopy, "copy", "c", false, "Copy to the clipboard instead of printing")
	rootCmd.AddCommand(passwordCmd)
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate a random password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := password.Generate(passwordOptions())
		if err != nil {
			return err
		}
		if passwordCopy {
			if err := clipboard.WriteAll(pw); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), pw)
		return nil
	},
}

func passwordOptions() password.Options {
	return password.Options{
		Length:  passwordLength,
		Lower:   !passwordNoLower,
		Upper:   !passwordNoUpper,
		Digits:  !passwordNoDigits,
		Symbols: !passwordNoSymbols,
	}
}
