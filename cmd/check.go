package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkFlags buildFlags
	checkQuiet bool
)

// errNotRelease signals a non-release branch through the exit code.
var errNotRelease = errors.New("not a release branch")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the branch is a release branch",
	Long: `Check whether the current branch is a release branch.

Exits 0 for release/X.Y.Z and release/vX.Y.Z branches and 1 otherwise,
for use in pipeline conditions:

  if branchver check --quiet; then publish; fi`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		info, err := calculate(cmd.Context(), cfg, &checkFlags)
		if err != nil {
			return err
		}

		if !info.Release {
			if !checkQuiet {
				fmt.Fprintf(cmd.OutOrStdout(), "❌ %s is not a release branch\n", info.Branch)
			}
			// The exit code carries the answer; don't print an error too
			cmd.SilenceErrors = true
			return errNotRelease
		}

		if !checkQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is release %s\n", info.Branch, info.Version)
		}
		return nil
	},
}

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "suppress output, report only through the exit code")
	rootCmd.AddCommand(checkCmd)
}
