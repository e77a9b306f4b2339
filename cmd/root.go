package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/saltyorg/branchver/internal/config"
	"github.com/saltyorg/branchver/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "branchver",
	Short: "Branch-based build versioning",
	Long: `branchver derives build versions from the current branch name and commit.

Release branches named release/X.Y.Z or release/vX.Y.Z (optionally with a
pre-release suffix such as -beta or -rc.1) build version X.Y.Z. Every other
branch builds 0.0.0-<branch> with "/" replaced by ".".

The branch and commit are read from flags or from CI environment variables
(GitHub Actions, GitLab CI, Azure Pipelines, or BRANCHVER_BRANCH and
BRANCHVER_COMMIT).`,
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), l))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// GetConfigPath returns the configured config file path.
func GetConfigPath() string {
	return cfgFile
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
