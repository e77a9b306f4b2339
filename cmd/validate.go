package cmd

import (
	"fmt"

	"github.com/saltyorg/branchver/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate configuration files.",
}

var validateConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate the config file",
	Long:  "Validate the configuration file for correct format and values.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load() calls Validate() automatically
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Config is valid")
		if IsVerbose() {
			fmt.Fprintf(cmd.OutOrStdout(), "  include_metadata: %t\n", cfg.IncludeCommitMetadata())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit_length:    %d\n", cfg.CommitLength)
			fmt.Fprintf(cmd.OutOrStdout(), "  generate:         package %s, prefix %q, output %s\n",
				cfg.Generate.Package, cfg.Generate.Prefix, cfg.Generate.Output)
		}
		return nil
	},
}

func init() {
	validateCmd.AddCommand(validateConfigCmd)
	rootCmd.AddCommand(validateCmd)
}
