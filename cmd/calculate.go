package cmd

import (
	"fmt"

	"github.com/saltyorg/branchver/internal/github"
	"github.com/saltyorg/branchver/internal/output"
	"github.com/spf13/cobra"
)

var (
	calculateFlags  buildFlags
	calculateFormat string
	calculateGitHub bool
)

var calculateCmd = &cobra.Command{
	Use:     "calculate",
	Aliases: []string{"calc"},
	Short:   "Calculate build versions for a branch and commit",
	Long: `Calculate build versions for a branch and commit.

Examples:
  branchver calculate --branch release/v1.2.3 --commit abc1234
      Version 1.2.3, package version 1.2.3+abc1234, assembly version 1.2.3.0

  branchver calculate --branch feature/login --commit abc1234 --no-metadata
      Version feature.login.abc1234, package version 0.0.0-feature.login

Output formats: text, json, yaml, env (shell-quoted, for source), and
github-env (unquoted, for appending to $GITHUB_ENV).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(calculateFormat)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		info, err := calculate(cmd.Context(), cfg, &calculateFlags)
		if err != nil {
			return err
		}

		if err := output.Write(cmd.OutOrStdout(), info, format); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if calculateGitHub {
			if err := github.NewPublisher().Publish(info); err != nil {
				return fmt.Errorf("publishing to GitHub Actions: %w", err)
			}
		}

		return nil
	},
}

func init() {
	calculateFlags.register(calculateCmd)
	calculateCmd.Flags().StringVarP(&calculateFormat, "format", "o", string(output.FormatText), "output format (text, json, yaml, env, github-env)")
	calculateCmd.Flags().BoolVar(&calculateGitHub, "github", false, "write step outputs and summary when running in GitHub Actions")
	rootCmd.AddCommand(calculateCmd)
}
