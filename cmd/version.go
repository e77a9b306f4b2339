package cmd

import (
	"fmt"

	"github.com/saltyorg/branchver/internal/runtime"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, git commit, and build time of branchver.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), runtime.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
