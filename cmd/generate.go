package cmd

import (
	"fmt"

	"github.com/saltyorg/branchver/internal/codegen"
	"github.com/saltyorg/branchver/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	generateFlags    buildFlags
	generateOutput   string
	generatePackage  string
	generatePrefix   string
	generateTemplate string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Go file with build version constants",
	Long: `Generate a Go source file exposing the calculated versions as constants.

The package name, constant prefix, and output path default to the generate
section of the config file. Intended for use with go:generate:

  //go:generate go run github.com/saltyorg/branchver generate --output version_gen.go --package main

The file is only rewritten when its content changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Flags override config
		if generateOutput != "" {
			cfg.Generate.Output = generateOutput
		}
		if generatePackage != "" {
			cfg.Generate.Package = generatePackage
		}
		if cmd.Flags().Changed("prefix") {
			cfg.Generate.Prefix = generatePrefix
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		info, err := calculate(cmd.Context(), cfg, &generateFlags)
		if err != nil {
			return err
		}

		generator, err := codegen.NewGenerator(generateTemplate)
		if err != nil {
			return err
		}

		changed, err := generator.WriteFile(cfg.Generate.Output, codegen.SourceData{
			Package: cfg.Generate.Package,
			Prefix:  cfg.Generate.Prefix,
			Info:    info,
		})
		if err != nil {
			return err
		}

		if !changed {
			logger.L(cmd.Context()).Debug("generated file unchanged", zap.String("path", cfg.Generate.Output))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (version %s)\n", cfg.Generate.Output, info.Version)
		return nil
	},
}

func init() {
	generateFlags.register(generateCmd)
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output file path (default: from config)")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "Go package name (default: from config)")
	generateCmd.Flags().StringVar(&generatePrefix, "prefix", "", "constant name prefix (default: from config)")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "custom text/template for the generated file")
	rootCmd.AddCommand(generateCmd)
}
