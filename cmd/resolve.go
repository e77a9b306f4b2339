package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/saltyorg/branchver/internal/ci"
	"github.com/saltyorg/branchver/internal/config"
	"github.com/saltyorg/branchver/internal/logger"
	"github.com/saltyorg/branchver/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// buildFlags are the flags shared by commands that calculate a version.
type buildFlags struct {
	branch     string
	commit     string
	noMetadata bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.branch, "branch", "", "branch name (default: from CI environment)")
	cmd.Flags().StringVar(&f.commit, "commit", "", "commit id, shortened to commit_length (default: from CI environment)")
	cmd.Flags().BoolVar(&f.noMetadata, "no-metadata", false, "omit +<commit> build metadata from the package version")
}

// calculate resolves the branch and commit and calculates the build versions.
// Flags take precedence over the CI environment.
func calculate(ctx context.Context, cfg *config.Config, f *buildFlags) (version.Info, error) {
	log := logger.L(ctx)

	branch, commit := f.branch, ci.ShortCommit(f.commit, cfg.CommitLength)
	if branch == "" || commit == "" {
		src, err := ci.Resolve(nil, cfg.CommitLength)
		if err != nil {
			if errors.Is(err, ci.ErrNotResolved) {
				return version.Info{}, fmt.Errorf("%w (use --branch and --commit)", err)
			}
			return version.Info{}, err
		}
		log.Debug("resolved build source from environment",
			zap.String("provider", src.Provider),
			zap.String("branch", src.Branch),
			zap.String("commit", src.Commit))

		if branch == "" {
			branch = src.Branch
		}
		if commit == "" {
			commit = src.Commit
		}
	}

	include := cfg.IncludeCommitMetadata() && !f.noMetadata
	info := version.Calculate(branch, commit, version.WithCommitMetadata(include))

	log.Debug("calculated version",
		zap.String("branch", branch),
		zap.String("commit", commit),
		zap.Bool("release", info.Release),
		zap.String("version", info.Version))

	if !info.Release && version.IsRelease("release/"+branch) {
		log.Warn("branch looks like a version but is not a release branch",
			zap.String("branch", branch),
			zap.String("hint", "name it release/"+branch))
	}

	return info, nil
}

// loadConfig loads the config file, tolerating a missing default file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
