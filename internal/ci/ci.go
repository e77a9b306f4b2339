// Package ci resolves the current branch and commit from CI environment variables.
package ci

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultCommitLength is the conventional short commit id length.
const DefaultCommitLength = 7

// ErrNotResolved is returned when no provider supplies both a branch and a commit.
var ErrNotResolved = errors.New("branch and commit could not be resolved from the environment")

// Getenv looks up an environment variable.
type Getenv func(key string) string

// Source is a resolved branch and commit, with the provider that supplied them.
type Source struct {
	Provider string
	Branch   string
	Commit   string
}

// provider reads a branch and a commit from one CI system's variables.
type provider struct {
	name   string
	branch func(Getenv) string
	commit func(Getenv) string
}

// providers are consulted in order; explicit overrides come first.
var providers = []provider{
	{
		name:   "env",
		branch: lookup("BRANCHVER_BRANCH"),
		commit: lookup("BRANCHVER_COMMIT"),
	},
	{
		// GITHUB_REF_NAME on pull_request events is "<n>/merge", so the
		// head ref wins when set.
		name:   "github",
		branch: lookup("GITHUB_HEAD_REF", "GITHUB_REF_NAME"),
		commit: lookup("GITHUB_SHA"),
	},
	{
		name:   "gitlab",
		branch: lookup("CI_COMMIT_REF_NAME"),
		commit: lookup("CI_COMMIT_SHORT_SHA", "CI_COMMIT_SHA"),
	},
	{
		name: "azure",
		branch: func(env Getenv) string {
			return strings.TrimPrefix(env("BUILD_SOURCEBRANCH"), "refs/heads/")
		},
		commit: lookup("BUILD_SOURCEVERSION"),
	},
}

// Resolve finds the branch and commit from env, shortening the commit to
// commitLength characters. A nil env uses os.Getenv.
func Resolve(env Getenv, commitLength int) (Source, error) {
	if env == nil {
		env = os.Getenv
	}
	if commitLength <= 0 {
		commitLength = DefaultCommitLength
	}

	for _, p := range providers {
		branch := p.branch(env)
		commit := p.commit(env)
		if branch == "" || commit == "" {
			continue
		}
		return Source{
			Provider: p.name,
			Branch:   branch,
			Commit:   ShortCommit(commit, commitLength),
		}, nil
	}

	return Source{}, ErrNotResolved
}

// ShortCommit truncates commit to at most n characters.
func ShortCommit(commit string, n int) string {
	commit = strings.TrimSpace(commit)
	if n <= 0 || utf8.RuneCountInString(commit) <= n {
		return commit
	}
	return string([]rune(commit)[:n])
}

// lookup returns the first non-empty value among keys.
func lookup(keys ...string) func(Getenv) string {
	return func(env Getenv) string {
		for _, k := range keys {
			if v := strings.TrimSpace(env(k)); v != "" {
				return v
			}
		}
		return ""
	}
}
