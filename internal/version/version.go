// Package version derives build versions from a branch name and a short commit id.
package version

import (
	"regexp"
	"strings"
)

// releasePattern matches release branches such as "release/v1.2.3" or
// "release/1.2.3-rc.1". RE2 matching runs in linear time, so no input can
// make it backtrack.
var releasePattern = regexp.MustCompile(`^release/v?(?P<version>\d+\.\d+\.\d+.*)$`)

// versionGroup is the submatch index of the captured semantic version.
var versionGroup = releasePattern.SubexpIndex("version")

const (
	// DefaultAssemblyVersion is used for every non-release branch.
	DefaultAssemblyVersion = "0.0.0.0"

	// prereleaseBase prefixes the normalized branch of non-release builds.
	prereleaseBase = "0.0.0-"
)

// Info holds the versions calculated for a single build.
type Info struct {
	Version              string `json:"version" yaml:"version"`
	PackageVersion       string `json:"packageVersion" yaml:"packageVersion"`
	AssemblyVersion      string `json:"assemblyVersion" yaml:"assemblyVersion"`
	FileVersion          string `json:"fileVersion" yaml:"fileVersion"`
	InformationalVersion string `json:"informationalVersion" yaml:"informationalVersion"`
	Branch               string `json:"branch" yaml:"branch"`
	CommitID             string `json:"commitId" yaml:"commitId"`
	Release              bool   `json:"release" yaml:"release"`
}

// String returns the human-facing version.
func (i Info) String() string {
	return i.Version
}

type options struct {
	includeCommitMetadata bool
}

// Option configures a calculation.
type Option func(*options)

// WithCommitMetadata controls whether "+<commitId>" build metadata is
// appended to the package and informational versions. Enabled by default.
func WithCommitMetadata(include bool) Option {
	return func(o *options) {
		o.includeCommitMetadata = include
	}
}

// IsRelease reports whether branch names a release branch.
func IsRelease(branch string) bool {
	return releasePattern.MatchString(branch)
}

// Calculate derives the build versions for branch at commitID.
//
// Release branches (release/X.Y.Z or release/vX.Y.Z, optionally followed by a
// pre-release or build suffix) produce the captured semantic version. Any
// other branch, including a release/ branch without a version, produces a
// 0.0.0 pre-release built from the branch name with "/" replaced by ".".
func Calculate(branch, commitID string, opts ...Option) Info {
	o := options{includeCommitMetadata: true}
	for _, opt := range opts {
		opt(&o)
	}

	if m := releasePattern.FindStringSubmatch(branch); m != nil {
		semver := m[versionGroup]
		pkg := withMetadata(semver, commitID, o.includeCommitMetadata)
		assembly := semver + ".0"
		return Info{
			Version:              semver,
			PackageVersion:       pkg,
			AssemblyVersion:      assembly,
			FileVersion:          assembly,
			InformationalVersion: pkg,
			Branch:               branch,
			CommitID:             commitID,
			Release:              true,
		}
	}

	normalized := NormalizeBranch(branch)
	pkg := withMetadata(prereleaseBase+normalized, commitID, o.includeCommitMetadata)
	return Info{
		Version:              normalized + "." + commitID,
		PackageVersion:       pkg,
		AssemblyVersion:      DefaultAssemblyVersion,
		FileVersion:          DefaultAssemblyVersion,
		InformationalVersion: pkg,
		Branch:               branch,
		CommitID:             commitID,
	}
}

// NormalizeBranch replaces every "/" in branch with ".".
func NormalizeBranch(branch string) string {
	return strings.ReplaceAll(branch, "/", ".")
}

func withMetadata(v, commitID string, include bool) string {
	if !include {
		return v
	}
	return v + "+" + commitID
}
