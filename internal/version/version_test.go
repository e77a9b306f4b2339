package version

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ReleaseBranch(t *testing.T) {
	tests := []struct {
		branch       string
		commitID     string
		wantVersion  string
		wantPackage  string
		wantAssembly string
	}{
		{"release/v1.2.3", "abc1234", "1.2.3", "1.2.3+abc1234", "1.2.3.0"},
		{"release/1.2.3", "abc1234", "1.2.3", "1.2.3+abc1234", "1.2.3.0"},
		{"release/v0.0.1", "def5678", "0.0.1", "0.0.1+def5678", "0.0.1.0"},
		{"release/v10.20.30", "ghi9012", "10.20.30", "10.20.30+ghi9012", "10.20.30.0"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			info := Calculate(tt.branch, tt.commitID)

			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantPackage, info.PackageVersion)
			assert.Equal(t, tt.wantAssembly, info.AssemblyVersion)
			assert.Equal(t, tt.wantAssembly, info.FileVersion)
			assert.Equal(t, tt.wantPackage, info.InformationalVersion)
			assert.True(t, info.Release)
			assert.Equal(t, tt.branch, info.Branch)
			assert.Equal(t, tt.commitID, info.CommitID)
		})
	}
}

func TestCalculate_ReleaseBranchWithPrerelease(t *testing.T) {
	tests := []struct {
		branch       string
		commitID     string
		wantVersion  string
		wantPackage  string
		wantAssembly string
	}{
		{"release/v1.2.3-beta", "abc1234", "1.2.3-beta", "1.2.3-beta+abc1234", "1.2.3-beta.0"},
		{"release/1.2.3-beta", "abc1234", "1.2.3-beta", "1.2.3-beta+abc1234", "1.2.3-beta.0"},
		{"release/v1.2.3-rc.1", "abc1234", "1.2.3-rc.1", "1.2.3-rc.1+abc1234", "1.2.3-rc.1.0"},
		{"release/1.0.0-alpha", "def5678", "1.0.0-alpha", "1.0.0-alpha+def5678", "1.0.0-alpha.0"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			info := Calculate(tt.branch, tt.commitID)

			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantPackage, info.PackageVersion)
			assert.Equal(t, tt.wantAssembly, info.AssemblyVersion)
		})
	}
}

func TestCalculate_OtherBranches(t *testing.T) {
	tests := []struct {
		branch      string
		commitID    string
		wantVersion string
		wantPackage string
	}{
		{"feature/login", "abc1234", "feature.login.abc1234", "0.0.0-feature.login+abc1234"},
		{"feature/user-auth", "def5678", "feature.user-auth.def5678", "0.0.0-feature.user-auth+def5678"},
		{"bugfix/issue-42", "ghi9012", "bugfix.issue-42.ghi9012", "0.0.0-bugfix.issue-42+ghi9012"},
		{"hotfix/critical", "jkl3456", "hotfix.critical.jkl3456", "0.0.0-hotfix.critical+jkl3456"},
		{"main", "abc1234", "main.abc1234", "0.0.0-main+abc1234"},
		{"master", "def5678", "master.def5678", "0.0.0-master+def5678"},
		{"develop", "ghi9012", "develop.ghi9012", "0.0.0-develop+ghi9012"},
		{"user/john/feature", "abc1234", "user.john.feature.abc1234", "0.0.0-user.john.feature+abc1234"},
		{"refs/heads/main", "def5678", "refs.heads.main.def5678", "0.0.0-refs.heads.main+def5678"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			info := Calculate(tt.branch, tt.commitID)

			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantPackage, info.PackageVersion)
			assert.Equal(t, DefaultAssemblyVersion, info.AssemblyVersion)
			assert.Equal(t, DefaultAssemblyVersion, info.FileVersion)
			assert.Equal(t, tt.wantPackage, info.InformationalVersion)
			assert.False(t, info.Release)
			assert.NotContains(t, info.Version, "/")
		})
	}
}

func TestCalculate_MalformedReleaseIsOrdinaryBranch(t *testing.T) {
	tests := []struct {
		branch      string
		wantVersion string
	}{
		{"release/feature-x", "release.feature-x.abc1234"},
		{"release/v1.2", "release.v1.2.abc1234"},
		{"release/V1.2.3", "release.V1.2.3.abc1234"},
		{"Release/1.2.3", "Release.1.2.3.abc1234"},
		{"origin/release/1.2.3", "origin.release.1.2.3.abc1234"},
		{"release/", "release..abc1234"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			info := Calculate(tt.branch, "abc1234")

			assert.False(t, info.Release)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, DefaultAssemblyVersion, info.AssemblyVersion)
		})
	}

	info := Calculate("release/feature-x", "abc1234")
	assert.Equal(t, "0.0.0-release.feature-x+abc1234", info.PackageVersion)
}

func TestCalculate_WithoutMetadata(t *testing.T) {
	tests := []struct {
		branch      string
		commitID    string
		wantPackage string
	}{
		{"release/v1.2.3", "abc1234", "1.2.3"},
		{"feature/login", "abc1234", "0.0.0-feature.login"},
		{"main", "def5678", "0.0.0-main"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			with := Calculate(tt.branch, tt.commitID)
			without := Calculate(tt.branch, tt.commitID, WithCommitMetadata(false))

			assert.Equal(t, tt.wantPackage, without.PackageVersion)
			assert.Equal(t, tt.wantPackage, without.InformationalVersion)
			assert.Equal(t, with.PackageVersion, without.PackageVersion+"+"+tt.commitID)

			// Only the package and informational versions differ.
			with.PackageVersion, with.InformationalVersion = without.PackageVersion, without.InformationalVersion
			assert.Equal(t, with, without)
		})
	}
}

func TestCalculate_DefaultIncludesMetadata(t *testing.T) {
	info := Calculate("release/v1.0.0", "abc1234")
	assert.Equal(t, "1.0.0+abc1234", info.PackageVersion)

	explicit := Calculate("release/v1.0.0", "abc1234", WithCommitMetadata(true))
	assert.Equal(t, info, explicit)
}

func TestCalculate_Deterministic(t *testing.T) {
	branches := []string{"release/v2.0.0-rc.2", "feature/a/b/c", "main", "", "release/x"}
	for _, b := range branches {
		assert.Equal(t, Calculate(b, "0123abc"), Calculate(b, "0123abc"))
	}
}

func TestCalculate_Concurrent(t *testing.T) {
	want := Calculate("release/v3.1.4", "cafe123")

	var wg sync.WaitGroup
	results := make([]Info, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Calculate("release/v3.1.4", "cafe123")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestCalculate_PathologicalInput(t *testing.T) {
	branch := "release/1.1.1" + strings.Repeat(".1", 50000) + "\n"

	info := Calculate(branch, "abc1234")
	assert.False(t, info.Release)
	assert.Equal(t, DefaultAssemblyVersion, info.AssemblyVersion)
}

func TestIsRelease(t *testing.T) {
	assert.True(t, IsRelease("release/v1.2.3"))
	assert.True(t, IsRelease("release/1.2.3+build.5"))
	assert.False(t, IsRelease("release/next"))
	assert.False(t, IsRelease("main"))
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "feature.login.abc1234", Calculate("feature/login", "abc1234").String())
}
