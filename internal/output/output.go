// Package output renders calculated versions for terminals, scripts, and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saltyorg/branchver/internal/version"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText      Format = "text"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatEnv       Format = "env"
	FormatGitHubEnv Format = "github-env"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatEnv, FormatGitHubEnv}

// Field is a named version field.
type Field struct {
	Name  string // e.g., "PackageVersion"
	Key   string // e.g., "package_version"
	Value string
}

// Fields returns the fields of info in display order.
func Fields(info version.Info) []Field {
	return []Field{
		{Name: "Version", Key: "version", Value: info.Version},
		{Name: "Branch", Key: "branch", Value: info.Branch},
		{Name: "CommitId", Key: "commit_id", Value: info.CommitID},
		{Name: "PackageVersion", Key: "package_version", Value: info.PackageVersion},
		{Name: "AssemblyVersion", Key: "assembly_version", Value: info.AssemblyVersion},
		{Name: "FileVersion", Key: "file_version", Value: info.FileVersion},
		{Name: "InformationalVersion", Key: "informational_version", Value: info.InformationalVersion},
		{Name: "Release", Key: "release", Value: strconv.FormatBool(info.Release)},
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected one of %s)", s, formatList())
}

// Write renders info to w in the given format.
func Write(w io.Writer, info version.Info, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, info)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatEnv:
		return writeEnv(w, info)
	case FormatGitHubEnv:
		_, err := io.WriteString(w, GitHubEnv(info))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, info version.Info) error {
	fields := Fields(info)
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}

	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("%-*s %s\n", width+1, f.Name+":", f.Value))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeEnv emits shell-sourceable assignments. Values are single-quoted
// because branch names may contain shell metacharacters.
func writeEnv(w io.Writer, info version.Info) error {
	var sb strings.Builder
	for _, f := range Fields(info) {
		sb.WriteString(fmt.Sprintf("BRANCHVER_%s=%s\n", strings.ToUpper(f.Key), shellQuote(f.Value)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// GitHubEnv formats info for appending to $GITHUB_ENV. The runner keeps
// values verbatim, so they are written unquoted; multi-line values use the
// NAME<<DELIMITER form.
func GitHubEnv(info version.Info) string {
	var sb strings.Builder
	for _, f := range Fields(info) {
		name := "BRANCHVER_" + strings.ToUpper(f.Key)
		if !strings.ContainsAny(f.Value, "\r\n") {
			sb.WriteString(fmt.Sprintf("%s=%s\n", name, f.Value))
			continue
		}
		delim := heredocDelimiter(f.Value)
		sb.WriteString(fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, f.Value, delim))
	}
	return sb.String()
}

// heredocDelimiter returns a delimiter that does not occur in value.
func heredocDelimiter(value string) string {
	delim := "BRANCHVER_EOF"
	for strings.Contains(value, delim) {
		delim += "_"
	}
	return delim
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
