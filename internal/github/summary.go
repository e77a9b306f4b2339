package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/saltyorg/branchver/internal/output"
	"github.com/saltyorg/branchver/internal/version"
)

// Publisher writes calculated versions to GitHub Actions step files.
type Publisher struct {
	getenv func(string) string
}

// NewPublisher creates a publisher that reads the process environment.
func NewPublisher() *Publisher {
	return &Publisher{getenv: os.Getenv}
}

// Enabled reports whether we're running in GitHub Actions.
func (p *Publisher) Enabled() bool {
	return p.getenv("GITHUB_ACTIONS") == "true"
}

// Publish writes step outputs and the step summary. It is a no-op outside
// GitHub Actions or when the corresponding file variable is unset.
func (p *Publisher) Publish(info version.Info) error {
	if !p.Enabled() {
		return nil
	}

	if err := appendFile(p.getenv("GITHUB_OUTPUT"), Outputs(info)); err != nil {
		return fmt.Errorf("writing step outputs: %w", err)
	}

	if err := appendFile(p.getenv("GITHUB_STEP_SUMMARY"), Summary(info)); err != nil {
		return fmt.Errorf("writing step summary: %w", err)
	}

	return nil
}

// Outputs formats info as GITHUB_OUTPUT key=value lines.
func Outputs(info version.Info) string {
	var sb strings.Builder
	for _, f := range output.Fields(info) {
		// Values are single-line; a newline would start a new output
		value := strings.NewReplacer("\r", "", "\n", "").Replace(f.Value)
		sb.WriteString(fmt.Sprintf("%s=%s\n", f.Key, value))
	}
	return sb.String()
}

// Summary formats info as a Markdown step summary.
func Summary(info version.Info) string {
	var sb strings.Builder

	kind := "Branch build"
	if info.Release {
		kind = "Release build"
	}

	sb.WriteString("## 🏷️ Build Version\n\n")
	sb.WriteString(fmt.Sprintf("**%s** of %s at %s\n\n", kind, codeSpan(info.Branch), codeSpan(info.CommitID)))

	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	for _, f := range output.Fields(info) {
		// Escape pipe characters in branch names
		value := strings.ReplaceAll(codeSpan(f.Value), "|", "\\|")
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", f.Name, value))
	}
	sb.WriteString("\n")

	return sb.String()
}

// codeSpan wraps s in a Markdown code span, using a backtick fence longer
// than any backtick run inside s.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if longest > 0 {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

func appendFile(path, content string) error {
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
