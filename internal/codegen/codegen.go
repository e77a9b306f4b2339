// Package codegen writes calculated versions as Go constants.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/saltyorg/branchver/internal/template"
	"github.com/saltyorg/branchver/internal/version"
)

const builtinTemplate = "gosource"

// SourceData contains data for the Go source template.
type SourceData struct {
	Package string       // e.g., "buildinfo"
	Prefix  string       // e.g., "App" yields AppVersion, AppBranch, ...
	Info    version.Info // calculated versions
}

// Generator renders Go source files from a template.
type Generator struct {
	engine *template.Engine
	name   string
}

// NewGenerator creates a generator using the builtin template, or the
// template at templatePath when it is non-empty.
func NewGenerator(templatePath string) (*Generator, error) {
	engine := template.New()
	name := builtinTemplate

	if templatePath != "" {
		name = filepath.Base(templatePath)
		if err := engine.LoadFile(name, templatePath); err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
	} else if err := engine.LoadBuiltin(name); err != nil {
		return nil, err
	}

	return &Generator{engine: engine, name: name}, nil
}

// Render produces gofmt-formatted Go source for data.
func (g *Generator) Render(data SourceData) ([]byte, error) {
	src, err := g.engine.Render(g.name, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", g.name, err)
	}

	formatted, err := format.Source([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}

	return formatted, nil
}

// WriteFile renders data to path, creating parent directories as needed.
// Returns true if the file content actually changed.
func (g *Generator) WriteFile(path string, data SourceData) (bool, error) {
	content, err := g.Render(data)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}

	return true, nil
}
