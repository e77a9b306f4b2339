package template

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Engine handles template loading and rendering.
type Engine struct {
	templates map[string]*template.Template
}

// New creates a new template engine.
func New() *Engine {
	return &Engine{
		templates: make(map[string]*template.Template),
	}
}

// LoadBuiltin loads a template shipped with the binary, e.g. "gosource".
func (e *Engine) LoadBuiltin(name string) error {
	content, err := builtin.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return fmt.Errorf("reading builtin template %q: %w", name, err)
	}

	return e.LoadString(name, string(content))
}

// LoadFile loads a template from a file path.
func (e *Engine) LoadFile(name, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}

	return e.LoadString(name, string(content))
}

// LoadString loads a template from a string.
func (e *Engine) LoadString(name, content string) error {
	tmpl, err := template.New(name).Funcs(FuncMap()).Parse(content)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	e.templates[name] = tmpl
	return nil
}

// Render renders a template with the given data.
func (e *Engine) Render(name string, data any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
