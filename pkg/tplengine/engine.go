// Package tplengine renders text templates against a property mapping. It is
// the single rendering path for both one-shot artifact generators and
// whole-tree materialization.
package tplengine

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/skelter-dev/skelter/pkg/props"
)

// TemplateEngine parses and renders templates. Parsed templates added via
// AddTemplate are cached for reuse across renders; rendering itself is a pure
// function of (template content, property mapping).
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewEngine creates a new template engine.
func NewEngine() *TemplateEngine {
	return &TemplateEngine{
		templates: make(map[string]*template.Template),
	}
}

// AddTemplate parses and caches a template under the given name.
func (e *TemplateEngine) AddTemplate(name, templateStr string) error {
	tmpl, err := parse(name, templateStr)
	if err != nil {
		return err
	}
	e.templates[name] = tmpl
	return nil
}

// HasTemplate returns true if the string contains template markers.
func HasTemplate(template string) bool {
	return strings.Contains(template, "{{") || strings.Contains(template, "{{-")
}

// Render renders a previously added template by name.
func (e *TemplateEngine) Render(name string, mapping props.Map) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}
	return e.renderTemplate(name, tmpl, mapping)
}

// RenderString renders a template string. Strings without template markers
// are returned as is.
func (e *TemplateEngine) RenderString(templateStr string, mapping props.Map) (string, error) {
	if !HasTemplate(templateStr) {
		return templateStr, nil
	}
	tmpl, err := parse("inline", templateStr)
	if err != nil {
		return "", err
	}
	return e.renderTemplate("inline", tmpl, mapping)
}

// RenderFile reads a template file and renders its full content.
func (e *TemplateEngine) RenderFile(filePath string, mapping props.Map) ([]byte, error) {
	templateBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	tmpl, err := parse(filePath, string(templateBytes))
	if err != nil {
		return nil, err
	}
	rendered, err := e.renderTemplate(filePath, tmpl, mapping)
	if err != nil {
		return nil, err
	}
	return []byte(rendered), nil
}

func parse(name, templateStr string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(sprig.FuncMap()).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	return tmpl, nil
}

// renderTemplate executes a parsed template. Iteration scopes are expanded
// first so each sequence element sees the enclosing keys it does not shadow.
func (e *TemplateEngine) renderTemplate(name string, tmpl *template.Template, mapping props.Map) (string, error) {
	expanded, err := props.ExpandScopes(mapping)
	if err != nil {
		return "", err
	}
	if expanded == nil {
		expanded = props.Map{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, expanded); err != nil {
		return "", classifyExecError(name, err)
	}
	return buf.String(), nil
}
