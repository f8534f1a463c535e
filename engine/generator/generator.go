// Package generator produces single rendered artifacts (view and controller
// code) for a data model. Generator variants share one pipeline: model
// metadata feeds the column descriptor builder, the resulting properties are
// layered over the caller's base set, and the template engine renders the
// artifact.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skelter-dev/skelter/engine/schema"
	"github.com/skelter-dev/skelter/pkg/logger"
	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
)

// Kind selects a view generator variant. Each variant contributes its own
// properties on top of the shared pipeline.
type Kind string

const (
	KindAdd   Kind = "add"
	KindEdit  Kind = "edit"
	KindList  Kind = "list"
	KindShow  Kind = "show"
	KindIndex Kind = "index"
)

// kindProperties is the per-variant property-building step.
var kindProperties = map[Kind]props.Map{
	KindAdd:   {"action": "add", "form": true, "submit_label": "Create"},
	KindEdit:  {"action": "edit", "form": true, "submit_label": "Update"},
	KindList:  {"action": "list", "form": false, "paged": true},
	KindShow:  {"action": "show", "form": false},
	KindIndex: {"action": "index", "form": false},
}

// Kinds lists the supported generator kinds.
func Kinds() []Kind {
	return []Kind{KindAdd, KindEdit, KindList, KindShow, KindIndex}
}

// ViewGenerator renders one view artifact per invocation.
type ViewGenerator struct {
	kind              Kind
	provider          schema.Provider
	engine            *tplengine.TemplateEngine
	longTextThreshold int
}

// NewViewGenerator creates a generator for the given kind.
func NewViewGenerator(
	kind Kind,
	provider schema.Provider,
	engine *tplengine.TemplateEngine,
	longTextThreshold int,
) (*ViewGenerator, error) {
	if _, ok := kindProperties[kind]; !ok {
		return nil, fmt.Errorf("unknown generator kind %q", kind)
	}
	if provider == nil {
		return nil, fmt.Errorf("metadata provider is required")
	}
	return &ViewGenerator{
		kind:              kind,
		provider:          provider,
		engine:            engine,
		longTextThreshold: longTextThreshold,
	}, nil
}

// Generate renders the view for a model from the template at templatePath.
// base carries inherited properties; generator-specific properties win on
// collision.
func (g *ViewGenerator) Generate(ctx context.Context, model, templatePath string, base props.Map) (string, error) {
	info, err := g.provider.ModelInfo(ctx, model)
	if err != nil {
		return "", err
	}
	columns := schema.BuildColumns(info, g.longTextThreshold)
	own := props.Map{
		"model":       model,
		"model_lower": strings.ToLower(model),
		"columns":     schema.ColumnProps(columns),
	}
	own, err = props.Layer(own, kindProperties[g.kind])
	if err != nil {
		return "", err
	}
	merged, err := props.Layer(base, own)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Debug("generating view",
		"kind", g.kind, "model", model, "columns", len(columns))
	out, err := g.engine.RenderFile(templatePath, merged)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ControllerGenerator renders a controller artifact to a file. Used during
// app creation after the skeleton is materialized.
type ControllerGenerator struct {
	engine *tplengine.TemplateEngine
}

func NewControllerGenerator(engine *tplengine.TemplateEngine) *ControllerGenerator {
	return &ControllerGenerator{engine: engine}
}

// Generate renders templatePath with the mapping and writes the result to
// outputPath, creating parent directories as needed.
func (g *ControllerGenerator) Generate(ctx context.Context, templatePath, outputPath string, mapping props.Map) error {
	out, err := g.engine.RenderFile(templatePath, mapping)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	logger.FromContext(ctx).Debug("generated controller", "output", outputPath)
	return nil
}
