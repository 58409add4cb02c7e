package promptgen

import (
	"context"
	"errors"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/form"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/model"
	"github.com/goliatone/go-promptgen/pkg/orchestrator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

// Request aliases orchestrator.Request so callers can describe a render
// without importing the orchestrator package.
type Request = orchestrator.Request

// RenderOptions describes per-render options handed to renderers.
type RenderOptions = render.RenderOptions

// Output is the record, JSON document and prompt text derived from a field set.
type Output = generator.Output

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate derives the outputs for cfg's defaults overlaid with values. Names
// missing from cfg are rejected.
func Generate(cfg config.Config, values map[string]string, options ...generator.Option) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}
	fields := model.FromConfig(cfg)
	for name, value := range values {
		if !fields.Set(name, value) {
			return Output{}, &form.FieldError{Field: name, Err: form.ErrUnknownField}
		}
	}
	return generator.New(cfg, options...).Generate(fields)
}

// Render builds an in-memory session, applies values and renders it with the
// named renderer. It is the simplest entry point for callers that just want
// one document.
func Render(ctx context.Context, rendererName string, values map[string]string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	m, err := gen.Open(ctx)
	if err != nil {
		return nil, err
	}
	for name, value := range values {
		if _, err := m.SetField(name, value); err != nil {
			return nil, errors.Join(err, gen.Close(ctx))
		}
	}
	out, err := gen.Render(ctx, Request{Renderer: rendererName})
	return out, errors.Join(err, gen.Close(ctx))
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
