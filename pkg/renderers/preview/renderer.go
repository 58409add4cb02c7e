// Package preview renders a standalone HTML page showing the field values,
// the highlighted prompt text and the highlighted record document.
package preview

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
	rendertemplate "github.com/goliatone/go-promptgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-promptgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-promptgen/pkg/renderers/highlight"
)

type Option func(*options)

type options struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(o *options) {
		o.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates found
// there take precedence over the bundle by name.
func WithTemplatesDir(path string) Option {
	return func(o *options) {
		o.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet. An empty string inlines
// nothing.
func WithStylesheet(css string) Option {
	return func(o *options) {
		o.stylesheet = &css
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the preview renderer applying any provided options. The
// stylesheet is published to the template renderer as the "stylesheet" global.
func New(opts ...Option) (*Renderer, error) {
	o := options{templateFS: TemplatesFS()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	if o.templateFS == nil {
		o.templateFS = TemplatesFS()
	}

	renderer := o.templateRenderer
	if renderer == nil {
		sources := []gotemplate.Option{gotemplate.WithFS(o.templateFS)}
		if o.templateDir != "" {
			sources = append(sources, gotemplate.WithBaseDir(o.templateDir))
		}
		engine, err := gotemplate.New(sources...)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if o.stylesheet != nil {
		stylesheet = *o.stylesheet
	}
	if err := renderer.GlobalContext(map[string]any{"stylesheet": stylesheet}); err != nil {
		return nil, fmt.Errorf("preview renderer: stylesheet: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "preview"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, output generator.Output, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("preview renderer: template renderer is nil")
	}

	jsonHTML, err := highlight.Fragment(output, render.ViewJSON)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}
	textHTML, err := highlight.Fragment(output, render.ViewText)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}

	data := map[string]any{
		"name":       output.Record.Name,
		"category":   output.Record.Category,
		"id":         output.Record.ID.Hex,
		"created_at": output.Record.CreatedAt.String(),
		"fields":     fieldRows(output),
		"json_html":  highlight.Sanitize(jsonHTML),
		"text_html":  highlight.Sanitize(textHTML),
	}
	applyTheme(data, options.Theme)

	result, err := r.templates.RenderTemplate(pageTemplate(options.Theme), data)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func pageTemplate(cfg *theme.RendererConfig) string {
	if cfg != nil {
		if name := cfg.Partials[PagePartial]; name != "" {
			return name
		}
	}
	return PageTemplate
}

func applyTheme(data map[string]any, cfg *theme.RendererConfig) {
	data["variant"] = ""
	data["css_vars"] = []map[string]string{}
	data["stylesheet_url"] = ""
	if cfg == nil {
		return
	}

	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]map[string]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, map[string]string{"name": name, "value": cfg.CSSVars[name]})
	}

	data["variant"] = cfg.Variant
	data["css_vars"] = vars
	if cfg.AssetURL != nil {
		data["stylesheet_url"] = cfg.AssetURL("stylesheet")
	}
}

func fieldRows(output generator.Output) []map[string]string {
	fields := output.Record.Parameters.Fields()
	rows := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, map[string]string{
			"name":  field.Name,
			"label": field.DisplayLabel(),
			"value": field.Value,
			"class": "var-" + highlight.ClassName(field.Name),
		})
	}
	return rows
}
