// Package gotemplate implements template.TemplateRenderer on top of pongo2.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-promptgen/pkg/render/template"
)

// Ext is appended to template names given without an extension.
const Ext = ".tpl"

// Option selects where templates are loaded from.
type Option func(*sources)

type sources struct {
	dir   string
	files fs.FS
}

// WithBaseDir loads templates from a directory on disk. A template found there
// shadows the same name in the fs.FS given to WithFS.
func WithBaseDir(dir string) Option {
	return func(s *sources) {
		s.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(s *sources) {
		s.files = files
	}
}

// Engine renders pongo2 templates from a single template set. Parsed
// templates are cached by the set.
type Engine struct {
	set *pongo2.TemplateSet

	// mu guards set.Globals; renders hold it for reading.
	mu sync.RWMutex
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	var src sources
	for _, opt := range options {
		if opt != nil {
			opt(&src)
		}
	}

	loaders, err := src.loaders()
	if err != nil {
		return nil, err
	}
	registerFilters()

	set := pongo2.NewSet("promptgen", loaders...)
	if set.Globals == nil {
		set.Globals = pongo2.Context{}
	}
	return &Engine{set: set}, nil
}

func (s sources) loaders() ([]pongo2.TemplateLoader, error) {
	var out []pongo2.TemplateLoader
	if s.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", s.dir, err)
		}
		out = append(out, local)
	}
	if s.files != nil {
		out = append(out, pongo2.NewFSLoader(s.files))
	}
	if len(out) == 0 {
		return nil, errors.New("gotemplate: a template dir or fs.FS is required")
	}
	return out, nil
}

// RenderTemplate renders the named template. Names without an extension get
// Ext appended.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if path.Ext(name) == "" {
		name += Ext
	}

	tpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: render %q: %w", name, err)
	}

	e.mu.RLock()
	rendered, err := tpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: render %q: %w", name, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return rendered, err
		}
	}
	return rendered, nil
}

// GlobalContext merges data into the globals of every template. Later calls
// overwrite earlier keys; per-render data overwrites globals.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: globals: %w", err)
	}

	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		return nil, fmt.Errorf("unsupported data %T, want map[string]any", data)
	}
}

func registerFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", trimFilter)
	}
}

func trimFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
