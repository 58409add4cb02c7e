package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/export"
	"github.com/goliatone/go-promptgen/pkg/form"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
	"github.com/goliatone/go-promptgen/pkg/renderers/highlight"
	"github.com/goliatone/go-promptgen/pkg/renderers/plain"
	"github.com/goliatone/go-promptgen/pkg/renderers/preview"
	"github.com/goliatone/go-promptgen/pkg/renderers/terminal"
	"github.com/goliatone/go-promptgen/pkg/storage"
	"github.com/goliatone/go-promptgen/pkg/theme"
)

const defaultRendererName = "text"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the built-in field configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
		o.cfgSet = true
	}
}

// WithStore sets the key-value store backing the draft and theme preference.
// The orchestrator closes it on Close.
func WithStore(store storage.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDebounce sets the draft write delay of the form model.
func WithDebounce(delay time.Duration) Option {
	return func(o *Orchestrator) {
		o.debounce = &delay
	}
}

// WithGeneratorOptions forwards options to the generator, typically a clock.
func WithGeneratorOptions(options ...generator.Option) Option {
	return func(o *Orchestrator) {
		o.generatorOptions = append(o.generatorOptions, options...)
	}
}

// WithListener registers a form listener.
func WithListener(listener form.Listener) Option {
	return func(o *Orchestrator) {
		if listener != nil {
			o.listeners = append(o.listeners, listener)
		}
	}
}

// WithThemeSelector replaces the built-in light/dark selector.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// Orchestrator owns one prompt session. It applies sensible defaults
// (built-in fields, in-memory store, every bundled renderer) while remaining
// open to dependency injection.
type Orchestrator struct {
	cfg              config.Config
	cfgSet           bool
	store            storage.Store
	registry         *render.Registry
	defaultRenderer  string
	debounce         *time.Duration
	generatorOptions []generator.Option
	listeners        []form.Listener
	themeSelector    gotheme.ThemeSelector
	initialiseErr    error

	preference *theme.Preference
	exporter   *export.Exporter

	openOnce sync.Once
	form     *form.Model
	openErr  error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a render of the current session.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// View selects the document for renderers presenting either one. Empty
	// uses the renderer's default view.
	View render.View

	// ThemeName and ThemeVariant override the selection. An empty variant
	// uses the stored preference.
	ThemeName    string
	ThemeVariant string
}

// Config returns the active field configuration.
func (o *Orchestrator) Config() config.Config {
	return o.cfg
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Theme exposes the persisted theme preference.
func (o *Orchestrator) Theme() *theme.Preference {
	return o.preference
}

// Open builds the form model on first use, loading any persisted draft.
func (o *Orchestrator) Open(ctx context.Context) (*form.Model, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	o.openOnce.Do(func() {
		opts := []form.Option{
			form.WithDraftStore(storage.NewDraftStore(o.store, o.cfg.DraftKey())),
			form.WithGenerator(generator.New(o.cfg, o.generatorOptions...)),
		}
		if o.debounce != nil {
			opts = append(opts, form.WithDebounce(*o.debounce))
		}
		for _, listener := range o.listeners {
			opts = append(opts, form.WithListener(listener))
		}
		o.form, o.openErr = form.New(ctx, o.cfg, opts...)
		if o.openErr != nil {
			o.openErr = fmt.Errorf("orchestrator: open form: %w", o.openErr)
		}
	})
	return o.form, o.openErr
}

// Render presents the current output with the requested renderer. Renderer
// failures produce the placeholder message instead of an error.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	m, err := o.Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	view := req.View
	if view == "" {
		if viewer, ok := renderer.(render.DefaultViewer); ok {
			view = viewer.DefaultView()
		}
	}

	themeConfig, err := o.themeConfig(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := render.RenderOptions{View: view, Theme: themeConfig}
	output, err := m.Output()
	if err != nil {
		klog.Warningf("orchestrator: output unavailable: %v", err)
		return []byte(render.Placeholder(view)), nil
	}
	return render.Safe(renderer).Render(ctx, output, opts)
}

// Export writes the current output to dir and returns the file path.
func (o *Orchestrator) Export(ctx context.Context, dir string, format export.Format) (string, error) {
	m, err := o.Open(ctx)
	if err != nil {
		return "", err
	}
	output, err := m.Output()
	if err != nil {
		return "", fmt.Errorf("orchestrator: export: %w", err)
	}
	return o.exporter.Write(ctx, dir, output, format)
}

// Close flushes pending draft writes and closes the store.
func (o *Orchestrator) Close(ctx context.Context) error {
	var errs []error
	if o.form != nil {
		if err := o.form.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if o.store != nil {
		if err := o.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("orchestrator: close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) themeConfig(ctx context.Context, req Request) (*gotheme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	variant := req.ThemeVariant
	if variant == "" {
		stored, err := o.preference.Get(ctx)
		if err != nil {
			klog.Warningf("orchestrator: %v", err)
		}
		variant = stored
	}
	selection, err := o.themeSelector.Select(req.ThemeName, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return theme.RendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if !o.cfgSet {
		o.cfg = config.Default()
	}
	if err := o.cfg.Validate(); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
		return
	}
	if o.store == nil {
		o.store = storage.NewMemoryStore()
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		selector, err := theme.NewSelector()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme selector: %w", err)
			return
		}
		o.themeSelector = selector
	}
	o.preference = theme.NewPreference(o.store, o.cfg.ThemeKey())
	o.exporter = export.New(o.cfg)
}

// DefaultRegistry registers every bundled renderer.
func DefaultRegistry() (*render.Registry, error) {
	page, err := preview.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(
		plain.NewJSON(),
		plain.NewText(),
		highlight.New(),
		page,
		terminal.New(),
	)
}
