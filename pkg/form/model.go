// Package form owns the mutable field state of a prompt session. Every
// successful mutation regenerates the derived outputs synchronously and
// schedules a debounced draft write.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/debounce"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/jsonvalue"
	"github.com/goliatone/go-promptgen/pkg/model"
	"github.com/goliatone/go-promptgen/pkg/storage"
)

// DefaultDebounce matches the delay applied to interactive edits.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a Model.
type Option func(*Model)

// WithDraftStore enables draft persistence. Without it the model keeps state
// in memory only.
func WithDraftStore(drafts *storage.DraftStore) Option {
	return func(m *Model) {
		if drafts != nil {
			m.drafts = drafts
		}
	}
}

// WithGenerator overrides the generator, typically to inject a clock.
func WithGenerator(gen *generator.Generator) Option {
	return func(m *Model) {
		if gen != nil {
			m.gen = gen
		}
	}
}

// WithDebounce sets the draft write delay. Zero writes synchronously.
func WithDebounce(delay time.Duration) Option {
	return func(m *Model) {
		if delay < 0 {
			delay = 0
		}
		m.delay = delay
	}
}

// WithListener registers a callback invoked after every mutation.
func WithListener(listener Listener) Option {
	return func(m *Model) {
		if listener != nil {
			m.listeners = append(m.listeners, listener)
		}
	}
}

// Model is the single owner of the field set. It is safe for concurrent use;
// debounced writes run on a timer goroutine.
type Model struct {
	cfg       config.Config
	gen       *generator.Generator
	drafts    *storage.DraftStore
	delay     time.Duration
	listeners []Listener
	debounce  *debounce.Debouncer

	mu            sync.Mutex
	defaults      model.FieldSet
	fields        model.FieldSet
	output        generator.Output
	outputErr     error
	dirty         bool
	revision      uint64
	savedRevision uint64

	// saveMu orders draft writes against each other and against Reset.
	saveMu sync.Mutex
}

// New builds a model from cfg, merging any persisted draft over the
// configured defaults. A corrupt draft is logged and ignored.
func New(ctx context.Context, cfg config.Config, options ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	m := &Model{
		cfg:   cfg,
		delay: DefaultDebounce,
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	if m.gen == nil {
		m.gen = generator.New(cfg)
	}

	m.defaults = model.FromConfig(cfg)
	m.fields = m.defaults.Clone()
	if m.drafts != nil {
		loaded, err := m.drafts.Load(ctx, m.defaults)
		switch {
		case err == nil:
			m.fields = loaded
		case errors.Is(err, storage.ErrCorruptDraft):
			klog.Warningf("form: ignoring persisted draft: %v", err)
		default:
			klog.Warningf("form: draft unavailable, using defaults: %v", err)
		}
	}
	m.regenerate()
	m.debounce = debounce.New(m.delay, m.persist)

	klog.V(2).Infof("form: initialised %d fields (draft=%t, debounce=%s)", m.fields.Len(), m.drafts != nil, m.delay)
	return m, nil
}

// Config returns the configuration the model was built with.
func (m *Model) Config() config.Config {
	return m.cfg
}

// Fields returns a snapshot of the current field set.
func (m *Model) Fields() model.FieldSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields.Clone()
}

// Defaults returns the configured default field set.
func (m *Model) Defaults() model.FieldSet {
	return m.defaults.Clone()
}

// Value returns the current value of a field.
func (m *Model) Value(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fields.Has(name) {
		return "", false
	}
	return m.fields.Value(name), true
}

// Field returns the named field. Unknown names return a *FieldError
// wrapping ErrUnknownField.
func (m *Model) Field(name string) (model.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	field, ok := m.fields.Get(name)
	if !ok {
		return model.Field{}, &FieldError{Field: name, Suggestions: suggest(name, m.fields.Names()), Err: ErrUnknownField}
	}
	return field, nil
}

// Dirty reports whether there are edits not yet confirmed as persisted.
func (m *Model) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Output returns the outputs derived from the current field set.
func (m *Model) Output() (generator.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.output, m.outputErr
}

// SetField replaces the value of an existing field and reports whether the
// value changed. Setting the current value again is a no-op. Unknown names
// return a *FieldError wrapping ErrUnknownField.
func (m *Model) SetField(name, value string) (bool, error) {
	m.mu.Lock()
	if !m.fields.Has(name) {
		names := m.fields.Names()
		m.mu.Unlock()
		return false, &FieldError{Field: name, Suggestions: suggest(name, names), Err: ErrUnknownField}
	}
	if m.fields.Value(name) == value {
		m.mu.Unlock()
		return false, nil
	}
	m.fields.Set(name, value)
	m.touch()
	event := m.event(EventFieldChanged, []string{name})
	m.mu.Unlock()

	klog.V(4).Infof("form: field %q updated", name)
	m.notify(event)
	m.debounce.Trigger()
	return true, nil
}

// Import parses raw as JSON and applies it with ImportValue. Malformed input
// returns ErrInvalidImport and leaves the field set unchanged.
func (m *Model) Import(raw []byte) ([]string, error) {
	value, err := jsonvalue.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return m.ImportValue(value)
}

// ImportValue copies string members of value onto same-named fields. When
// value nests an object under model.ParametersKey that object is the source,
// otherwise value itself is. Non-string members and unknown keys are ignored;
// fields absent from the source keep their value. It returns the names of the
// fields the source provided.
func (m *Model) ImportValue(value jsonvalue.Value) ([]string, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrInvalidImport, value.Kind())
	}
	source := value
	if nested, ok := value.Get(model.ParametersKey); ok && nested.IsObject() {
		source = nested
	}

	m.mu.Lock()
	var applied []string
	for _, name := range m.fields.Names() {
		text, ok := source.GetString(name)
		if !ok {
			continue
		}
		m.fields.Set(name, text)
		applied = append(applied, name)
	}
	m.touch()
	event := m.event(EventImported, applied)
	m.mu.Unlock()

	klog.V(2).Infof("form: imported %d fields", len(applied))
	m.notify(event)
	m.debounce.Trigger()
	return applied, nil
}

// Reset restores the configured defaults, drops any pending write and clears
// the persisted draft. The in-memory reset happens even when clearing the
// draft fails.
func (m *Model) Reset(ctx context.Context) error {
	m.debounce.Cancel()

	m.saveMu.Lock()
	m.mu.Lock()
	m.fields = m.defaults.Clone()
	m.revision++
	m.savedRevision = m.revision
	m.dirty = false
	m.regenerate()
	event := m.event(EventReset, m.fields.Names())
	m.mu.Unlock()

	var err error
	if m.drafts != nil {
		if clearErr := m.drafts.Clear(ctx); clearErr != nil {
			err = fmt.Errorf("form: reset: %w", clearErr)
		}
	}
	m.saveMu.Unlock()

	klog.V(2).Info("form: reset to defaults")
	m.notify(event)
	return err
}

// Save writes the current values to the draft store unless they are already
// persisted. Dirty is cleared when no newer mutation raced the write. Without
// a draft store Save does nothing and the model stays dirty.
func (m *Model) Save(ctx context.Context) error {
	if m.drafts == nil {
		return nil
	}
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.mu.Lock()
	rev := m.revision
	if rev == m.savedRevision {
		m.mu.Unlock()
		return nil
	}
	snapshot := m.fields.Clone()
	m.mu.Unlock()

	if err := m.drafts.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("form: save: %w", err)
	}

	m.mu.Lock()
	m.savedRevision = rev
	if m.revision == rev {
		m.dirty = false
	}
	m.mu.Unlock()
	return nil
}

// Flush writes any pending change immediately.
func (m *Model) Flush(ctx context.Context) error {
	m.debounce.Cancel()
	return m.Save(ctx)
}

// Close flushes pending changes and stops the debounce timer.
func (m *Model) Close(ctx context.Context) error {
	err := m.Flush(ctx)
	m.debounce.Stop()
	return err
}

func (m *Model) persist() {
	if err := m.Save(context.Background()); err != nil {
		klog.Warningf("form: persist draft: %v", err)
	}
}

// touch records a mutation. Callers hold mu.
func (m *Model) touch() {
	m.revision++
	m.dirty = true
	m.regenerate()
}

// regenerate recomputes outputs. Callers hold mu.
func (m *Model) regenerate() {
	out, err := m.gen.Generate(m.fields)
	if err != nil {
		m.outputErr = err
		return
	}
	m.output = out
	m.outputErr = nil
}
