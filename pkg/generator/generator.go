// Package generator derives the structured record and the substituted prompt
// text from a field set. Derivation is pure apart from the clock and the
// random identifier source, both of which can be injected.
package generator

import (
	"fmt"
	"time"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/model"
)

// Output bundles every view derived from one generation pass.
type Output struct {
	Record   model.Record
	Text     string
	JSON     string
	Segments []Segment
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for identifiers and timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRandom overrides the random half of generated identifiers.
func WithRandom(random RandomSource) Option {
	return func(g *Generator) {
		if random != nil {
			g.random = random
		}
	}
}

// Generator produces Output values for a fixed configuration.
type Generator struct {
	cfg     config.Config
	now     func() time.Time
	random  RandomSource
	pattern Pattern
}

// New constructs a generator for cfg. The placeholder pattern is compiled once
// from the configured field names.
func New(cfg config.Config, options ...Option) *Generator {
	g := &Generator{
		cfg:     cfg,
		now:     time.Now,
		pattern: Compile(cfg.Names()),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Generate derives the record, its JSON document and the substituted text.
// Every call stamps a fresh identifier and timestamps.
func (g *Generator) Generate(fields model.FieldSet) (Output, error) {
	now := g.now()
	values := fields.Values()
	template := values[g.cfg.TemplateField()]

	record := model.Record{
		ID:         model.ObjectID{Hex: NewObjectID(now, g.random)},
		Name:       valueOr(values[g.cfg.NameField()], g.cfg.NameFallback()),
		Category:   valueOr(values[g.cfg.CategoryField()], g.cfg.CategoryFallback()),
		AIType:     g.cfg.AIType(),
		Parameters: fields.Clone(),
		Template:   template,
		CreatedAt:  model.Timestamp{Time: now},
		UpdatedAt:  model.Timestamp{Time: now},
		Class:      g.cfg.Class(),
	}

	doc, err := record.MarshalIndent()
	if err != nil {
		return Output{}, fmt.Errorf("generator: encode record: %w", err)
	}

	segments := g.pattern.Segments(template, values)
	return Output{
		Record:   record,
		Text:     Join(segments),
		JSON:     string(doc),
		Segments: segments,
	}, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
