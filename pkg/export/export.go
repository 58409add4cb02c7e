// Package export writes generated outputs to files named after the product
// description.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/schema"
)

// Format selects which generated document is exported.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ErrUnknownFormat is returned for formats other than json and text.
var ErrUnknownFormat = errors.New("export: unknown format")

// ParseFormat validates a format name. "txt" is accepted for text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// Filename derives a file name from source: the first limit runes, with every
// character outside [A-Za-z0-9._-] replaced by an underscore. An empty source
// uses fallback.
func Filename(source string, limit int, fallback string, format Format) string {
	if source == "" {
		source = fallback
	}
	runes := []rune(source)
	if limit > 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	for i, r := range runes {
		if !allowed(r) {
			runes[i] = '_'
		}
	}
	return string(runes) + format.Extension()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

// Content returns the bytes written for format.
func Content(output generator.Output, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return []byte(output.JSON), nil
	case FormatText:
		return []byte(output.Text), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithoutValidation skips the schema check of JSON exports.
func WithoutValidation() Option {
	return func(e *Exporter) {
		e.schema = nil
	}
}

// Exporter writes outputs for a fixed configuration.
type Exporter struct {
	cfg    config.Config
	schema *openapi3.Schema
}

// New constructs an exporter. JSON exports are validated against the record
// schema of cfg unless disabled.
func New(cfg config.Config, options ...Option) *Exporter {
	e := &Exporter{cfg: cfg, schema: schema.Record(cfg)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Filename returns the file name output is exported under.
func (e *Exporter) Filename(output generator.Output, format Format) string {
	source := output.Record.Parameters.Value(e.cfg.FilenameField())
	return Filename(source, e.cfg.FilenameLimit(), e.cfg.FilenameFallback(), format)
}

// Write stores output in dir and returns the file path. Existing files are
// overwritten.
func (e *Exporter) Write(ctx context.Context, dir string, output generator.Output, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := Content(output, format)
	if err != nil {
		return "", err
	}
	if format == FormatJSON && e.schema != nil {
		if err := schema.Validate(e.schema, data); err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, e.Filename(output, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	klog.V(2).Infof("export: wrote %s (%d bytes)", path, len(data))
	return path, nil
}
