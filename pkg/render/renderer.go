package render

import (
	"context"

	"github.com/goliatone/go-promptgen/pkg/generator"
)

// Renderer converts generated output into a byte representation (JSON, plain
// text, highlighted HTML, ANSI text...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, output generator.Output, options RenderOptions) ([]byte, error)
}

// DefaultViewer is implemented by renderers bound to a single view. Safe uses
// it to pick the placeholder shown when rendering fails.
type DefaultViewer interface {
	DefaultView() View
}
