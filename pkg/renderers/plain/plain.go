// Package plain renders the generated documents verbatim.
package plain

import (
	"context"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

// JSON renders the record document.
type JSON struct{}

// NewJSON returns the JSON renderer.
func NewJSON() *JSON { return &JSON{} }

func (*JSON) Name() string             { return "json" }
func (*JSON) ContentType() string      { return "application/json" }
func (*JSON) DefaultView() render.View { return render.ViewJSON }

func (*JSON) Render(_ context.Context, output generator.Output, _ render.RenderOptions) ([]byte, error) {
	return []byte(output.JSON), nil
}

// Text renders the substituted prompt.
type Text struct{}

// NewText returns the text renderer.
func NewText() *Text { return &Text{} }

func (*Text) Name() string             { return "text" }
func (*Text) ContentType() string      { return "text/plain; charset=utf-8" }
func (*Text) DefaultView() render.View { return render.ViewText }

func (*Text) Render(_ context.Context, output generator.Output, _ render.RenderOptions) ([]byte, error) {
	return []byte(output.Text), nil
}
