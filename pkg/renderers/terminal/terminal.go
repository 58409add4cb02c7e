// Package terminal renders generated output with ANSI colours for display in
// a terminal. Each substituted field keeps the same colour across renders.
package terminal

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
	"github.com/goliatone/go-promptgen/pkg/renderers/highlight"
)

// fieldPalette colours substituted regions.
var fieldPalette = []lipgloss.AdaptiveColor{
	{Light: "#0969da", Dark: "#7aa2f7"},
	{Light: "#8250df", Dark: "#bb9af7"},
	{Light: "#1a7f37", Dark: "#9ece6a"},
	{Light: "#9a6700", Dark: "#e0af68"},
	{Light: "#cf222e", Dark: "#f7768e"},
	{Light: "#0550ae", Dark: "#7dcfff"},
	{Light: "#953800", Dark: "#ff9e64"},
	{Light: "#116329", Dark: "#73daca"},
}

var tokenColors = map[highlight.TokenKind]lipgloss.AdaptiveColor{
	highlight.TokenKey:     {Light: "#953800", Dark: "#ffa657"},
	highlight.TokenString:  {Light: "#0a3069", Dark: "#a5d6ff"},
	highlight.TokenNumber:  {Light: "#0550ae", Dark: "#79c0ff"},
	highlight.TokenBoolean: {Light: "#8250df", Dark: "#d2a8ff"},
	highlight.TokenNull:    {Light: "#6e7781", Dark: "#8b949e"},
}

type Option func(*Renderer)

// WithRenderer sets the lipgloss renderer used to detect the colour profile.
// Tests pass a renderer bound to a buffer to get uncoloured output.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(t *Renderer) {
		if r != nil {
			t.lip = r
		}
	}
}

// WithView fixes the default view for requests that name none.
func WithView(view render.View) Option {
	return func(t *Renderer) {
		if view != "" {
			t.view = view
		}
	}
}

// Renderer emits lipgloss-styled text.
type Renderer struct {
	lip  *lipgloss.Renderer
	view render.View
}

// New constructs the terminal renderer. It prints the prompt text unless
// configured otherwise.
func New(options ...Option) *Renderer {
	r := &Renderer{lip: lipgloss.DefaultRenderer(), view: render.ViewText}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string             { return "terminal" }
func (r *Renderer) ContentType() string      { return "text/plain; charset=utf-8" }
func (r *Renderer) DefaultView() render.View { return r.view }

func (r *Renderer) Render(_ context.Context, output generator.Output, options render.RenderOptions) ([]byte, error) {
	view := options.View
	if view == "" {
		view = r.view
	}
	switch view {
	case render.ViewText:
		return []byte(r.text(output.Segments)), nil
	case render.ViewJSON:
		if strings.TrimSpace(output.JSON) == "" {
			return nil, fmt.Errorf("terminal: record document is empty")
		}
		return []byte(r.json(output.JSON)), nil
	default:
		return nil, fmt.Errorf("terminal: unknown view %q", view)
	}
}

func (r *Renderer) text(segments []generator.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment.Field == "" {
			b.WriteString(segment.Text)
			continue
		}
		style := r.lip.NewStyle().Foreground(FieldColor(segment.Field)).Bold(true)
		b.WriteString(styleLines(style, segment.Text))
	}
	return b.String()
}

func (r *Renderer) json(doc string) string {
	var b strings.Builder
	highlight.Walk(doc, func(kind highlight.TokenKind, text string) {
		color, ok := tokenColors[kind]
		if !ok {
			b.WriteString(text)
			return
		}
		b.WriteString(styleLines(r.lip.NewStyle().Foreground(color), text))
	})
	return b.String()
}

// FieldColor returns the stable colour assigned to a field name.
func FieldColor(field string) lipgloss.AdaptiveColor {
	h := fnv.New32a()
	_, _ = h.Write([]byte(field))
	return fieldPalette[h.Sum32()%uint32(len(fieldPalette))]
}

// styleLines styles each line separately so multi-line values keep their
// layout; lipgloss would otherwise pad the block to a rectangle.
func styleLines(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	style = style.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
