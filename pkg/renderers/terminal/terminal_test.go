package terminal

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-promptgen/pkg/render"
	"github.com/goliatone/go-promptgen/pkg/testsupport"
)

func TestRenderer_PlainProfileMatchesGeneratedText(t *testing.T) {
	var buf bytes.Buffer
	renderer := New(WithRenderer(lipgloss.NewRenderer(&buf)))
	output := testsupport.DefaultOutput(t)

	text, err := renderer.Render(context.Background(), output, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if string(text) != output.Text {
		t.Fatalf("expected uncoloured text to equal generated text\nwant: %q\n got: %q", output.Text, text)
	}

	doc, err := renderer.Render(context.Background(), output, render.RenderOptions{View: render.ViewJSON})
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if string(doc) != output.JSON {
		t.Fatalf("expected uncoloured json to equal document\nwant: %q\n got: %q", output.JSON, doc)
	}
}

func TestRenderer_Errors(t *testing.T) {
	renderer := New(WithView(render.ViewJSON))
	if renderer.DefaultView() != render.ViewJSON {
		t.Fatalf("expected json default view")
	}
	if _, err := renderer.Render(context.Background(), testsupport.DefaultOutput(t), render.RenderOptions{View: "yaml"}); err == nil {
		t.Fatalf("expected unknown view error")
	}
	empty := testsupport.DefaultOutput(t)
	empty.JSON = ""
	if _, err := renderer.Render(context.Background(), empty, render.RenderOptions{}); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestFieldColor_Stable(t *testing.T) {
	if FieldColor("style") != FieldColor("style") {
		t.Fatalf("expected stable colour")
	}
	seen := map[lipgloss.AdaptiveColor]bool{}
	for _, name := range []string{"style", "color", "setting", "lighting", "remove", "camera_view"} {
		seen[FieldColor(name)] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected fields to spread over the palette")
	}
}

func TestStyleLines_KeepsLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	style := lipgloss.NewRenderer(&buf).NewStyle().Bold(true)
	if got := styleLines(style, "a\n\nb\tc"); got != "a\n\nb\tc" {
		t.Fatalf("unexpected plain rendering %q", got)
	}
}
