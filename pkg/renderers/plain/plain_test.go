package plain

import (
	"context"
	"testing"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

func TestRenderers(t *testing.T) {
	out := generator.Output{JSON: `{"name": "<a>"}`, Text: "line 1\nline <2>"}

	got, err := NewJSON().Render(context.Background(), out, render.RenderOptions{View: render.ViewText})
	if err != nil || string(got) != out.JSON {
		t.Fatalf("json renderer returned %q (%v)", got, err)
	}

	got, err = NewText().Render(context.Background(), out, render.RenderOptions{})
	if err != nil || string(got) != out.Text {
		t.Fatalf("text renderer returned %q (%v)", got, err)
	}

	if NewJSON().DefaultView() != render.ViewJSON || NewText().DefaultView() != render.ViewText {
		t.Fatalf("unexpected default views")
	}
}
