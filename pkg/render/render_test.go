package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

type stubRenderer struct {
	name  string
	view  render.View
	out   []byte
	err   error
	panic bool
}

func (s stubRenderer) Name() string             { return s.name }
func (s stubRenderer) ContentType() string      { return "text/plain" }
func (s stubRenderer) DefaultView() render.View { return s.view }

func (s stubRenderer) Render(context.Context, generator.Output, render.RenderOptions) ([]byte, error) {
	if s.panic {
		panic("boom")
	}
	return s.out, s.err
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{name: "json"}, stubRenderer{name: "Text"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"json", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("TEXT") {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, err := registry.Get("yaml"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if err := registry.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{name: " "}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := render.NewRegistry(stubRenderer{name: "a"}, stubRenderer{name: "A"}); err == nil {
		t.Fatalf("expected duplicate error from constructor")
	}
}

func TestSafe_ReplacesFailuresWithPlaceholders(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		renderer stubRenderer
		options  render.RenderOptions
		want     string
	}{
		{
			name:     "success passes through",
			renderer: stubRenderer{name: "ok", out: []byte("fine")},
			want:     "fine",
		},
		{
			name:     "json error",
			renderer: stubRenderer{name: "json", view: render.ViewJSON, err: errors.New("bad")},
			want:     "Error rendering JSON.",
		},
		{
			name:     "text error",
			renderer: stubRenderer{name: "text", view: render.ViewText, err: errors.New("bad")},
			want:     "Error rendering text preview.",
		},
		{
			name:     "panic uses requested view",
			renderer: stubRenderer{name: "html", panic: true},
			options:  render.RenderOptions{View: render.ViewJSON},
			want:     "Error rendering JSON.",
		},
		{
			name:     "panic without view falls back to text",
			renderer: stubRenderer{name: "html", panic: true},
			want:     "Error rendering text preview.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render.Safe(tt.renderer).Render(ctx, generator.Output{}, tt.options)
			if err != nil {
				t.Fatalf("safe render returned error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	if v, err := render.ParseView("", render.ViewText); err != nil || v != render.ViewText {
		t.Fatalf("expected fallback, got %q %v", v, err)
	}
	if v, err := render.ParseView(" JSON ", render.ViewText); err != nil || v != render.ViewJSON {
		t.Fatalf("expected json, got %q %v", v, err)
	}
	if _, err := render.ParseView("yaml", render.ViewText); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}
