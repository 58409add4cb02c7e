package promptgen

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/form"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/renderers/preview"
	"github.com/goliatone/go-promptgen/pkg/testsupport"
)

func TestRuntimeAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), preview.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".json-key") {
		t.Fatalf("expected stylesheet to style json keys")
	}
}

func TestEmbeddedTemplatesContainPage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), preview.PageTemplate); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestGenerateAppliesValues(t *testing.T) {
	cfg := config.Default()
	out, err := Generate(cfg, map[string]string{"style": "Industrial"},
		generator.WithClock(testsupport.FixedClock), generator.WithRandom(testsupport.FixedSource))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.Text, "Style: Industrial") {
		t.Fatalf("expected substituted style, got %q", out.Text)
	}
	if out.Record.CreatedAt.Time != testsupport.FixedTime {
		t.Fatalf("expected fixed clock, got %v", out.Record.CreatedAt.Time)
	}

	_, err = Generate(cfg, map[string]string{"colour": "red"})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRenderOneShot(t *testing.T) {
	out, err := Render(context.Background(), "json", map[string]string{"color": "Oak"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"color": "Oak"`) {
		t.Fatalf("expected color in record, got %s", out)
	}

	if _, err := Render(context.Background(), "missing", nil); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}
