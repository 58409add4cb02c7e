package theme

import (
	"context"
	"errors"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promptgen/pkg/storage"
)

func TestNormalize(t *testing.T) {
	for input, want := range map[string]string{"light": Light, " Dark ": Dark, "LIGHT": Light} {
		got, err := Normalize(input)
		if err != nil || got != want {
			t.Fatalf("%q: expected %q, got %q (%v)", input, want, got, err)
		}
	}
	if _, err := Normalize("sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestSelector_SelectDefaultsAndVariants(t *testing.T) {
	selector, err := NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != Name || selection.Variant != Light {
		t.Fatalf("unexpected default selection %s/%s", selection.Theme, selection.Variant)
	}

	dark, err := selector.Select(Name, "DARK")
	if err != nil {
		t.Fatalf("select dark: %v", err)
	}
	cfg := RendererConfig(dark)
	base := Manifest()
	if cfg.Tokens["bg"] != base.Variants[Dark].Tokens["bg"] {
		t.Fatalf("dark tokens not applied: %s", cfg.Tokens["bg"])
	}
	if cfg.CSSVars["--bg"] != cfg.Tokens["bg"] {
		t.Fatalf("css vars not derived from tokens")
	}
	if cfg.Partials["preview.page"] != "preview.tpl" {
		t.Fatalf("expected base partials, got %v", cfg.Partials)
	}

	light := RendererConfig(selection)
	if light.Tokens["bg"] != base.Tokens["bg"] {
		t.Fatalf("light should use base tokens, got %s", light.Tokens["bg"])
	}

	if _, err := selector.Select(Name, "sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestRendererConfig_AssetURL(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Assets: gotheme.Assets{
			Prefix: "/assets/acme/",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
		Variants: map[string]gotheme.Variant{
			Light: {},
			Dark: {Assets: gotheme.Assets{Files: map[string]string{"stylesheet": "dark.css"}}},
		},
	}
	selector, err := NewSelector(manifest)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	light, _ := selector.Select("", Light)
	if got := RendererConfig(light).AssetURL("stylesheet"); got != "/assets/acme/theme.css" {
		t.Fatalf("unexpected light asset %q", got)
	}
	dark, _ := selector.Select("", Dark)
	if got := RendererConfig(dark).AssetURL("stylesheet"); got != "/assets/acme/dark.css" {
		t.Fatalf("unexpected dark asset %q", got)
	}
	if got := RendererConfig(dark).AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if RendererConfig(nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
}

func TestPreference_ToggleIsPersisted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	pref := NewPreference(store, "promptSuiteTheme")

	got, err := pref.Get(ctx)
	if err != nil || got != Light {
		t.Fatalf("expected light default, got %q (%v)", got, err)
	}

	if got, err := pref.Toggle(ctx); err != nil || got != Dark {
		t.Fatalf("expected dark after toggle, got %q (%v)", got, err)
	}
	if raw, _ := store.Get(ctx, "promptSuiteTheme"); raw != Dark {
		t.Fatalf("expected dark persisted, got %q", raw)
	}

	reloaded := NewPreference(store, "promptSuiteTheme")
	if got, _ := reloaded.Get(ctx); got != Dark {
		t.Fatalf("expected persisted dark, got %q", got)
	}
	if got, _ := reloaded.Toggle(ctx); got != Light {
		t.Fatalf("expected light after second toggle, got %q", got)
	}

	if _, err := pref.Set(ctx, "neon"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}

	_ = store.Put(ctx, "promptSuiteTheme", "garbage")
	if got, err := pref.Get(ctx); err != nil || got != Light {
		t.Fatalf("invalid stored value should fall back to light, got %q (%v)", got, err)
	}
}
