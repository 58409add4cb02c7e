package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_MatchesBuiltInFieldSet(t *testing.T) {
	cfg := Default()

	want := []string{
		"product_description", "preservation", "color", "setting", "scene_elements",
		"remove", "lighting", "prompt_template", "style", "category", "camera_view",
	}
	if diff := cmp.Diff(want, cfg.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	defaults := cfg.Defaults()
	if got := defaults["product_description"]; got != "Single bed + double bed (with headboard)" {
		t.Fatalf("unexpected product description default %q", got)
	}
	if got := defaults["style"]; got != "Modern" {
		t.Fatalf("unexpected style default %q", got)
	}
	if !strings.HasPrefix(defaults["prompt_template"], "Generate a realistic <style> -style bedroom") {
		t.Fatalf("unexpected template default %q", defaults["prompt_template"])
	}
	if !strings.HasSuffix(defaults["prompt_template"], "Camera view: <camera_view>") {
		t.Fatalf("template default should not carry a trailing newline: %q", defaults["prompt_template"])
	}
	if strings.Count(defaults["preservation"], "\n") != 2 {
		t.Fatalf("expected three preservation lines, got %q", defaults["preservation"])
	}

	if got := len(cfg.Options("camera_view")); got != 12 {
		t.Fatalf("expected 12 camera views, got %d", got)
	}
	if diff := cmp.Diff([]string{"Beds", "Chairs", "Tables", "Sofas", "Storage"}, cfg.Options("category")); diff != "" {
		t.Fatalf("category options mismatch (-want +got):\n%s", diff)
	}
	if cfg.Options("color") != nil {
		t.Fatalf("free-text field should not expose options")
	}

	if cfg.DraftKey() != "promptSuiteDraft" || cfg.ThemeKey() != "promptSuiteTheme" {
		t.Fatalf("unexpected storage keys %q/%q", cfg.DraftKey(), cfg.ThemeKey())
	}
	if cfg.FilenameLimit() != 40 {
		t.Fatalf("unexpected filename limit %d", cfg.FilenameLimit())
	}
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	cfg := Default()

	fields := cfg.Fields()
	fields[0].Name = "mutated"
	fields[8].Options[0] = "mutated"

	if cfg.Names()[0] != "product_description" {
		t.Fatalf("mutating Fields() leaked into config")
	}
	if cfg.Options("style")[0] != "Modern" {
		t.Fatalf("mutating options leaked into config")
	}
}

func TestParse_InheritsDefaultsForMissingSections(t *testing.T) {
	doc := []byte(`
record:
  nameField: title
  categoryField: title
  templateField: body
export:
  filenameField: title
fields:
  - name: title
    default: Sofa
  - name: body
    default: "A <title> photo"
`)
	cfg, err := Parse(doc, "custom.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DraftKey() != "promptSuiteDraft" {
		t.Fatalf("expected inherited draft key, got %q", cfg.DraftKey())
	}
	if cfg.AIType() != "flux" {
		t.Fatalf("expected inherited ai type, got %q", cfg.AIType())
	}
	if diff := cmp.Diff([]string{"title", "body"}, cfg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	doc := []byte(`{"fields":[
		{"name":"product_description","default":"x"},
		{"name":"category","default":"Beds","options":["Beds"]},
		{"name":"prompt_template","default":"<product_description>"}
	]}`)
	cfg, err := Parse(doc, "custom.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := cfg.Options("category"); len(got) != 1 || got[0] != "Beds" {
		t.Fatalf("unexpected options %v", got)
	}
}

func TestParse_RejectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate names",
			doc: `fields:
  - {name: product_description}
  - {name: product_description}
  - {name: category}
  - {name: prompt_template}`,
			want: ErrDuplicateField,
		},
		{
			name: "missing designated field",
			doc: `fields:
  - {name: product_description}
  - {name: prompt_template}`,
			want: ErrUnknownField,
		},
		{
			name: "placeholder syntax in name",
			doc: `fields:
  - {name: "<x>"}`,
			want: ErrInvalidValue,
		},
		{
			name: "negative filename limit",
			doc: `export: {filenameLimit: -1}`,
			want: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.yaml")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	if _, err := Parse([]byte("   \n"), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, DefaultDocument(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default().Names(), cfg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
