package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/model"
	"github.com/goliatone/go-promptgen/pkg/schema"
	"github.com/goliatone/go-promptgen/pkg/testsupport"
)

var safeName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		source string
		format Format
		want   string
	}{
		{name: "punctuation replaced", source: "Bed / Frame?!", format: FormatJSON, want: "Bed___Frame__.json"},
		{name: "empty falls back", source: "", format: FormatText, want: "prompt.txt"},
		{name: "non ascii runes", source: "Sofá", format: FormatText, want: "Sof_.txt"},
		{name: "dots and dashes kept", source: "v1.2-final_cut", format: FormatJSON, want: "v1.2-final_cut.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.source, 40, "prompt", tt.format)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFilename_LengthBound(t *testing.T) {
	source := "Single bed + double bed (with headboard) and matching nightstands"
	got := Filename(source, 40, "prompt", FormatJSON)
	base := got[:len(got)-len(".json")]
	if utf8.RuneCountInString(base) != 40 {
		t.Fatalf("expected 40 runes, got %d (%q)", utf8.RuneCountInString(base), base)
	}
	if !safeName.MatchString(base) {
		t.Fatalf("unsafe characters in %q", base)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("TXT"); err != nil || f != FormatText {
		t.Fatalf("expected text, got %q %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExporter_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	fields := model.FromConfig(cfg)
	fields.Set(cfg.FilenameField(), "Bed / Frame?!")
	output, err := testsupport.NewGenerator(cfg).Generate(fields)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	exporter := New(cfg)
	jsonPath, err := exporter.Write(context.Background(), dir, output, FormatJSON)
	if err != nil {
		t.Fatalf("write json: %v", err)
	}
	if filepath.Base(jsonPath) != "Bed___Frame__.json" {
		t.Fatalf("unexpected json path %q", jsonPath)
	}
	data, _ := os.ReadFile(jsonPath)
	if string(data) != output.JSON {
		t.Fatalf("json content mismatch")
	}

	textPath, err := exporter.Write(context.Background(), filepath.Join(dir, "nested"), output, FormatText)
	if err != nil {
		t.Fatalf("write text: %v", err)
	}
	data, _ = os.ReadFile(textPath)
	if string(data) != output.Text {
		t.Fatalf("text content mismatch")
	}
}

func TestExporter_RejectsInvalidRecord(t *testing.T) {
	output := testsupport.DefaultOutput(t)
	output.JSON = `{"name": "x"}`

	_, err := New(config.Default()).Write(context.Background(), t.TempDir(), output, FormatJSON)
	if !errors.Is(err, schema.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}

	if _, err := New(config.Default(), WithoutValidation()).Write(context.Background(), t.TempDir(), output, FormatJSON); err != nil {
		t.Fatalf("expected write without validation, got %v", err)
	}
}
