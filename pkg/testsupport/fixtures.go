package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/model"
)

// FixedTime is the instant stamped by FixedClock.
var FixedTime = time.Date(2024, time.March, 1, 11, 30, 45, 123000000, time.UTC)

// FixedRandom is the random half produced by FixedSource.
const FixedRandom uint64 = 0x0123456789abcdef

// FixedClock returns FixedTime on every call.
func FixedClock() time.Time { return FixedTime }

// FixedSource returns FixedRandom on every call.
func FixedSource() uint64 { return FixedRandom }

// NewGenerator returns a generator with a frozen clock and random source so
// outputs are stable across runs.
func NewGenerator(cfg config.Config) *generator.Generator {
	return generator.New(cfg, generator.WithClock(FixedClock), generator.WithRandom(FixedSource))
}

// DefaultOutput generates the output for the built-in defaults.
func DefaultOutput(t *testing.T) generator.Output {
	t.Helper()

	cfg := config.Default()
	out, err := NewGenerator(cfg).Generate(model.FromConfig(cfg))
	if err != nil {
		t.Fatalf("generate defaults: %v", err)
	}
	return out
}

// MustLoadConfig parses a field configuration fixture.
func MustLoadConfig(t *testing.T, path string) config.Config {
	t.Helper()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// LoadConfig reads a field configuration fixture, returning an error for
// callers managing setup outside of *testing.T.
func LoadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, errors.New("testsupport: config path is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("testsupport: load config: %w", err)
	}
	return cfg, nil
}

// UpdateGoldensEnv names the variable that rewrites golden files instead of
// comparing against them.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// AssertGolden compares got with the golden file at path and fails with a
// cmp diff on mismatch. With UPDATE_GOLDENS set the file is rewritten and the
// comparison skipped.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("golden %s: %v", path, err)
		}
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// MustReadGoldenString returns the content of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
