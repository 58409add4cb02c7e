// Package theme describes the light and dark presentation variants with a
// go-theme manifest and persists the user's preference.
package theme

import (
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

const (
	// Name is the manifest name of the built-in theme.
	Name = "promptgen"

	Light = "light"
	Dark  = "dark"

	// DefaultVariant applies when no preference has been stored.
	DefaultVariant = Light
)

// ErrUnknownVariant is returned for variants other than light and dark.
var ErrUnknownVariant = errors.New("theme: unknown variant")

// Normalize validates a variant name, accepting any letter case and
// surrounding whitespace.
func Normalize(variant string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(variant)); v {
	case Light, Dark:
		return v, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownVariant, variant)
	}
}

// Opposite returns the variant a toggle switches to.
func Opposite(variant string) string {
	if variant == Dark {
		return Light
	}
	return Dark
}

// Manifest returns the built-in manifest. Base tokens are the light palette;
// each variant overrides what differs.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Name,
		Version: "1.0.0",
		Tokens: map[string]string{
			"bg":           "#f7f7f8",
			"surface":      "#ffffff",
			"text":         "#1f2328",
			"muted":        "#656d76",
			"border":       "#d0d7de",
			"accent":       "#0969da",
			"json-key":     "#953800",
			"json-string":  "#0a3069",
			"json-number":  "#0550ae",
			"json-boolean": "#8250df",
			"json-null":    "#6e7781",
			"var-bg":       "#fff8c5",
		},
		Templates: map[string]string{
			"preview.page": "preview.tpl",
		},
		Variants: map[string]gotheme.Variant{
			Light: {},
			Dark: {
				Tokens: map[string]string{
					"bg":           "#0d1117",
					"surface":      "#161b22",
					"text":         "#e6edf3",
					"muted":        "#8d96a0",
					"border":       "#30363d",
					"accent":       "#4493f8",
					"json-key":     "#ffa657",
					"json-string":  "#a5d6ff",
					"json-number":  "#79c0ff",
					"json-boolean": "#d2a8ff",
					"json-null":    "#8b949e",
					"var-bg":       "#3b2e00",
				},
			},
		},
	}
}
