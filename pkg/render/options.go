package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// View selects which generated document a renderer presents.
type View string

const (
	// ViewJSON presents the structured record document.
	ViewJSON View = "json"
	// ViewText presents the substituted prompt text.
	ViewText View = "text"
)

// ParseView validates a view name. An empty name yields fallback.
func ParseView(name string, fallback View) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return fallback, nil
	case ViewJSON:
		return ViewJSON, nil
	case ViewText:
		return ViewText, nil
	default:
		return "", fmt.Errorf("render: unknown view %q", name)
	}
}

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the generated output itself.
type RenderOptions struct {
	// View picks the document for renderers that can present either one.
	// Renderers bound to a single view ignore it.
	View View
	// Theme carries the resolved theme tokens and CSS variables. Renderers
	// without styling ignore it.
	Theme *theme.RendererConfig
}
