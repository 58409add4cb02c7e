package highlight

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

var classPattern = regexp.MustCompile(`^(json-(key|string|number|boolean|null)|var-[A-Za-z0-9_-]+)$`)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// Sanitize strips everything from a highlighted fragment except span
// elements carrying highlight classes and line breaks.
func Sanitize(fragment string) string {
	return fragmentSanitizer().Sanitize(fragment)
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span", "br")
		policy.AllowAttrs("class").
			Matching(classPattern).
			OnElements("span")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithoutSanitizer disables the bluemonday pass, leaving the exact escaping
// produced by JSON and Text.
func WithoutSanitizer() Option {
	return func(r *Renderer) {
		r.sanitize = false
	}
}

// Renderer emits a highlighted HTML fragment for the requested view.
type Renderer struct {
	sanitize bool
}

// New constructs the HTML renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{sanitize: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string             { return "html" }
func (r *Renderer) ContentType() string      { return "text/html; charset=utf-8" }
func (r *Renderer) DefaultView() render.View { return render.ViewJSON }

func (r *Renderer) Render(_ context.Context, output generator.Output, options render.RenderOptions) ([]byte, error) {
	fragment, err := Fragment(output, options.View)
	if err != nil {
		return nil, err
	}
	if r.sanitize {
		fragment = Sanitize(fragment)
	}
	return []byte(fragment), nil
}

// Fragment returns the unsanitised highlighted fragment for view. An empty
// view selects JSON.
func Fragment(output generator.Output, view render.View) (string, error) {
	switch view {
	case "", render.ViewJSON:
		if strings.TrimSpace(output.JSON) == "" {
			return "", fmt.Errorf("highlight: record document is empty")
		}
		return JSON(output.JSON), nil
	case render.ViewText:
		return Text(output.Segments), nil
	default:
		return "", fmt.Errorf("highlight: unknown view %q", view)
	}
}
