package render

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/generator"
)

// Safe wraps renderer so that errors and panics produce the view placeholder
// instead of failing the caller.
func Safe(renderer Renderer) Renderer {
	if renderer == nil {
		return nil
	}
	if _, ok := renderer.(safeRenderer); ok {
		return renderer
	}
	return safeRenderer{inner: renderer}
}

type safeRenderer struct {
	inner Renderer
}

func (s safeRenderer) Name() string        { return s.inner.Name() }
func (s safeRenderer) ContentType() string { return s.inner.ContentType() }

// Unwrap returns the wrapped renderer.
func (s safeRenderer) Unwrap() Renderer { return s.inner }

func (s safeRenderer) Render(ctx context.Context, output generator.Output, options RenderOptions) (result []byte, err error) {
	view := options.View
	if view == "" {
		if viewer, ok := s.inner.(DefaultViewer); ok {
			view = viewer.DefaultView()
		}
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			klog.Errorf("render: %s panicked: %v", s.inner.Name(), recovered)
			result, err = []byte(Placeholder(view)), nil
		}
	}()

	result, err = s.inner.Render(ctx, output, options)
	if err != nil {
		klog.Warningf("render: %s failed: %v", s.inner.Name(), err)
		return []byte(Placeholder(view)), nil
	}
	return result, nil
}
