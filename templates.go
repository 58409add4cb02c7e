package promptgen

import (
	"io/fs"

	"github.com/goliatone/go-promptgen/pkg/renderers/preview"
)

// EmbeddedTemplates exposes the built-in preview page templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}
