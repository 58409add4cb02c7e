package template

import (
	"io"
)

// TemplateRenderer renders named templates with a data context. Output is
// returned and, when writers are given, copied to each of them. Values passed
// to GlobalContext are visible to every later render.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
