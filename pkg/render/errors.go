package render

// Placeholder messages shown in place of output that failed to render.
const (
	JSONPlaceholder = "Error rendering JSON."
	TextPlaceholder = "Error rendering text preview."
)

// Placeholder returns the failure message for view.
func Placeholder(view View) string {
	if view == ViewJSON {
		return JSONPlaceholder
	}
	return TextPlaceholder
}
