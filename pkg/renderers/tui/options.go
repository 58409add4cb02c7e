package tui

import (
	"io"
	"strings"
)

// Theme captures optional formatting hints the editor applies when printing
// messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational messages.
func WithOutput(out io.Writer) Option {
	return func(e *Editor) {
		e.out = out
	}
}

// WithFields limits the session to the named fields. Order follows the form.
func WithFields(names ...string) Option {
	return func(e *Editor) {
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				e.only = append(e.only, name)
			}
		}
	}
}

// WithConfirmSave asks before saving the draft at the end of a session.
// Without it the draft is saved whenever something changed.
func WithConfirmSave() Option {
	return func(e *Editor) {
		e.confirmSave = true
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}
