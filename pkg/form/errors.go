package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when a mutation names a field that is not
	// part of the configured field set.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidImport is returned when imported text is not a JSON object.
	ErrInvalidImport = errors.New("form: invalid import")
)

// FieldError reports a failure tied to a single field. Suggestions lists
// configured names that resemble the rejected one.
type FieldError struct {
	Field       string
	Suggestions []string
	Err         error
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%v %q", e.Err, e.Field)
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		msg += " (did you mean " + strings.Join(quoted, ", ") + "?)"
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
