package schema

import "errors"

// ErrInvalidRecord is returned when a document does not match the record
// schema.
var ErrInvalidRecord = errors.New("schema: invalid record")
