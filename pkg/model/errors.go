package model

import "errors"

var (
	// ErrDuplicateField is returned when a FieldSet would hold two fields with
	// the same name.
	ErrDuplicateField = errors.New("model: duplicate field")
	// ErrEmptyName is returned for fields without a name.
	ErrEmptyName = errors.New("model: field name is required")
)
