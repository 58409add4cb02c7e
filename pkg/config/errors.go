package config

import "errors"

var (
	// ErrNoFields is returned when a configuration declares no fields.
	ErrNoFields = errors.New("config: at least one field is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("config: duplicate field name")
	// ErrUnknownField is returned when a designated field (name, category,
	// template, filename) does not reference a declared field.
	ErrUnknownField = errors.New("config: unknown field")
	// ErrInvalidValue flags settings that are present but unusable.
	ErrInvalidValue = errors.New("config: invalid value")
)
