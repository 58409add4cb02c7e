package config

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants the field model relies on:
// unique non-empty names and designated fields that exist.
func (c Config) Validate() error {
	if len(c.fields) == 0 {
		return ErrNoFields
	}

	seen := make(map[string]struct{}, len(c.fields))
	for i, spec := range c.fields {
		name := spec.Name
		if name == "" {
			return fmt.Errorf("%w: field #%d has an empty name", ErrInvalidValue, i)
		}
		if strings.ContainsAny(name, "<>") {
			return fmt.Errorf("%w: field %q must not contain angle brackets", ErrInvalidValue, name)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
	}

	designated := []struct {
		role string
		name string
	}{
		{"name", c.nameField},
		{"category", c.categoryField},
		{"template", c.templateField},
		{"filename", c.filenameField},
	}
	for _, d := range designated {
		if d.name == "" {
			return fmt.Errorf("%w: %s field is required", ErrInvalidValue, d.role)
		}
		if _, ok := seen[d.name]; !ok {
			return fmt.Errorf("%w: %s field %q", ErrUnknownField, d.role, d.name)
		}
	}

	if c.draftKey == "" || c.themeKey == "" {
		return fmt.Errorf("%w: storage keys are required", ErrInvalidValue)
	}
	if c.draftKey == c.themeKey {
		return fmt.Errorf("%w: draft and theme keys must differ", ErrInvalidValue)
	}
	if c.filenameLimit <= 0 {
		return fmt.Errorf("%w: filename limit must be positive, got %d", ErrInvalidValue, c.filenameLimit)
	}
	return nil
}
