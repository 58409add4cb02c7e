package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-promptgen/pkg/config"
)

// FieldSet is an ordered collection of uniquely named fields. Insertion order
// is the canonical order used for serialization and prompting. The zero value
// is an empty set.
type FieldSet struct {
	order  []string
	fields map[string]Field
}

// NewFieldSet builds a set from fields, keeping their order.
func NewFieldSet(fields ...Field) (FieldSet, error) {
	set := FieldSet{
		order:  make([]string, 0, len(fields)),
		fields: make(map[string]Field, len(fields)),
	}
	for _, field := range fields {
		if err := set.add(field); err != nil {
			return FieldSet{}, err
		}
	}
	return set, nil
}

// FromConfig builds the default field set declared by cfg. Config validation
// guarantees unique names, so construction cannot fail.
func FromConfig(cfg config.Config) FieldSet {
	specs := cfg.Fields()
	set := FieldSet{
		order:  make([]string, 0, len(specs)),
		fields: make(map[string]Field, len(specs)),
	}
	for _, spec := range specs {
		_ = set.add(Field{
			Name:      spec.Name,
			Label:     spec.Label,
			Value:     spec.Default,
			Domain:    spec.Options,
			Multiline: spec.Multiline,
		})
	}
	return set
}

func (s *FieldSet) add(field Field) error {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := s.fields[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	field.Name = name
	s.order = append(s.order, name)
	s.fields[name] = field.clone()
	return nil
}

// Len returns the number of fields.
func (s FieldSet) Len() int {
	return len(s.order)
}

// Names returns the field names in canonical order.
func (s FieldSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Has reports whether a field with the given name exists.
func (s FieldSet) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Get returns a copy of the named field.
func (s FieldSet) Get(name string) (Field, bool) {
	field, ok := s.fields[name]
	if !ok {
		return Field{}, false
	}
	return field.clone(), true
}

// Value returns the current value of a field, or "" when it does not exist.
func (s FieldSet) Value(name string) string {
	return s.fields[name].Value
}

// Set replaces the value of an existing field. It reports false when the
// field is unknown; unknown names are never added.
func (s *FieldSet) Set(name, value string) bool {
	field, ok := s.fields[name]
	if !ok {
		return false
	}
	field.Value = value
	s.fields[name] = field
	return true
}

// Fields returns copies of every field in canonical order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name].clone())
	}
	return out
}

// Values returns the current values keyed by field name.
func (s FieldSet) Values() map[string]string {
	out := make(map[string]string, len(s.order))
	for _, name := range s.order {
		out[name] = s.fields[name].Value
	}
	return out
}

// Clone returns a deep copy that shares no state with s.
func (s FieldSet) Clone() FieldSet {
	out := FieldSet{
		order:  append([]string(nil), s.order...),
		fields: make(map[string]Field, len(s.fields)),
	}
	for name, field := range s.fields {
		out.fields[name] = field.clone()
	}
	return out
}

// EqualValues reports whether both sets hold the same names, in the same
// order, with the same values.
func (s FieldSet) EqualValues(other FieldSet) bool {
	if len(s.order) != len(other.order) {
		return false
	}
	for i, name := range s.order {
		if other.order[i] != name {
			return false
		}
		if s.fields[name].Value != other.fields[name].Value {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an object of name to value, preserving field
// order and leaving HTML characters unescaped so placeholders stay readable.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, s.fields[name].Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, value string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
