// Package jsonvalue decodes arbitrary JSON into a small tagged union so callers
// can extract string members explicitly instead of type-switching over
// interface{} trees.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrSyntax is returned when the input is not a single well-formed JSON value.
var ErrSyntax = errors.New("jsonvalue: invalid JSON")

// Value is a decoded JSON value. The zero value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string payload or the literal number
	items   []Value
	keys    []string
	members map[string]Value
}

// Parse decodes data into a Value. Trailing content after the first value is
// rejected. Duplicate object keys keep the last value and the position of the
// first occurrence.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decode(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: unexpected data after top-level value", ErrSyntax)
	}
	return value, nil
}

func decode(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return Value{kind: Bool, boolean: t}, nil
	case json.Number:
		return Value{kind: Number, text: t.String()}, nil
	case string:
		return Value{kind: String, text: t}, nil
	case json.Delim:
		switch t {
		case '[':
			out := Value{kind: Array}
			for dec.More() {
				item, err := decode(dec)
				if err != nil {
					return Value{}, err
				}
				out.items = append(out.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return out, nil
		case '{':
			out := Value{kind: Object, members: map[string]Value{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is %T", keyTok)
				}
				member, err := decode(dec)
				if err != nil {
					return Value{}, err
				}
				if _, exists := out.members[key]; !exists {
					out.keys = append(out.keys, key)
				}
				out.members[key] = member
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return out, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	return Value{kind: String, text: s}
}

// ObjectValue builds an object Value from ordered keys.
func ObjectValue(keys []string, members map[string]Value) Value {
	out := Value{kind: Object, members: make(map[string]Value, len(keys))}
	for _, key := range keys {
		if _, exists := out.members[key]; !exists {
			out.keys = append(out.keys, key)
		}
		out.members[key] = members[key]
	}
	return out
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool { return v.kind == Object }

// AsString returns the string payload. ok is false for every other kind;
// numbers and booleans are never coerced.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.text, true
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.boolean, true
}

// AsNumber returns the number as written in the source document.
func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != Number {
		return "", false
	}
	return json.Number(v.text), true
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.keys)
	default:
		return 0
	}
}

// Index returns the i-th array item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Get returns the named object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	member, ok := v.members[key]
	return member, ok
}

// GetString is Get followed by AsString.
func (v Value) GetString(key string) (string, bool) {
	member, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return member.AsString()
}

// Keys returns object member names in document order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Interface converts v to the types encoding/json decodes into, using
// json.Number for numbers.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		return json.Number(v.text)
	case String:
		return v.text
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.keys))
		for _, key := range v.keys {
			out[key] = v.members[key].Interface()
		}
		return out
	default:
		return nil
	}
}
