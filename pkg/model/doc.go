// Package model defines the field model shared by the generator, the form
// state owner and the renderers: a Field carries a name, its current string
// value and an optional enumerated domain; a FieldSet keeps fields in their
// canonical declaration order; a Record is the JSON-shaped document derived
// from a FieldSet on every change.
package model
