package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// ParametersKey is the record key that nests the full field values. Imports
// look for it first so exported records round-trip.
const ParametersKey = "prompt_parameters"

// timestampLayout matches ISO-8601 with millisecond precision, rendered in UTC
// with a trailing Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ObjectID wraps a 24 hex character identifier using the extended JSON
// `{"$oid": ...}` form.
type ObjectID struct {
	Hex string `json:"$oid"`
}

// Timestamp wraps a time using the extended JSON `{"$date": ...}` form.
type Timestamp struct {
	Time time.Time
}

// String returns the UTC millisecond form used inside the JSON wrapper.
func (t Timestamp) String() string {
	return t.Time.UTC().Format(timestampLayout)
}

// MarshalJSON renders the timestamp as {"$date": "<UTC millis>"}.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date string `json:"$date"`
	}{Date: t.String()})
}

// Record is the structured document derived from a FieldSet. Field order in
// the struct is the key order of the exported JSON.
type Record struct {
	ID         ObjectID  `json:"_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	AIType     string    `json:"ai_type"`
	Parameters FieldSet  `json:"prompt_parameters"`
	Template   string    `json:"prompt_template"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
	Class      string    `json:"_class"`
}

// MarshalIndent encodes the record with two-space indentation and without
// HTML escaping, matching the exported document format.
func (r Record) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
