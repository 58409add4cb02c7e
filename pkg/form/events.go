package form

import (
	"github.com/goliatone/go-promptgen/pkg/generator"
)

// EventType identifies the mutation that produced an Event.
type EventType string

const (
	EventFieldChanged EventType = "field_changed"
	EventImported     EventType = "imported"
	EventReset        EventType = "reset"
)

// Event is delivered to listeners after outputs have been regenerated.
type Event struct {
	Type   EventType
	Fields []string
	Output generator.Output
}

// Listener receives model events synchronously on the mutating goroutine.
type Listener func(Event)

// event builds an event for the current state. Callers hold mu.
func (m *Model) event(kind EventType, fields []string) Event {
	return Event{Type: kind, Fields: fields, Output: m.output}
}

func (m *Model) notify(event Event) {
	for _, listener := range m.listeners {
		listener(event)
	}
}
