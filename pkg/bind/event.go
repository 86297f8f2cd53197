package bind

import "fmt"

// Event is a UI event delivered to a handler.
type Event interface {
	EventType() string
}

// UIEvent is an event that carries no payload, such as a click.
type UIEvent struct {
	Type string
}

// EventType returns the event name.
func (e UIEvent) EventType() string { return e.Type }

// ChangeEvent reports a new value for an input element. Value is a string
// for text inputs and a bool for toggles.
type ChangeEvent struct {
	Type  string
	Value any
}

// NewChangeEvent creates a "change" event carrying value.
func NewChangeEvent(value any) ChangeEvent {
	return ChangeEvent{Type: "change", Value: value}
}

// EventType returns the event name, defaulting to "change".
func (e ChangeEvent) EventType() string {
	if e.Type == "" {
		return "change"
	}
	return e.Type
}

// EventHandler handles one delivered event. Errors are returned to the
// caller that delivered the event.
type EventHandler func(Event) error

func payloadOf(ev Event) (any, error) {
	switch e := ev.(type) {
	case ChangeEvent:
		return e.Value, nil
	case *ChangeEvent:
		if e == nil {
			return nil, fmt.Errorf("nil change event")
		}
		return e.Value, nil
	default:
		return nil, fmt.Errorf("event %T carries no value", ev)
	}
}
