package domain

import "time"

// EventType defines the category of an edit event.
type EventType string

const (
	EventApplied   EventType = "applied"
	EventDiscarded EventType = "discarded"
)

// Reasons an intent is discarded.
const (
	ReasonRowOutOfRange = "row_out_of_range"
	ReasonInvalidValue  = "invalid_value"
	ReasonUnknownField  = "unknown_field"
)

// EditEvent reports the outcome of one intent.
type EditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Intent    Intent    `json:"intent"`
	Reason    string    `json:"reason,omitempty"`
}

// EditHooks defines callbacks for dispatcher observability.
type EditHooks struct {
	OnApply   func(*EditEvent)
	OnDiscard func(*EditEvent)
}
