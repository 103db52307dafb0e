package models

import "time"

// EventState represents the lifecycle state of an event
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// eventTransitions lists the allowed state changes. PUBLISHED is terminal;
// a canceled event can be resubmitted for moderation.
var eventTransitions = map[EventState][]EventState{
	EventStatePending:   {EventStatePublished, EventStateCanceled},
	EventStateCanceled:  {EventStatePending},
	EventStatePublished: {},
}

// CanTransitionTo reports whether the state change is allowed
func (s EventState) CanTransitionTo(target EventState) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known event state
func (s EventState) IsValid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

// Location is a latitude/longitude pair
type Location struct {
	Lat float64
	Lon float64
}

// Event represents a published or draft event
type Event struct {
	ID                int64
	Title             string
	Annotation        string
	Description       string
	CategoryID        int64
	InitiatorID       int64
	Location          Location
	EventDate         time.Time
	Paid              bool
	ParticipantLimit  int32
	RequestModeration bool
	CreatedOn         time.Time
	PublishedOn       *time.Time
	State             EventState

	// Relations populated by joined queries
	Category  *Category
	Initiator *User
}
