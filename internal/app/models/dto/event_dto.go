package dto

import (
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
)

// LocationDto is a latitude/longitude pair on the wire
type LocationDto struct {
	Lat float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon float64 `json:"lon" binding:"required,min=-180,max=180"`
}

// NewEventRequest carries the payload for creating an event.
// EventDate uses the "2006-01-02 15:04:05" wire format.
type NewEventRequest struct {
	Title             string      `json:"title" binding:"required,min=3,max=120"`
	Annotation        string      `json:"annotation" binding:"required,min=20,max=2000"`
	Description       string      `json:"description" binding:"required,min=20,max=7000"`
	Category          int64       `json:"category" binding:"required"`
	Location          LocationDto `json:"location" binding:"required"`
	EventDate         string      `json:"eventDate" binding:"required"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int32       `json:"participantLimit" binding:"min=0"`
	RequestModeration *bool       `json:"requestModeration"`
}

// UpdateEventRequest carries an initiator's partial update. Absent or blank
// fields leave the stored value untouched (PATCH, not PUT).
type UpdateEventRequest struct {
	EventID          int64   `json:"eventId" binding:"required"`
	Title            *string `json:"title,omitempty"`
	Annotation       *string `json:"annotation,omitempty"`
	Description      *string `json:"description,omitempty"`
	Category         *int64  `json:"category,omitempty"`
	EventDate        *string `json:"eventDate,omitempty"`
	Paid             *bool   `json:"paid,omitempty"`
	ParticipantLimit *int32  `json:"participantLimit,omitempty"`
}

// AdminUpdateEventRequest extends the initiator patch with fields only
// administrators may touch.
type AdminUpdateEventRequest struct {
	Title             *string      `json:"title,omitempty"`
	Annotation        *string      `json:"annotation,omitempty"`
	Description       *string      `json:"description,omitempty"`
	Category          *int64       `json:"category,omitempty"`
	EventDate         *string      `json:"eventDate,omitempty"`
	Paid              *bool        `json:"paid,omitempty"`
	ParticipantLimit  *int32       `json:"participantLimit,omitempty"`
	Location          *LocationDto `json:"location,omitempty"`
	RequestModeration *bool        `json:"requestModeration,omitempty"`
}

// EventFullResponse is the complete event view
type EventFullResponse struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Annotation        string             `json:"annotation"`
	Description       string             `json:"description"`
	Category          *CategoryResponse  `json:"category,omitempty"`
	Initiator         *UserShortResponse `json:"initiator,omitempty"`
	Location          LocationDto        `json:"location"`
	EventDate         string             `json:"eventDate"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int32              `json:"participantLimit"`
	RequestModeration bool               `json:"requestModeration"`
	CreatedOn         string             `json:"createdOn"`
	PublishedOn       *string            `json:"publishedOn,omitempty"`
	State             models.EventState  `json:"state"`
	ConfirmedRequests int64              `json:"confirmedRequests"`
	Views             int64              `json:"views"`
}

// EventShortResponse is the condensed listing view
type EventShortResponse struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Annotation        string             `json:"annotation"`
	Category          *CategoryResponse  `json:"category,omitempty"`
	Initiator         *UserShortResponse `json:"initiator,omitempty"`
	EventDate         string             `json:"eventDate"`
	Paid              bool               `json:"paid"`
	ConfirmedRequests int64              `json:"confirmedRequests"`
	Views             int64              `json:"views"`
}

// EventSort selects the ordering of public event listings
type EventSort string

const (
	EventSortByDate  EventSort = "EVENT_DATE"
	EventSortByViews EventSort = "VIEWS"
)

// AdminEventFilter collects the admin listing criteria
type AdminEventFilter struct {
	Users      []int64
	States     []models.EventState
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

// PublicEventFilter collects the public listing criteria
type PublicEventFilter struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
	From          int
	Size          int
}
