package dto

import (
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
)

// RequestResponse is the participation request view
type RequestResponse struct {
	ID        int64                `json:"id"`
	Event     int64                `json:"event"`
	Requester int64                `json:"requester"`
	Created   string               `json:"created"`
	Status    models.RequestStatus `json:"status"`
}

// RequestFilter collects the admin request listing criteria
type RequestFilter struct {
	Requesters []int64
	Events     []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}
