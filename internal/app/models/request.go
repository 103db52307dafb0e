package models

import "time"

// RequestStatus represents the lifecycle state of a participation request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// requestTransitions lists the allowed status changes. A confirmed request
// can still be canceled by its owner (releasing the seat) or rejected by the
// event owner. REJECTED and CANCELED are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusConfirmed, RequestStatusRejected, RequestStatusCanceled},
	RequestStatusConfirmed: {RequestStatusCanceled, RequestStatusRejected},
	RequestStatusRejected:  {},
	RequestStatusCanceled:  {},
}

// CanTransitionTo reports whether the status change is allowed
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is possible
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// Request represents a user's participation request for an event
type Request struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Created     time.Time
	Status      RequestStatus
}
