package models

import "testing"

func TestRequestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   RequestStatus
		to     RequestStatus
		expect bool
	}{
		{"pending to confirmed", RequestStatusPending, RequestStatusConfirmed, true},
		{"pending to rejected", RequestStatusPending, RequestStatusRejected, true},
		{"pending to canceled", RequestStatusPending, RequestStatusCanceled, true},
		{"confirmed to canceled", RequestStatusConfirmed, RequestStatusCanceled, true},
		{"confirmed to rejected", RequestStatusConfirmed, RequestStatusRejected, true},
		{"rejected is terminal", RequestStatusRejected, RequestStatusConfirmed, false},
		{"canceled is terminal", RequestStatusCanceled, RequestStatusPending, false},
		{"canceled cannot be confirmed", RequestStatusCanceled, RequestStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	if RequestStatusPending.IsTerminal() || RequestStatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must allow further transitions")
	}
	if !RequestStatusRejected.IsTerminal() || !RequestStatusCanceled.IsTerminal() {
		t.Error("rejected and canceled must be terminal")
	}
}
