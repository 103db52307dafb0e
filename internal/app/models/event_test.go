package models

import "testing"

func TestEventStateCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   EventState
		to     EventState
		expect bool
	}{
		{"pending to published", EventStatePending, EventStatePublished, true},
		{"pending to canceled", EventStatePending, EventStateCanceled, true},
		{"canceled back to pending", EventStateCanceled, EventStatePending, true},
		{"canceled to published", EventStateCanceled, EventStatePublished, false},
		{"published is terminal", EventStatePublished, EventStateCanceled, false},
		{"published cannot revert", EventStatePublished, EventStatePending, false},
		{"no self transition", EventStatePending, EventStatePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestEventStateIsValid(t *testing.T) {
	for _, state := range []EventState{EventStatePending, EventStatePublished, EventStateCanceled} {
		if !state.IsValid() {
			t.Errorf("%s should be valid", state)
		}
	}
	if EventState("DRAFT").IsValid() {
		t.Error("unknown state should not be valid")
	}
}
