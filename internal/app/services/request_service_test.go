package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
)

func TestSubmitRequest(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	categoryID := f.addCategory("concerts")

	t.Run("moderated event yields a pending request", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 10, true)
		response, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if response.Status != models.RequestStatusPending {
			t.Errorf("status = %s, want PENDING", response.Status)
		}
	})

	t.Run("unmoderated event confirms immediately", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 10, false)
		response, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if response.Status != models.RequestStatusConfirmed {
			t.Errorf("status = %s, want CONFIRMED", response.Status)
		}
	})

	t.Run("resubmission returns the existing request unchanged", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 10, true)
		first, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		second, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if err != nil {
			t.Fatalf("resubmit: %v", err)
		}
		if second.ID != first.ID || second.Status != first.Status {
			t.Errorf("resubmit returned %+v, want the original %+v", second, first)
		}
	})

	t.Run("initiator cannot join their own event", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 10, true)
		_, err := f.requestService.Submit(context.Background(), ownerID, eventID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unpublished event refuses requests", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 10, true)
		_, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("full event refuses requests", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 1, true)
		seated := f.addUser("seated")
		f.addRequest(seated, eventID, models.RequestStatusConfirmed)

		_, err := f.requestService.Submit(context.Background(), guestID, eventID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := f.requestService.Submit(context.Background(), guestID, 999)
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Fatalf("expected event not found, got %v", err)
		}
	})
}

func TestCancelRequest(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	categoryID := f.addCategory("concerts")
	eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)

	t.Run("pending request is canceled", func(t *testing.T) {
		requestID := f.addRequest(guestID, eventID, models.RequestStatusPending)
		response, err := f.requestService.Cancel(context.Background(), guestID, requestID)
		if err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if response.Status != models.RequestStatusCanceled {
			t.Errorf("status = %s, want CANCELED", response.Status)
		}
	})

	t.Run("confirmed request is canceled and the seat is freed", func(t *testing.T) {
		otherEventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 1, true)
		requestID := f.addRequest(guestID, otherEventID, models.RequestStatusConfirmed)

		response, err := f.requestService.Cancel(context.Background(), guestID, requestID)
		if err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if response.Status != models.RequestStatusCanceled {
			t.Errorf("status = %s, want CANCELED", response.Status)
		}

		confirmed, _ := f.requests.CountConfirmed(context.Background(), otherEventID)
		if confirmed != 0 {
			t.Errorf("confirmed count after cancel = %d, want 0", confirmed)
		}
	})

	t.Run("someone else's request is refused", func(t *testing.T) {
		stranger := f.addUser("stranger")
		requestID := f.addRequest(stranger, eventID, models.RequestStatusPending)

		_, err := f.requestService.Cancel(context.Background(), guestID, requestID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing request is refused", func(t *testing.T) {
		_, err := f.requestService.Cancel(context.Background(), guestID, 999)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestListOwnRequests(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	categoryID := f.addCategory("concerts")
	eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	f.addRequest(guestID, eventID, models.RequestStatusPending)

	responses, err := f.requestService.ListOwn(context.Background(), guestID)
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(responses) != 1 {
		t.Errorf("got %d requests, want 1", len(responses))
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.requestService.ListOwn(context.Background(), 999)
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Fatalf("expected user not found, got %v", err)
		}
	})
}
