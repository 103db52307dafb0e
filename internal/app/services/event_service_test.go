package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

func strPtr(s string) *string { return &s }
func int32Ptr(v int32) *int32 { return &v }

func newEventPayload(categoryID int64, eventDate time.Time) dto.NewEventRequest {
	return dto.NewEventRequest{
		Title:       "Open air concert",
		Annotation:  "An annotation long enough to pass the validators",
		Description: "A description long enough to pass the validators",
		Category:    categoryID,
		Location:    dto.LocationDto{Lat: 55.75, Lon: 37.61},
		EventDate:   eventDate.UTC().Format(helpers.StatsTimeLayout),
	}
}

func TestEventCreateStartsPending(t *testing.T) {
	f := newFixture()
	userID := f.addUser("initiator")
	categoryID := f.addCategory("concerts")

	response, err := f.eventService.Create(context.Background(), userID, newEventPayload(categoryID, time.Now().Add(72*time.Hour)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if response.State != models.EventStatePending {
		t.Errorf("new event state = %s, want PENDING", response.State)
	}
	if response.ConfirmedRequests != 0 || response.Views != 0 {
		t.Errorf("new event counts = %d/%d, want 0/0", response.ConfirmedRequests, response.Views)
	}
}

func TestEventCreateRejectsNearStart(t *testing.T) {
	f := newFixture()
	userID := f.addUser("initiator")
	categoryID := f.addCategory("concerts")

	_, err := f.eventService.Create(context.Background(), userID, newEventPayload(categoryID, time.Now().Add(30*time.Minute)))
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for start inside the edit lead, got %v", err)
	}
}

func TestEventUpdate(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	otherID := f.addUser("other")
	categoryID := f.addCategory("concerts")

	t.Run("published events are immutable to the initiator", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
		_, err := f.eventService.Update(context.Background(), ownerID, dto.UpdateEventRequest{EventID: eventID, Title: strPtr("New title")})
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("editing a canceled event resubmits it", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStateCanceled, 0, true)
		response, err := f.eventService.Update(context.Background(), ownerID, dto.UpdateEventRequest{EventID: eventID, Title: strPtr("Second attempt")})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if response.State != models.EventStatePending {
			t.Errorf("state after edit = %s, want PENDING", response.State)
		}
		if response.Title != "Second attempt" {
			t.Errorf("title = %q, want %q", response.Title, "Second attempt")
		}
	})

	t.Run("blank patch fields leave stored values untouched", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		response, err := f.eventService.Update(context.Background(), ownerID, dto.UpdateEventRequest{EventID: eventID, Title: strPtr("")})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if response.Title != "Test event" {
			t.Errorf("blank title overwrote the stored value: %q", response.Title)
		}
	})

	t.Run("negative participant limit is rejected", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		_, err := f.eventService.Update(context.Background(), ownerID, dto.UpdateEventRequest{EventID: eventID, ParticipantLimit: int32Ptr(-1)})
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		_, err := f.eventService.Update(context.Background(), otherID, dto.UpdateEventRequest{EventID: eventID, Title: strPtr("Hijack")})
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("expected permission denied, got %v", err)
		}
	})
}

func TestEventPublish(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	categoryID := f.addCategory("concerts")

	t.Run("pending event with enough lead is published", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		response, err := f.eventService.Publish(context.Background(), eventID)
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if response.State != models.EventStatePublished {
			t.Errorf("state = %s, want PUBLISHED", response.State)
		}
		if response.PublishedOn == nil {
			t.Error("publishedOn must be set on publication")
		}
	})

	t.Run("event starting within the hour stays pending", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		event, _ := f.events.GetByID(context.Background(), eventID)
		event.EventDate = time.Now().UTC().Add(30 * time.Minute)
		_ = f.events.Update(context.Background(), event)

		response, err := f.eventService.Publish(context.Background(), eventID)
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if response.State != models.EventStatePending {
			t.Errorf("state = %s, want PENDING", response.State)
		}
	})

	t.Run("canceled event is returned unchanged", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStateCanceled, 0, true)
		response, err := f.eventService.Publish(context.Background(), eventID)
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if response.State != models.EventStateCanceled {
			t.Errorf("state = %s, want CANCELED", response.State)
		}
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := f.eventService.Publish(context.Background(), 999)
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Fatalf("expected event not found, got %v", err)
		}
	})
}

func TestEventAdminReject(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	categoryID := f.addCategory("concerts")

	t.Run("pending event is canceled", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		response, err := f.eventService.Reject(context.Background(), eventID)
		if err != nil {
			t.Fatalf("Reject: %v", err)
		}
		if response.State != models.EventStateCanceled {
			t.Errorf("state = %s, want CANCELED", response.State)
		}
	})

	t.Run("published event is returned unchanged", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
		response, err := f.eventService.Reject(context.Background(), eventID)
		if err != nil {
			t.Fatalf("Reject: %v", err)
		}
		if response.State != models.EventStatePublished {
			t.Errorf("state = %s, want PUBLISHED", response.State)
		}
	})
}

func TestConfirmRequest(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	secondGuestID := f.addUser("second-guest")
	categoryID := f.addCategory("concerts")

	t.Run("filling the last slot rejects the remaining pending requests", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 1, true)
		firstID := f.addRequest(guestID, eventID, models.RequestStatusPending)
		secondID := f.addRequest(secondGuestID, eventID, models.RequestStatusPending)

		response, err := f.eventService.ConfirmRequest(context.Background(), ownerID, eventID, firstID)
		if err != nil {
			t.Fatalf("ConfirmRequest: %v", err)
		}
		if response.Status != models.RequestStatusConfirmed {
			t.Errorf("status = %s, want CONFIRMED", response.Status)
		}

		second, _ := f.requests.GetByID(context.Background(), secondID)
		if second.Status != models.RequestStatusRejected {
			t.Errorf("competing request status = %s, want REJECTED", second.Status)
		}
	})

	t.Run("full event refuses further confirmations", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 1, true)
		f.addRequest(guestID, eventID, models.RequestStatusConfirmed)
		lateID := f.addRequest(secondGuestID, eventID, models.RequestStatusPending)

		_, err := f.eventService.ConfirmRequest(context.Background(), ownerID, eventID, lateID)
		if !errors.Is(err, apperrors.ErrCapacityExceeded) {
			t.Fatalf("expected capacity exceeded, got %v", err)
		}
	})

	t.Run("unmoderated event passes the request back unchanged", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 5, false)
		requestID := f.addRequest(guestID, eventID, models.RequestStatusConfirmed)

		response, err := f.eventService.ConfirmRequest(context.Background(), ownerID, eventID, requestID)
		if err != nil {
			t.Fatalf("ConfirmRequest: %v", err)
		}
		if response.Status != models.RequestStatusConfirmed {
			t.Errorf("status = %s, want CONFIRMED", response.Status)
		}
	})

	t.Run("request for a different event is refused", func(t *testing.T) {
		eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 2, true)
		otherEventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 2, true)
		requestID := f.addRequest(guestID, otherEventID, models.RequestStatusPending)

		_, err := f.eventService.ConfirmRequest(context.Background(), ownerID, eventID, requestID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestRejectRequest(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	categoryID := f.addCategory("concerts")
	eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)

	t.Run("pending request is rejected", func(t *testing.T) {
		requestID := f.addRequest(guestID, eventID, models.RequestStatusPending)
		response, err := f.eventService.RejectRequest(context.Background(), ownerID, eventID, requestID)
		if err != nil {
			t.Fatalf("RejectRequest: %v", err)
		}
		if response.Status != models.RequestStatusRejected {
			t.Errorf("status = %s, want REJECTED", response.Status)
		}
	})

	t.Run("confirmed request can still be rejected", func(t *testing.T) {
		otherGuest := f.addUser("confirmed-guest")
		requestID := f.addRequest(otherGuest, eventID, models.RequestStatusConfirmed)
		response, err := f.eventService.RejectRequest(context.Background(), ownerID, eventID, requestID)
		if err != nil {
			t.Fatalf("RejectRequest: %v", err)
		}
		if response.Status != models.RequestStatusRejected {
			t.Errorf("status = %s, want REJECTED", response.Status)
		}
	})

	t.Run("canceled request is refused", func(t *testing.T) {
		canceledGuest := f.addUser("canceled-guest")
		requestID := f.addRequest(canceledGuest, eventID, models.RequestStatusCanceled)
		_, err := f.eventService.RejectRequest(context.Background(), ownerID, eventID, requestID)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

// Concurrent confirmations must never overshoot the participant limit: the
// winners fill the slots exactly once and every loser gets a definite error.
func TestConfirmRequestConcurrent(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	categoryID := f.addCategory("concerts")

	const limit = 5
	const contenders = 20
	eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, limit, true)

	requestIDs := make([]int64, 0, contenders)
	for i := 0; i < contenders; i++ {
		guestID := f.addUser("guest-" + string(rune('a'+i)))
		requestIDs = append(requestIDs, f.addRequest(guestID, eventID, models.RequestStatusPending))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i, requestID := range requestIDs {
		wg.Add(1)
		go func(i int, requestID int64) {
			defer wg.Done()
			_, errs[i] = f.eventService.ConfirmRequest(context.Background(), ownerID, eventID, requestID)
		}(i, requestID)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, apperrors.ErrCapacityExceeded) && !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != limit {
		t.Errorf("confirmed %d requests, want exactly %d", succeeded, limit)
	}

	confirmed, err := f.requests.CountConfirmed(context.Background(), eventID)
	if err != nil {
		t.Fatalf("CountConfirmed: %v", err)
	}
	if confirmed != limit {
		t.Errorf("stored confirmed count = %d, want %d", confirmed, limit)
	}
	for _, requestID := range requestIDs {
		request, _ := f.requests.GetByID(context.Background(), requestID)
		if request.Status == models.RequestStatusPending {
			t.Errorf("request %d left pending after the limit filled", requestID)
		}
	}
}

func TestGetPublicRecordsView(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	categoryID := f.addCategory("concerts")
	eventID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	f.hits.counts[eventID] = 7

	response, err := f.eventService.GetPublic(context.Background(), eventID, "/events/1", "10.0.0.1")
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if response.Views != 7 {
		t.Errorf("views = %d, want 7", response.Views)
	}
	if len(f.hits.recorded) != 1 || f.hits.recorded[0] != "/events/1" {
		t.Errorf("recorded hits = %v, want one hit for /events/1", f.hits.recorded)
	}

	t.Run("unpublished event is invisible", func(t *testing.T) {
		pendingID := f.addEvent(ownerID, categoryID, models.EventStatePending, 0, true)
		_, err := f.eventService.GetPublic(context.Background(), pendingID, "/events/2", "10.0.0.1")
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Fatalf("expected event not found, got %v", err)
		}
	})
}

func TestListPublicRejectsInvertedRange(t *testing.T) {
	f := newFixture()
	start := time.Now().UTC().Add(48 * time.Hour)
	end := start.Add(-24 * time.Hour)

	_, err := f.eventService.ListPublic(context.Background(), dto.PublicEventFilter{RangeStart: &start, RangeEnd: &end}, "/events", "10.0.0.1")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPublicSortsByViews(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	categoryID := f.addCategory("concerts")
	quietID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	popularID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	f.hits.counts[popularID] = 50
	f.hits.counts[quietID] = 2

	responses, err := f.eventService.ListPublic(context.Background(), dto.PublicEventFilter{Sort: dto.EventSortByViews, Size: 10}, "/events", "10.0.0.1")
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("got %d events, want 2", len(responses))
	}
	if responses[0].ID != popularID {
		t.Errorf("first event = %d, want the most viewed %d", responses[0].ID, popularID)
	}
}
