package services

import (
	"context"
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
	"github.com/eventum-app/eventum/internal/pkg/logger"
)

// RequestService owns the participation request lifecycle on the requester's side
type RequestService struct {
	requests RequestStore
	events   EventStore
	users    UserStore
}

// NewRequestService creates a new RequestService
func NewRequestService(requests RequestStore, events EventStore, users UserStore) *RequestService {
	return &RequestService{requests: requests, events: events, users: users}
}

// Submit files a participation request for an event. Resubmitting against the
// same event returns the existing request unchanged. Requests against
// unmoderated events are confirmed immediately.
func (s *RequestService) Submit(ctx context.Context, requesterID, eventID int64) (*dto.RequestResponse, error) {
	existing, err := s.requests.GetByRequesterAndEvent(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		response := toRequestResponse(existing)
		return &response, nil
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	if event.InitiatorID == requesterID {
		return nil, apperrors.NewValidationError("initiators cannot request participation in their own events")
	}
	if event.State != models.EventStatePublished {
		return nil, apperrors.NewValidationError("participation requests are only accepted for published events")
	}

	if event.ParticipantLimit > 0 {
		confirmed, err := s.requests.CountConfirmed(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return nil, apperrors.NewValidationError("the participant limit has been reached")
		}
	}

	status := models.RequestStatusPending
	if !event.RequestModeration {
		status = models.RequestStatusConfirmed
	}

	request := &models.Request{
		EventID:     eventID,
		RequesterID: requesterID,
		Created:     helpers.TruncateMicros(time.Now().UTC()),
		Status:      status,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().Int64("requestId", request.ID).Int64("eventId", eventID).Int64("requesterId", requesterID).Msg("Participation request submitted")
	response := toRequestResponse(request)
	return &response, nil
}

// Cancel withdraws the caller's own request. Cancellation is always accepted,
// including from CONFIRMED: the freed seat becomes available immediately since
// confirmed counts are recomputed, never cached.
func (s *RequestService) Cancel(ctx context.Context, requesterID, requestID int64) (*dto.RequestResponse, error) {
	request, err := s.requests.GetByRequesterAndID(ctx, requesterID, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NewValidationError("request not found or not owned by caller")
	}

	if request.Status != models.RequestStatusCanceled {
		if err := s.requests.UpdateStatus(ctx, requestID, models.RequestStatusCanceled); err != nil {
			return nil, err
		}
		request.Status = models.RequestStatusCanceled
	}

	response := toRequestResponse(request)
	return &response, nil
}

// ListOwn retrieves all requests the user has submitted
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]dto.RequestResponse, error) {
	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	requests, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// ListAdmin retrieves requests matching the admin filter
func (s *RequestService) ListAdmin(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestResponse, error) {
	requests, err := s.requests.ListAdmin(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}
