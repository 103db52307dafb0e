package services

import (
	"context"
	"sort"
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
	"github.com/eventum-app/eventum/internal/pkg/logger"
)

const (
	// minEditLead is how far in the future an event must start when created or edited
	minEditLead = 2 * time.Hour
	// minPublishLead is how close to its start an event may still be published
	minPublishLead = 1 * time.Hour
)

// EventService owns the event lifecycle and the owner-side admission operations
type EventService struct {
	events     EventStore
	requests   RequestStore
	users      UserStore
	categories CategoryStore
	aggregator *StatsAggregator
	hits       HitCounter
}

// NewEventService creates a new EventService
func NewEventService(events EventStore, requests RequestStore, users UserStore, categories CategoryStore, aggregator *StatsAggregator, hits HitCounter) *EventService {
	return &EventService{
		events:     events,
		requests:   requests,
		users:      users,
		categories: categories,
		aggregator: aggregator,
		hits:       hits,
	}
}

// Create registers a new event draft in the PENDING state
func (s *EventService) Create(ctx context.Context, initiatorID int64, req dto.NewEventRequest) (*dto.EventFullResponse, error) {
	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, err
	}
	if err := checkEditLead(eventDate); err != nil {
		return nil, err
	}

	initiator, err := s.users.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	if initiator == nil {
		return nil, apperrors.ErrUserNotFound
	}

	category, err := s.categories.GetByID(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}

	event := &models.Event{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        category.ID,
		InitiatorID:       initiatorID,
		Location:          models.Location{Lat: req.Location.Lat, Lon: req.Location.Lon},
		EventDate:         eventDate,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
		CreatedOn:         helpers.TruncateMicros(time.Now().UTC()),
		State:             models.EventStatePending,
		Category:          category,
		Initiator:         initiator,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", event.ID).Int64("initiatorId", initiatorID).Msg("Event created")
	response := toEventFullResponse(event, 0, 0)
	return &response, nil
}

// ListOwn retrieves the initiator's events as short views
func (s *EventService) ListOwn(ctx context.Context, initiatorID int64, from, size int) ([]dto.EventShortResponse, error) {
	events, err := s.events.ListByInitiator(ctx, initiatorID, from, size)
	if err != nil {
		return nil, err
	}
	return s.toShortResponses(ctx, events)
}

// GetOwn retrieves one of the initiator's events as a full view
func (s *EventService) GetOwn(ctx context.Context, initiatorID, eventID int64) (*dto.EventFullResponse, error) {
	event, err := s.ownedEvent(ctx, initiatorID, eventID)
	if err != nil {
		return nil, err
	}
	return s.toFullResponse(ctx, event)
}

// Update applies an initiator's partial edit. Published events are immutable
// to their initiator; editing a canceled event resubmits it for moderation.
func (s *EventService) Update(ctx context.Context, initiatorID int64, patch dto.UpdateEventRequest) (*dto.EventFullResponse, error) {
	event, err := s.ownedEvent(ctx, initiatorID, patch.EventID)
	if err != nil {
		return nil, err
	}
	if event.State == models.EventStatePublished {
		return nil, apperrors.NewConflictError("published events cannot be edited by their initiator")
	}

	if err := s.applyPatch(ctx, event, patch.Title, patch.Annotation, patch.Description, patch.Category, patch.EventDate, patch.Paid, patch.ParticipantLimit); err != nil {
		return nil, err
	}

	if event.State == models.EventStateCanceled {
		event.State = models.EventStatePending
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.toFullResponse(ctx, event)
}

// Cancel moves a pending event to CANCELED on the initiator's behalf
func (s *EventService) Cancel(ctx context.Context, initiatorID, eventID int64) (*dto.EventFullResponse, error) {
	event, err := s.ownedEvent(ctx, initiatorID, eventID)
	if err != nil {
		return nil, err
	}
	if !event.State.CanTransitionTo(models.EventStateCanceled) {
		return nil, apperrors.NewConflictError("only pending events can be canceled")
	}

	event.State = models.EventStateCanceled
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.toFullResponse(ctx, event)
}

// ListEventRequests retrieves all participation requests for the initiator's event
func (s *EventService) ListEventRequests(ctx context.Context, initiatorID, eventID int64) ([]dto.RequestResponse, error) {
	if _, err := s.ownedEvent(ctx, initiatorID, eventID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// ConfirmRequest admits one pending request against the event's participant
// limit. Unmoderated or unlimited events never gate admission here: their
// requests are confirmed at submission, so the call passes the request back
// unchanged. When the confirmation fills the last slot, the remaining pending
// requests are rejected in the same unit of work.
func (s *EventService) ConfirmRequest(ctx context.Context, initiatorID, eventID, requestID int64) (*dto.RequestResponse, error) {
	event, err := s.ownedEvent(ctx, initiatorID, eventID)
	if err != nil {
		return nil, err
	}

	request, err := s.eventRequest(ctx, eventID, requestID)
	if err != nil {
		return nil, err
	}

	if event.ParticipantLimit == 0 || !event.RequestModeration {
		response := toRequestResponse(request)
		return &response, nil
	}

	confirmed, err := s.requests.ConfirmWithinLimit(ctx, requestID, eventID, event.ParticipantLimit)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", eventID).Int64("requestId", requestID).Msg("Participation request confirmed")
	response := toRequestResponse(confirmed)
	return &response, nil
}

// RejectRequest refuses a participation request on the event owner's behalf
func (s *EventService) RejectRequest(ctx context.Context, initiatorID, eventID, requestID int64) (*dto.RequestResponse, error) {
	if _, err := s.ownedEvent(ctx, initiatorID, eventID); err != nil {
		return nil, err
	}

	request, err := s.eventRequest(ctx, eventID, requestID)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(models.RequestStatusRejected) {
		return nil, apperrors.NewValidationError("request is already rejected or canceled")
	}

	if err := s.requests.UpdateStatus(ctx, requestID, models.RequestStatusRejected); err != nil {
		return nil, err
	}

	request.Status = models.RequestStatusRejected
	response := toRequestResponse(request)
	return &response, nil
}

// ListAdmin retrieves events matching the admin filter as full views
func (s *EventService) ListAdmin(ctx context.Context, filter dto.AdminEventFilter) ([]dto.EventFullResponse, error) {
	events, err := s.events.ListAdmin(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toFullResponses(ctx, events)
}

// Publish moves a pending event to PUBLISHED. The transition only fires for
// pending events that start more than an hour from now; otherwise the event
// is returned unchanged.
func (s *EventService) Publish(ctx context.Context, eventID int64) (*dto.EventFullResponse, error) {
	event, err := s.existingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.State == models.EventStatePending && event.EventDate.After(time.Now().UTC().Add(minPublishLead)) {
		now := helpers.TruncateMicros(time.Now().UTC())
		event.State = models.EventStatePublished
		event.PublishedOn = &now
		if err := s.events.Update(ctx, event); err != nil {
			return nil, err
		}
		logger.Info().Int64("eventId", eventID).Msg("Event published")
	}

	return s.toFullResponse(ctx, event)
}

// Reject moves a pending event to CANCELED on an administrator's behalf.
// Non-pending events are returned unchanged.
func (s *EventService) Reject(ctx context.Context, eventID int64) (*dto.EventFullResponse, error) {
	event, err := s.existingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.State == models.EventStatePending {
		event.State = models.EventStateCanceled
		if err := s.events.Update(ctx, event); err != nil {
			return nil, err
		}
	}

	return s.toFullResponse(ctx, event)
}

// AdminUpdate applies an administrator's partial edit regardless of state
func (s *EventService) AdminUpdate(ctx context.Context, eventID int64, patch dto.AdminUpdateEventRequest) (*dto.EventFullResponse, error) {
	event, err := s.existingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.applyPatch(ctx, event, patch.Title, patch.Annotation, patch.Description, patch.Category, patch.EventDate, patch.Paid, patch.ParticipantLimit); err != nil {
		return nil, err
	}
	if patch.Location != nil {
		event.Location = models.Location{Lat: patch.Location.Lat, Lon: patch.Location.Lon}
	}
	if patch.RequestModeration != nil {
		event.RequestModeration = *patch.RequestModeration
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.toFullResponse(ctx, event)
}

// ListPublic retrieves published events for anonymous browsing and records
// the listing hit. When no time range is given, only upcoming events show.
func (s *EventService) ListPublic(ctx context.Context, filter dto.PublicEventFilter, uri, ip string) ([]dto.EventShortResponse, error) {
	if filter.RangeStart != nil && filter.RangeEnd != nil && filter.RangeEnd.Before(*filter.RangeStart) {
		return nil, apperrors.NewValidationError("rangeEnd must not be before rangeStart")
	}
	if filter.RangeStart == nil && filter.RangeEnd == nil {
		now := time.Now().UTC()
		filter.RangeStart = &now
	}

	events, err := s.events.ListPublic(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses, err := s.toShortResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	if filter.Sort == dto.EventSortByViews {
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Views > responses[j].Views
		})
	}

	s.hits.RecordHit(ctx, uri, ip)
	return responses, nil
}

// GetPublic retrieves one published event and records the view
func (s *EventService) GetPublic(ctx context.Context, eventID int64, uri, ip string) (*dto.EventFullResponse, error) {
	event, err := s.events.GetByIDAndState(ctx, eventID, models.EventStatePublished)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	s.hits.RecordHit(ctx, uri, ip)
	return s.toFullResponse(ctx, event)
}

// applyPatch copies the non-absent patch fields onto the event. Blank
// strings count as absent, so an explicit empty value never clears a field.
func (s *EventService) applyPatch(ctx context.Context, event *models.Event, title, annotation, description *string, category *int64, eventDate *string, paid *bool, participantLimit *int32) error {
	if title != nil && *title != "" {
		event.Title = *title
	}
	if annotation != nil && *annotation != "" {
		event.Annotation = *annotation
	}
	if description != nil && *description != "" {
		event.Description = *description
	}
	if category != nil {
		cat, err := s.categories.GetByID(ctx, *category)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperrors.ErrCategoryNotFound
		}
		event.CategoryID = cat.ID
		event.Category = cat
	}
	if eventDate != nil && *eventDate != "" {
		parsed, err := parseEventDate(*eventDate)
		if err != nil {
			return err
		}
		if err := checkEditLead(parsed); err != nil {
			return err
		}
		event.EventDate = parsed
	}
	if paid != nil {
		event.Paid = *paid
	}
	if participantLimit != nil {
		if *participantLimit < 0 {
			return apperrors.NewValidationError("participant limit cannot be negative")
		}
		event.ParticipantLimit = *participantLimit
	}
	return nil
}

func (s *EventService) ownedEvent(ctx context.Context, initiatorID, eventID int64) (*models.Event, error) {
	event, err := s.existingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != initiatorID {
		return nil, apperrors.NewForbiddenError("only the event initiator may perform this operation")
	}
	return event, nil
}

func (s *EventService) existingEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// eventRequest loads a request and checks it targets the expected event
func (s *EventService) eventRequest(ctx context.Context, eventID, requestID int64) (*models.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.ErrRequestNotFound
	}
	if request.EventID != eventID {
		return nil, apperrors.NewValidationError("request does not belong to this event")
	}
	return request, nil
}

func (s *EventService) toFullResponse(ctx context.Context, event *models.Event) (*dto.EventFullResponse, error) {
	confirmed, views, err := s.aggregator.Counts(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}
	response := toEventFullResponse(event, confirmed[event.ID], views[event.ID])
	return &response, nil
}

func (s *EventService) toFullResponses(ctx context.Context, events []models.Event) ([]dto.EventFullResponse, error) {
	confirmed, views, err := s.aggregator.Counts(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventFullResponse, 0, len(events))
	for i := range events {
		responses = append(responses, toEventFullResponse(&events[i], confirmed[events[i].ID], views[events[i].ID]))
	}
	return responses, nil
}

func (s *EventService) toShortResponses(ctx context.Context, events []models.Event) ([]dto.EventShortResponse, error) {
	confirmed, views, err := s.aggregator.Counts(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventShortResponse, 0, len(events))
	for i := range events {
		responses = append(responses, toEventShortResponse(&events[i], confirmed[events[i].ID], views[events[i].ID]))
	}
	return responses, nil
}

func parseEventDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(helpers.StatsTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("event date must use the format " + helpers.StatsTimeLayout)
	}
	return parsed, nil
}

func checkEditLead(eventDate time.Time) error {
	if eventDate.Before(time.Now().UTC().Add(minEditLead)) {
		return apperrors.NewValidationError("event must start at least two hours from now")
	}
	return nil
}
