package services

import (
	"context"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
)

// CompilationService owns curated event compilations
type CompilationService struct {
	compilations CompilationStore
	events       EventStore
	aggregator   *StatsAggregator
}

// NewCompilationService creates a new CompilationService
func NewCompilationService(compilations CompilationStore, events EventStore, aggregator *StatsAggregator) *CompilationService {
	return &CompilationService{compilations: compilations, events: events, aggregator: aggregator}
}

// Create registers a new compilation over existing events
func (s *CompilationService) Create(ctx context.Context, req dto.NewCompilationRequest) (*dto.CompilationResponse, error) {
	if err := s.checkEventsExist(ctx, req.Events); err != nil {
		return nil, err
	}

	compilation := &models.Compilation{Title: req.Title, Pinned: req.Pinned}
	if err := s.compilations.Create(ctx, compilation, req.Events); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, compilation, req.Events)
}

// GetByID retrieves a compilation with its enriched events
func (s *CompilationService) GetByID(ctx context.Context, id int64) (*dto.CompilationResponse, error) {
	compilation, eventIDs, err := s.compilations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if compilation == nil {
		return nil, apperrors.ErrCompilationNotFound
	}
	return s.toResponse(ctx, compilation, eventIDs)
}

// List retrieves compilations, optionally filtered by pinned state
func (s *CompilationService) List(ctx context.Context, pinned *bool, from, size int) ([]dto.CompilationResponse, error) {
	compilations, links, err := s.compilations.List(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CompilationResponse, 0, len(compilations))
	for i := range compilations {
		response, err := s.toResponse(ctx, &compilations[i], links[compilations[i].ID])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

// SetPinned pins or unpins a compilation
func (s *CompilationService) SetPinned(ctx context.Context, id int64, pinned bool) error {
	updated, err := s.compilations.SetPinned(ctx, id, pinned)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.ErrCompilationNotFound
	}
	return nil
}

// AddEvent links an event to a compilation
func (s *CompilationService) AddEvent(ctx context.Context, compilationID, eventID int64) error {
	compilation, _, err := s.compilations.GetByID(ctx, compilationID)
	if err != nil {
		return err
	}
	if compilation == nil {
		return apperrors.ErrCompilationNotFound
	}

	if err := s.checkEventsExist(ctx, []int64{eventID}); err != nil {
		return err
	}
	return s.compilations.AddEvent(ctx, compilationID, eventID)
}

// RemoveEvent unlinks an event from a compilation
func (s *CompilationService) RemoveEvent(ctx context.Context, compilationID, eventID int64) error {
	removed, err := s.compilations.RemoveEvent(ctx, compilationID, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("event is not part of this compilation")
	}
	return nil
}

// Delete removes a compilation
func (s *CompilationService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.compilations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrCompilationNotFound
	}
	return nil
}

func (s *CompilationService) checkEventsExist(ctx context.Context, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	events, err := s.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		return err
	}
	if len(events) != len(eventIDs) {
		return apperrors.NewNotFoundError("one or more events do not exist")
	}
	return nil
}

func (s *CompilationService) toResponse(ctx context.Context, compilation *models.Compilation, eventIDs []int64) (*dto.CompilationResponse, error) {
	events, err := s.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	confirmed, views, err := s.aggregator.Counts(ctx, events)
	if err != nil {
		return nil, err
	}

	shorts := make([]dto.EventShortResponse, 0, len(events))
	for i := range events {
		shorts = append(shorts, toEventShortResponse(&events[i], confirmed[events[i].ID], views[events[i].ID]))
	}

	return &dto.CompilationResponse{
		ID:     compilation.ID,
		Title:  compilation.Title,
		Pinned: compilation.Pinned,
		Events: shorts,
	}, nil
}
