package statsvc

import (
	"context"
	"time"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// HitStore is the persistence surface the stats service depends on
type HitStore interface {
	Save(ctx context.Context, hit *EndpointHit) error
	Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error)
}

// StatsService records endpoint hits and serves aggregated view counts
type StatsService struct {
	hits HitStore
}

// NewStatsService creates a new StatsService
func NewStatsService(hits HitStore) *StatsService {
	return &StatsService{hits: hits}
}

// RecordHit persists one endpoint hit
func (s *StatsService) RecordHit(ctx context.Context, req dto.EndpointHitRequest) error {
	timestamp, err := parseWireTime(req.Timestamp, "timestamp")
	if err != nil {
		return err
	}

	hit := &EndpointHit{
		App:       req.App,
		URI:       req.URI,
		IP:        req.IP,
		Timestamp: timestamp,
	}
	return s.hits.Save(ctx, hit)
}

// GetStats aggregates hit counts inside [start, end)
func (s *StatsService) GetStats(ctx context.Context, startStr, endStr string, uris []string, unique bool) ([]dto.ViewStatsResponse, error) {
	start, err := parseWireTime(startStr, "start")
	if err != nil {
		return nil, err
	}
	end, err := parseWireTime(endStr, "end")
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end must be after start")
	}

	stats, err := s.hits.Stats(ctx, start, end, uris, unique)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ViewStatsResponse, 0, len(stats))
	for _, stat := range stats {
		responses = append(responses, dto.ViewStatsResponse{
			App:  stat.App,
			URI:  stat.URI,
			Hits: stat.Hits,
		})
	}
	return responses, nil
}

func parseWireTime(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.NewValidationError(field + " is required")
	}
	parsed, err := time.ParseInLocation(helpers.StatsTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field + " must use the format " + helpers.StatsTimeLayout)
	}
	return parsed, nil
}
