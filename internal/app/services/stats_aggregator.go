package services

import (
	"context"

	"github.com/eventum-app/eventum/internal/app/models"
)

// StatsAggregator joins the two per-event aggregates listings need: confirmed
// request counts from our own store and view counts from the external hit
// counter. Both batch queries run once per listing, never per event.
//
// The two aggregates fail differently on purpose: view counts degrade to zero
// when the hit counter is unreachable, confirmed counts propagate their error
// because admission decisions and availability filters read them.
type StatsAggregator struct {
	requests RequestStore
	hits     HitCounter
}

// NewStatsAggregator creates a new StatsAggregator
func NewStatsAggregator(requests RequestStore, hits HitCounter) *StatsAggregator {
	return &StatsAggregator{requests: requests, hits: hits}
}

// ConfirmedCounts returns the confirmed request count per event. Every
// requested id is present in the result, defaulting to zero.
func (a *StatsAggregator) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts, err := a.requests.CountConfirmedByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range eventIDs {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}
	return counts, nil
}

// Views returns the unique view count per event, zero for events the hit
// counter has no data for.
func (a *StatsAggregator) Views(ctx context.Context, eventIDs []int64) map[int64]int64 {
	return a.hits.HitCounts(ctx, eventIDs)
}

// Counts fetches both aggregates for the given events
func (a *StatsAggregator) Counts(ctx context.Context, events []models.Event) (confirmed, views map[int64]int64, err error) {
	ids := make([]int64, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}

	confirmed, err = a.ConfirmedCounts(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return confirmed, a.Views(ctx, ids), nil
}
