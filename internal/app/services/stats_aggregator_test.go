package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eventum-app/eventum/internal/app/models"
)

type failingRequests struct {
	RequestStore
}

func (f failingRequests) CountConfirmedByEventIDs(context.Context, []int64) (map[int64]int64, error) {
	return nil, errors.New("store unavailable")
}

func TestConfirmedCountsZeroFill(t *testing.T) {
	f := newFixture()
	ownerID := f.addUser("owner")
	guestID := f.addUser("guest")
	categoryID := f.addCategory("concerts")
	busyID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	emptyID := f.addEvent(ownerID, categoryID, models.EventStatePublished, 0, true)
	f.addRequest(guestID, busyID, models.RequestStatusConfirmed)

	aggregator := NewStatsAggregator(f.requests, f.hits)
	counts, err := aggregator.ConfirmedCounts(context.Background(), []int64{busyID, emptyID})
	if err != nil {
		t.Fatalf("ConfirmedCounts: %v", err)
	}
	if counts[busyID] != 1 {
		t.Errorf("counts[%d] = %d, want 1", busyID, counts[busyID])
	}
	if count, ok := counts[emptyID]; !ok || count != 0 {
		t.Errorf("counts[%d] = %d (present %v), want explicit 0", emptyID, count, ok)
	}
}

func TestConfirmedCountsPropagateErrors(t *testing.T) {
	f := newFixture()
	aggregator := NewStatsAggregator(failingRequests{}, f.hits)

	_, _, err := aggregator.Counts(context.Background(), []models.Event{{ID: 1}})
	if err == nil {
		t.Fatal("expected the store error to propagate")
	}
}

func TestViewsDefaultToZero(t *testing.T) {
	f := newFixture()
	f.hits.counts[2] = 9

	aggregator := NewStatsAggregator(f.requests, f.hits)
	views := aggregator.Views(context.Background(), []int64{1, 2, 3})
	if views[1] != 0 || views[2] != 9 || views[3] != 0 {
		t.Errorf("views = %v, want {1:0 2:9 3:0}", views)
	}
}
