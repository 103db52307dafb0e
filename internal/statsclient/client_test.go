package statsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventum-app/eventum/internal/app/models/dto"
)

func TestHitCountsDefaultsMissingIDsToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats" {
			t.Errorf("path = %q, want /stats", r.URL.Path)
		}
		if r.URL.Query().Get("unique") != "true" {
			t.Error("stats query must request unique views")
		}
		uris := r.URL.Query()["uris"]
		if len(uris) != 3 {
			t.Errorf("got %d uris, want 3", len(uris))
		}
		json.NewEncoder(w).Encode([]dto.ViewStatsResponse{
			{App: "eventum-main", URI: "/events/2", Hits: 42},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventum-main", time.Second)
	counts := client.HitCounts(context.Background(), []int64{1, 2, 3})

	want := map[int64]int64{1: 0, 2: 42, 3: 0}
	for id, hits := range want {
		if counts[id] != hits {
			t.Errorf("counts[%d] = %d, want %d", id, counts[id], hits)
		}
	}
}

func TestHitCountsDegradesToZeroOnOutage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventum-main", time.Second)
	counts := client.HitCounts(context.Background(), []int64{7, 8})

	if counts[7] != 0 || counts[8] != 0 {
		t.Errorf("counts = %v, want all zeros on outage", counts)
	}
	if len(counts) != 2 {
		t.Errorf("every requested id must be present, got %v", counts)
	}
}

func TestHitCountsIgnoresUnrequestedURIs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]dto.ViewStatsResponse{
			{App: "eventum-main", URI: "/events/99", Hits: 5},
			{App: "eventum-main", URI: "/events", Hits: 100},
			{App: "eventum-main", URI: "/events/1", Hits: 3},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventum-main", time.Second)
	counts := client.HitCounts(context.Background(), []int64{1})

	if len(counts) != 1 || counts[1] != 3 {
		t.Errorf("counts = %v, want {1:3}", counts)
	}
}

func TestRecordHit(t *testing.T) {
	var received dto.EndpointHitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/hit" {
			t.Errorf("%s %s, want POST /hit", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode hit: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventum-main", time.Second)
	client.RecordHit(context.Background(), "/events/5", "192.168.1.10")

	if received.App != "eventum-main" || received.URI != "/events/5" || received.IP != "192.168.1.10" {
		t.Errorf("recorded hit = %+v", received)
	}
	if received.Timestamp == "" {
		t.Error("hit timestamp must be set")
	}
}

func TestRecordHitSwallowsOutage(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "eventum-main", 100*time.Millisecond)
	// must not panic or block the caller
	client.RecordHit(context.Background(), "/events/5", "192.168.1.10")
}

func TestEventIDFromURI(t *testing.T) {
	tests := []struct {
		uri    string
		id     int64
		expect bool
	}{
		{"/events/12", 12, true},
		{"/events/", 0, false},
		{"/events", 0, false},
		{"/events/abc", 0, false},
		{"/other/12", 0, false},
	}
	for _, tt := range tests {
		id, ok := eventIDFromURI(tt.uri)
		if ok != tt.expect || id != tt.id {
			t.Errorf("eventIDFromURI(%q) = (%d, %v), want (%d, %v)", tt.uri, id, ok, tt.id, tt.expect)
		}
	}
}
