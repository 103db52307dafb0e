package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
	"github.com/eventum-app/eventum/internal/pkg/logger"
)

// epochStart anchors view queries: no hits exist before the platform launched,
// so every aggregation window opens here.
var epochStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Client talks to the statistics service over HTTP
type Client struct {
	baseURL    string
	appName    string
	httpClient *http.Client
}

// NewClient creates a stats client for the given base URL
func NewClient(baseURL, appName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appName:    appName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RecordHit registers a view of the given URI. Failures are logged and
// swallowed: losing a hit must never fail the request being served.
func (c *Client) RecordHit(ctx context.Context, uri, ip string) {
	hit := dto.EndpointHitRequest{
		App:       c.appName,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now().UTC().Format(helpers.StatsTimeLayout),
	}

	body, err := json.Marshal(hit)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to encode endpoint hit")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to build hit request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("uri", uri).Msg("Failed to record endpoint hit")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		logger.Warn().Int("status", resp.StatusCode).Str("uri", uri).Msg("Stats service rejected hit")
	}
}

// HitCounts returns unique view counts per event id. Every requested id is
// present in the result; events the stats service knows nothing about map to
// zero. A stats outage also degrades to all-zero counts rather than an error.
func (c *Client) HitCounts(ctx context.Context, eventIDs []int64) map[int64]int64 {
	counts := make(map[int64]int64, len(eventIDs))
	for _, id := range eventIDs {
		counts[id] = 0
	}
	if len(eventIDs) == 0 {
		return counts
	}

	stats, err := c.fetchStats(ctx, eventIDs)
	if err != nil {
		logger.Warn().Err(err).Msg("Stats service unavailable, reporting zero views")
		return counts
	}

	for _, stat := range stats {
		id, ok := eventIDFromURI(stat.URI)
		if !ok {
			continue
		}
		if _, requested := counts[id]; requested {
			counts[id] = stat.Hits
		}
	}
	return counts
}

func (c *Client) fetchStats(ctx context.Context, eventIDs []int64) ([]dto.ViewStatsResponse, error) {
	params := url.Values{}
	params.Set("start", epochStart.Format(helpers.StatsTimeLayout))
	params.Set("end", time.Now().UTC().Format(helpers.StatsTimeLayout))
	params.Set("unique", "true")
	for _, id := range eventIDs {
		params.Add("uris", "/events/"+strconv.FormatInt(id, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building stats request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewDependencyError("stats service request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewDependencyError(fmt.Sprintf("stats service returned status %d", resp.StatusCode))
	}

	var stats []dto.ViewStatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("error decoding stats response: %w", err)
	}
	return stats, nil
}

func eventIDFromURI(uri string) (int64, bool) {
	const prefix = "/events/"
	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(uri[len(prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
