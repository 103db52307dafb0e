package dto

// EndpointHitRequest records one request against a tracked URI.
// Timestamp uses the "2006-01-02 15:04:05" wire format.
type EndpointHitRequest struct {
	App       string `json:"app" binding:"required,max=150"`
	URI       string `json:"uri" binding:"required,max=150"`
	IP        string `json:"ip" binding:"required,max=30"`
	Timestamp string `json:"timestamp" binding:"required"`
}

// ViewStatsResponse is one aggregated hit-count row
type ViewStatsResponse struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
