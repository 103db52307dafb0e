package statsvc

import "time"

// EndpointHit is one recorded request against a tracked URI
type EndpointHit struct {
	ID        int64
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is one aggregated hit-count row
type ViewStats struct {
	App  string
	URI  string
	Hits int64
}
