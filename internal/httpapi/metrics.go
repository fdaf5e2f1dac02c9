package httpapi

import (
	"sync/atomic"
	"time"

	"github.com/gonzalop/ftplist/internal/scan"
)

// MetricsCollector is an optional interface for collecting API metrics.
// Implementations can forward to a monitoring system. Methods are called on
// the request path and should not block.
type MetricsCollector interface {
	// RecordRequest records a finished request. route is the matched route
	// pattern, or "" when nothing matched.
	RecordRequest(method, route string, status int, duration time.Duration)

	// RecordListing records the summary of a parsed listing.
	RecordListing(sum scan.Summary)
}

// Counters is an in-memory MetricsCollector.
type Counters struct {
	requests atomic.Int64
	rejected atomic.Int64
	lines    atomic.Int64
	parsed   atomic.Int64
	unparsed atomic.Int64
}

// CountersSnapshot is a point-in-time copy of Counters.
type CountersSnapshot struct {
	Requests int64 `json:"requests"`
	Rejected int64 `json:"rejected"`
	Lines    int64 `json:"lines"`
	Parsed   int64 `json:"parsed"`
	Unparsed int64 `json:"unparsed"`
}

// RecordRequest implements MetricsCollector. Responses with status 400 and
// above count as rejected.
func (c *Counters) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.Add(1)
	if status >= 400 {
		c.rejected.Add(1)
	}
}

// RecordListing implements MetricsCollector.
func (c *Counters) RecordListing(sum scan.Summary) {
	c.lines.Add(int64(sum.Lines))
	c.parsed.Add(int64(sum.Parsed))
	c.unparsed.Add(int64(sum.Unparsed))
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() CountersSnapshot {
	return CountersSnapshot{
		Requests: c.requests.Load(),
		Rejected: c.rejected.Load(),
		Lines:    c.lines.Load(),
		Parsed:   c.parsed.Load(),
		Unparsed: c.unparsed.Load(),
	}
}
