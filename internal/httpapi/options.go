package httpapi

import (
	"fmt"
	"log/slog"

	"github.com/gonzalop/ftplist/internal/ratelimit"
)

// Option is a functional option for configuring a Handler.
type Option func(*Handler) error

// WithLogger sets a custom logger for the handler.
// If not specified, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		h.logger = logger
		return nil
	}
}

// WithMaxBodyBytes caps the size of request bodies. Larger listings are
// rejected with 413 Request Entity Too Large.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) error {
		if n <= 0 {
			return fmt.Errorf("max body bytes must be positive, got %d", n)
		}
		h.maxBodyBytes = n
		return nil
	}
}

// WithRateLimit limits parse requests to perSecond across all clients.
// Excess requests get 429 Too Many Requests. Zero disables the limit.
func WithRateLimit(perSecond int) Option {
	return func(h *Handler) error {
		if perSecond < 0 {
			return fmt.Errorf("rate limit cannot be negative, got %d", perSecond)
		}
		h.limiter = ratelimit.New(perSecond)
		return nil
	}
}

// WithMetrics sets a metrics collector for the handler.
//
// Example:
//
//	counters := &httpapi.Counters{}
//	h, _ := httpapi.NewHandler(parser, httpapi.WithMetrics(counters))
func WithMetrics(collector MetricsCollector) Option {
	return func(h *Handler) error {
		h.metrics = collector
		return nil
	}
}
