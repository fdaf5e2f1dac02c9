// Package ratelimit provides a token bucket limiter for API requests.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits up to a fixed number of requests per second. It is a token
// bucket whose capacity is one second worth of requests, so short bursts are
// allowed while the average rate holds.
//
// A nil *Limiter admits everything.
type Limiter struct {
	rate       float64   // requests per second
	burst      float64   // bucket capacity (max tokens)
	tokens     float64   // current available tokens
	lastUpdate time.Time // last time tokens were updated
	now        func() time.Time
	mu         sync.Mutex
}

// New creates a limiter for the given requests per second. A rate of zero or
// less means unlimited and returns nil.
func New(perSecond int) *Limiter {
	if perSecond <= 0 {
		return nil
	}

	rate := float64(perSecond)
	return &Limiter{
		rate:       rate,
		burst:      rate, // Allow 1 second burst
		tokens:     rate, // Start with full bucket
		lastUpdate: time.Now(),
		now:        time.Now,
	}
}

// Allow consumes one token if available and reports whether it did.
func (rl *Limiter) Allow() bool {
	if rl == nil {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// RetryAfter returns how long until the next token is available.
func (rl *Limiter) RetryAfter() time.Duration {
	if rl == nil {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		return 0
	}
	short := 1 - rl.tokens
	return time.Duration(short / rl.rate * float64(time.Second))
}

// refill adds tokens for the time elapsed since the last update.
// Callers must hold mu.
func (rl *Limiter) refill() {
	now := rl.now()
	elapsed := now.Sub(rl.lastUpdate).Seconds()
	rl.tokens += elapsed * rl.rate
	if rl.tokens > rl.burst {
		rl.tokens = rl.burst
	}
	rl.lastUpdate = now
}
