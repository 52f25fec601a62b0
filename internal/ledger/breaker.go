package ledger

import (
	"errors"
	"sync"
	"time"
)

// ErrSinkUnavailable indicates the breaker is open and the append was skipped.
var ErrSinkUnavailable = errors.New("ledger sink unavailable")

// BreakerConfig configures the delivery circuit breaker.
type BreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
	Now          func() time.Time
}

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// Breaker stops delivery attempts after repeated sink failures so a dead
// endpoint is not hammered on every emitted record. There is no retry: a
// skipped record is simply lost, which the at-most-once contract allows.
type Breaker struct {
	mu         sync.Mutex
	maxFails   int
	resetAfter time.Duration
	now        func() time.Time

	state          breakerState
	failures       int
	openedAt       time.Time
	halfOpenFlight bool
}

// NewBreaker constructs a Breaker with sane defaults.
func NewBreaker(cfg BreakerConfig) *Breaker {
	maxFails := cfg.MaxFailures
	if maxFails < 1 {
		maxFails = 1
	}
	resetAfter := cfg.ResetTimeout
	if resetAfter <= 0 {
		resetAfter = 30 * time.Second
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Breaker{
		maxFails:   maxFails,
		resetAfter: resetAfter,
		now:        now,
		state:      breakerClosed,
	}
}

// Execute runs the delivery function while enforcing breaker state. A nil
// breaker passes calls straight through.
func (b *Breaker) Execute(fn func() error) error {
	if b == nil {
		return fn()
	}

	now := b.now()

	b.mu.Lock()
	switch b.state {
	case breakerOpen:
		if now.Sub(b.openedAt) < b.resetAfter {
			b.mu.Unlock()
			return ErrSinkUnavailable
		}
		b.state = breakerHalfOpen
	case breakerHalfOpen:
		if b.halfOpenFlight {
			b.mu.Unlock()
			return ErrSinkUnavailable
		}
	}
	if b.state == breakerHalfOpen {
		b.halfOpenFlight = true
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen {
		b.halfOpenFlight = false
	}

	if err == nil {
		b.state = breakerClosed
		b.failures = 0
		return nil
	}

	if b.state == breakerHalfOpen {
		b.state = breakerOpen
		b.openedAt = now
		b.failures = 0
		return err
	}

	b.failures++
	if b.failures >= b.maxFails {
		b.state = breakerOpen
		b.openedAt = now
	}
	return err
}
