package ledger

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := NewBreaker(BreakerConfig{MaxFailures: 2, ResetTimeout: time.Minute, Now: clock.Now})
	sinkErr := errors.New("endpoint down")
	fail := func() error { return sinkErr }

	if err := b.Execute(fail); !errors.Is(err, sinkErr) {
		t.Fatalf("first failure should pass through, got %v", err)
	}
	if err := b.Execute(fail); !errors.Is(err, sinkErr) {
		t.Fatalf("second failure should pass through, got %v", err)
	}

	calls := 0
	err := b.Execute(func() error { calls++; return nil })
	if !errors.Is(err, ErrSinkUnavailable) {
		t.Fatalf("open breaker must skip, got %v", err)
	}
	if calls != 0 {
		t.Fatal("open breaker must not invoke the delivery function")
	}
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := NewBreaker(BreakerConfig{MaxFailures: 1, ResetTimeout: time.Minute, Now: clock.Now})
	sinkErr := errors.New("endpoint down")

	if err := b.Execute(func() error { return sinkErr }); !errors.Is(err, sinkErr) {
		t.Fatalf("priming failure: %v", err)
	}
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrSinkUnavailable) {
		t.Fatalf("breaker should be open, got %v", err)
	}

	clock.advance(time.Minute)
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("half-open probe should run, got %v", err)
	}
	// Probe succeeded; breaker is closed again.
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("closed breaker should pass through, got %v", err)
	}
}

func TestBreakerHalfOpenReopensOnFailure(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := NewBreaker(BreakerConfig{MaxFailures: 1, ResetTimeout: time.Minute, Now: clock.Now})
	sinkErr := errors.New("endpoint down")

	_ = b.Execute(func() error { return sinkErr })
	clock.advance(time.Minute)
	if err := b.Execute(func() error { return sinkErr }); !errors.Is(err, sinkErr) {
		t.Fatalf("half-open probe failure should surface, got %v", err)
	}
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrSinkUnavailable) {
		t.Fatalf("failed probe must reopen the breaker, got %v", err)
	}
}

func TestNilBreakerPassesThrough(t *testing.T) {
	t.Parallel()

	var b *Breaker
	called := false
	if err := b.Execute(func() error { called = true; return nil }); err != nil {
		t.Fatalf("nil breaker: %v", err)
	}
	if !called {
		t.Fatal("nil breaker must invoke the delivery function")
	}
}
