package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"atelier/internal/ledger"
	"atelier/internal/payment"
)

// Ledger receives advisory event records. Emission is fire-and-forget: a slow
// or failing sink must never block or revert a state transition.
type Ledger interface {
	Emit(rec ledger.Record)
}

// PaymentGateway opens a payment attempt with the external provider.
type PaymentGateway interface {
	Initiate(email string, amount int64) (payment.Handle, error)
}

// Service is the sole writer of draft phases. Every transition is an atomic
// read-modify-write against the store, serialized by the service mutex so
// provider callbacks arriving on other goroutines cannot interleave.
type Service struct {
	mu      sync.Mutex
	store   DraftStore
	ledger  Ledger
	gateway PaymentGateway
	now     func() time.Time
}

// NewService constructs the order service. now may be nil, defaulting to
// time.Now.
func NewService(store DraftStore, lg Ledger, gateway PaymentGateway, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:   store,
		ledger:  lg,
		gateway: gateway,
		now:     now,
	}
}

// Welcome records a customer announcing themselves on the home page.
func (s *Service) Welcome(name string) {
	s.emit(CustomerEntryRecord(name, s.now()))
}

// Navigate records a customer browsing into a catalog section.
func (s *Service) Navigate(name, action string) {
	s.emit(NavigationRecord(name, action, s.now()))
}

// Select creates the session's draft for a chosen item and variant. If a
// non-terminal draft already occupies the slot it is never silently
// overwritten; the caller gets ErrDraftPending and must resume or cancel
// first.
func (s *Service) Select(ctx context.Context, sessionID string, item ItemRef, sleeve string, amount int64, customer Customer) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(ctx, sessionID); err == nil {
		return Draft{}, ErrDraftPending
	} else if !errors.Is(err, ErrNoDraft) {
		return Draft{}, err
	}

	d, err := NewSelection(sessionID, item, sleeve, amount, customer, s.now())
	if err != nil {
		return Draft{}, err
	}
	if err := s.store.Put(ctx, d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// BeginPayment moves the draft to pendingPayment and opens a payment attempt.
// Re-entering from pendingPayment is allowed and hands out a fresh reference.
func (s *Service) BeginPayment(ctx context.Context, sessionID string, customer Customer) (Draft, payment.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, payment.Handle{}, err
	}
	next, err := StartPayment(d, customer, s.now())
	if err != nil {
		return d, payment.Handle{}, err
	}
	if err := s.store.Put(ctx, next); err != nil {
		return d, payment.Handle{}, err
	}
	handle, err := s.gateway.Initiate(next.Customer.Email, next.Amount)
	if err != nil {
		return next, payment.Handle{}, err
	}
	return next, handle, nil
}

// PaymentClosed handles the widget being dismissed without a charge. The
// draft is re-saved in pendingPayment; repeats are idempotent.
func (s *Service) PaymentClosed(ctx context.Context, sessionID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	next, err := PaymentClosed(d)
	if err != nil {
		return d, err
	}
	if err := s.store.Put(ctx, next); err != nil {
		return d, err
	}
	return next, nil
}

// PaymentSucceeded moves the draft to paid under the given reference and
// emits the payment_success record. A duplicate success event is a no-op:
// the stored reference never changes and no second record is emitted.
func (s *Service) PaymentSucceeded(ctx context.Context, sessionID, reference string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	next, first, err := PaymentSucceeded(d, reference, s.now())
	if err != nil {
		return d, err
	}
	if !first {
		return next, nil
	}
	if err := s.store.Put(ctx, next); err != nil {
		return d, err
	}
	s.emit(paymentSuccessRecord(next, s.now()))
	return next, nil
}

// SubmitMeasurements completes the order: the draft is deleted from the store
// in the same logical step that emits the order_complete record. A rejected
// submission leaves the draft in paid, untouched, and emits nothing.
func (s *Service) SubmitMeasurements(ctx context.Context, sessionID string, m Measurements) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	next, err := Complete(d, m, s.now())
	if err != nil {
		return d, err
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return d, err
	}
	s.emit(orderCompleteRecord(next, m, s.now()))
	return next, nil
}

// Cancel abandons the session's draft and clears the slot. No record is
// emitted for a cancellation.
func (s *Service) Cancel(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, err := Cancel(d); err != nil {
		return err
	}
	return s.store.Clear(ctx, sessionID)
}

// Draft returns the session's current draft without modifying it.
func (s *Service) Draft(ctx context.Context, sessionID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(ctx, sessionID)
}

func (s *Service) emit(rec ledger.Record) {
	if s.ledger == nil {
		return
	}
	s.ledger.Emit(rec)
}
