package order

import (
	"fmt"
	"time"
)

// Pure transition functions for the order lifecycle:
//
//	selecting -> pendingPayment -> paid -> completed (deleted)
//	selecting, pendingPayment -> cancelled (deleted)
//
// Each maps (draft, event) to a new draft or an error. Persistence and ledger
// emission are the Service's job; nothing here touches a store.

// NewSelection builds the initial draft for a chosen item and variant.
func NewSelection(sessionID string, item ItemRef, sleeve string, amount int64, customer Customer, now time.Time) (Draft, error) {
	if amount <= 0 {
		return Draft{}, ErrInvalidAmount
	}
	return Draft{
		SessionID: sessionID,
		Item:      item,
		Sleeve:    sleeve,
		Amount:    amount,
		Customer:  customer,
		Phase:     PhaseSelecting,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StartPayment moves a selecting draft to pendingPayment once the customer
// details are complete and the amount is payable.
func StartPayment(d Draft, c Customer, now time.Time) (Draft, error) {
	if d.Phase != PhaseSelecting && d.Phase != PhasePendingPayment {
		return d, fmt.Errorf("%w: %s -> pendingPayment", ErrWrongPhase, d.Phase)
	}
	if d.Amount <= 0 {
		return d, ErrInvalidAmount
	}
	if err := c.Validate(); err != nil {
		return d, err
	}
	d.Customer = c
	d.Phase = PhasePendingPayment
	d.UpdatedAt = now
	return d, nil
}

// PaymentClosed records that the payment widget was dismissed without a
// successful charge. The draft stays in pendingPayment; repeating the event
// leaves it byte-for-byte identical.
func PaymentClosed(d Draft) (Draft, error) {
	if d.Phase != PhasePendingPayment {
		return d, fmt.Errorf("%w: %s -> pendingPayment", ErrWrongPhase, d.Phase)
	}
	return d, nil
}

// PaymentSucceeded moves a pendingPayment draft to paid and assigns the
// payment reference. The reference is write-once: a repeat success event on a
// paid draft is a no-op and reports fresh=false so no duplicate ledger record
// is emitted.
func PaymentSucceeded(d Draft, reference string, now time.Time) (fresh Draft, first bool, err error) {
	if d.Phase == PhasePaid {
		return d, false, nil
	}
	if d.Phase != PhasePendingPayment {
		return d, false, fmt.Errorf("%w: %s -> paid", ErrWrongPhase, d.Phase)
	}
	if reference == "" {
		return d, false, fmt.Errorf("payment reference is required")
	}
	d.PaymentReference = reference
	d.Phase = PhasePaid
	d.UpdatedAt = now
	return d, true, nil
}

// Complete moves a paid draft to the terminal completed phase once every
// required measurement is present. A rejected submission leaves the draft in
// paid, unchanged.
func Complete(d Draft, m Measurements, now time.Time) (Draft, error) {
	if d.Phase != PhasePaid {
		return d, fmt.Errorf("%w: %s -> completed", ErrWrongPhase, d.Phase)
	}
	if err := m.Validate(); err != nil {
		return d, err
	}
	d.Phase = PhaseCompleted
	d.UpdatedAt = now
	return d, nil
}

// Cancel abandons a draft that has not been paid for. Paid drafts cannot be
// cancelled; they wait for measurements.
func Cancel(d Draft) (Draft, error) {
	switch d.Phase {
	case PhaseSelecting, PhasePendingPayment:
		d.Phase = PhaseCancelled
		return d, nil
	case PhasePaid:
		return d, ErrNotCancellable
	default:
		return d, fmt.Errorf("%w: %s -> cancelled", ErrWrongPhase, d.Phase)
	}
}
