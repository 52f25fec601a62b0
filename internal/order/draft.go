package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProductType identifies which catalog section a draft's item came from.
type ProductType string

const (
	ProductKaptan ProductType = "kaptan"
	ProductAgbada ProductType = "agbada"
	ProductOther  ProductType = "other"
)

// Phase is the draft's position in the order lifecycle.
type Phase string

const (
	PhaseSelecting      Phase = "selecting"
	PhasePendingPayment Phase = "pendingPayment"
	PhasePaid           Phase = "paid"
	PhaseCompleted      Phase = "completed"
	PhaseCancelled      Phase = "cancelled"
)

// Terminal reports whether the phase ends the lifecycle. Terminal drafts
// never live in the store; completed and cancelled drafts are deleted in the
// same step that produces them.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseCancelled
}

func (p Phase) String() string { return string(p) }

// ItemRef identifies a sellable catalog item.
type ItemRef struct {
	ProductType ProductType `json:"product_type"`
	ItemID      int         `json:"item_id"`
	Name        string      `json:"name"`
	Image       string      `json:"image"`
}

// Customer holds contact details collected on the payment page.
type Customer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Draft is the single in-progress order tracked per session. Phase is written
// only by the order Service; everyone else reads.
type Draft struct {
	SessionID        string    `json:"session_id"`
	Item             ItemRef   `json:"item"`
	Sleeve           string    `json:"sleeve,omitempty"`
	Amount           int64     `json:"amount"`
	Customer         Customer  `json:"customer"`
	Phase            Phase     `json:"phase"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Measurements are the body measurements submitted after payment. They are
// forwarded with the completion record, never stored on the draft.
type Measurements struct {
	Shirt       string `json:"shirt"`
	Trouser     string `json:"trouser"`
	Hand        string `json:"hand"`
	Neck        string `json:"neck"`
	Shoulder    string `json:"shoulder"`
	FabricColor string `json:"fabric_color"`
	Description string `json:"description,omitempty"`
}

// Validate reports the first missing required measurement field.
// Description is optional.
func (m Measurements) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"shirt", m.Shirt},
		{"trouser", m.Trouser},
		{"hand", m.Hand},
		{"neck", m.Neck},
		{"shoulder", m.Shoulder},
		{"fabric_color", m.FabricColor},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingMeasurement, r.field)
		}
	}
	return nil
}

// Validate checks the contact fields required before a payment attempt.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name", ErrInvalidCustomer)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email", ErrInvalidCustomer)
	}
	if len(strings.TrimSpace(c.Phone)) < 10 {
		return fmt.Errorf("%w: phone", ErrInvalidCustomer)
	}
	if strings.TrimSpace(c.Location) == "" {
		return fmt.Errorf("%w: location", ErrInvalidCustomer)
	}
	return nil
}

var (
	// ErrNoDraft is returned when the store holds no draft for the session.
	// Corrupt stored values are reported the same way.
	ErrNoDraft = errors.New("no draft for session")

	// ErrDraftPending is returned when a fresh selection is attempted while a
	// non-terminal draft still occupies the session slot.
	ErrDraftPending = errors.New("a draft is already pending for this session")

	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrInvalidCustomer    = errors.New("invalid customer field")
	ErrMissingMeasurement = errors.New("missing measurement field")
	ErrWrongPhase         = errors.New("transition not allowed from current phase")
	ErrNotCancellable     = errors.New("draft can no longer be cancelled")
)
