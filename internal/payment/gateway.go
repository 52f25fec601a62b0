package payment

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// The provider charges in its minor currency unit (kobo), one hundred to the
// naira the catalog prices in.
const minorUnitFactor = 100

// Handle carries everything the hosted payment widget needs for one attempt.
type Handle struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // minor unit
	PublicKey string `json:"public_key"`
}

var (
	ErrEmailRequired = errors.New("payment email is required")
	ErrBadAmount     = errors.New("payment amount must be positive")
)

// Gateway translates a draft's payment details into the provider's invocation
// contract. It holds no state; success and close outcomes arrive later as
// discrete events on the order service.
type Gateway struct {
	publicKey    string
	newReference func() string
}

// NewGateway constructs a Gateway using the given provider public key.
func NewGateway(publicKey string) *Gateway {
	return &Gateway{
		publicKey:    publicKey,
		newReference: func() string { return "md_" + uuid.NewString() },
	}
}

// Initiate produces a Handle with a freshly generated reference. References
// are never reused: every attempt gets its own, even when a prior attempt on
// the same draft was abandoned.
func (g *Gateway) Initiate(email string, amount int64) (Handle, error) {
	if strings.TrimSpace(email) == "" {
		return Handle{}, ErrEmailRequired
	}
	if amount <= 0 {
		return Handle{}, ErrBadAmount
	}
	return Handle{
		Reference: g.newReference(),
		Email:     email,
		Amount:    amount * minorUnitFactor,
		PublicKey: g.publicKey,
	}, nil
}
