package resume

import (
	"context"
	"errors"

	"atelier/internal/order"
)

// DraftReader is the read-only store surface the controller consumes.
type DraftReader interface {
	Get(ctx context.Context, sessionID string) (order.Draft, error)
}

// Canceller requests the cancel transition from the order service. The
// controller never writes drafts itself.
type Canceller interface {
	Cancel(ctx context.Context, sessionID string) error
}

// Decision is what an entry point shows the customer: either start fresh, or
// choose between continuing the interrupted draft and cancelling it.
type Decision struct {
	Resumable bool        `json:"resumable"`
	Phase     order.Phase `json:"phase,omitempty"`
	Route     string      `json:"route,omitempty"`
	Draft     order.Draft `json:"draft,omitempty"`
}

// Controller inspects the draft store on every entry point and decides
// whether to offer resumption. While a non-terminal draft is pending, no
// entry point may begin a second one.
type Controller struct {
	store   DraftReader
	orders  Canceller
	onOffer func()
}

// NewController constructs a Controller. onOffer may be nil; when set it is
// called each time a resumable draft is surfaced.
func NewController(store DraftReader, orders Canceller, onOffer func()) *Controller {
	return &Controller{store: store, orders: orders, onOffer: onOffer}
}

// Inspect reads the session's slot. An empty or corrupt slot means "start
// fresh" and is never an error to the caller.
func (c *Controller) Inspect(ctx context.Context, sessionID string) (Decision, error) {
	dec, err := c.inspect(ctx, sessionID)
	if err == nil && dec.Resumable && c.onOffer != nil {
		c.onOffer()
	}
	return dec, err
}

func (c *Controller) inspect(ctx context.Context, sessionID string) (Decision, error) {
	d, err := c.store.Get(ctx, sessionID)
	if errors.Is(err, order.ErrNoDraft) {
		return Decision{}, nil
	}
	if err != nil {
		return Decision{}, err
	}
	if d.Phase.Terminal() {
		// Terminal drafts are deleted with their transition; one showing up
		// here is stale and not worth resuming.
		return Decision{}, nil
	}

	return Decision{
		Resumable: true,
		Phase:     d.Phase,
		Route:     RouteFor(d),
		Draft:     d,
	}, nil
}

// EnsureFresh reports order.ErrDraftPending while a resumable draft occupies
// the slot, blocking a fresh selection until the customer continues or
// cancels. A blocked selection is not a resume prompt, so it does not count
// as an offer.
func (c *Controller) EnsureFresh(ctx context.Context, sessionID string) error {
	dec, err := c.inspect(ctx, sessionID)
	if err != nil {
		return err
	}
	if dec.Resumable {
		return order.ErrDraftPending
	}
	return nil
}

// Cancel asks the order service to abandon the session's draft.
func (c *Controller) Cancel(ctx context.Context, sessionID string) error {
	return c.orders.Cancel(ctx, sessionID)
}

// RouteFor maps a draft to the page that continues it: the originating
// catalog page while selecting, the payment page while a payment is pending,
// and the measurement page once paid.
func RouteFor(d order.Draft) string {
	switch d.Phase {
	case order.PhaseSelecting:
		switch d.Item.ProductType {
		case order.ProductKaptan:
			return "/kaptans"
		case order.ProductAgbada:
			return "/agbada"
		default:
			return "/"
		}
	case order.PhasePendingPayment:
		return "/payment"
	case order.PhasePaid:
		return "/measurement"
	default:
		return "/"
	}
}
