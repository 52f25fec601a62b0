package resume

import (
	"context"
	"errors"
	"testing"
	"time"

	"atelier/internal/order"
)

type stubReader struct {
	draft order.Draft
	err   error
}

func (r *stubReader) Get(_ context.Context, _ string) (order.Draft, error) {
	return r.draft, r.err
}

type stubCanceller struct {
	sessions []string
	err      error
}

func (c *stubCanceller) Cancel(_ context.Context, sessionID string) error {
	c.sessions = append(c.sessions, sessionID)
	return c.err
}

func pendingDraft() order.Draft {
	return order.Draft{
		SessionID: "sess-1",
		Item: order.ItemRef{
			ProductType: order.ProductKaptan,
			ItemID:      3,
			Name:        "Kaptan 3",
		},
		Sleeve:    "long",
		Amount:    22000,
		Phase:     order.PhasePendingPayment,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInspectEmptySlotMeansFresh(t *testing.T) {
	t.Parallel()

	c := NewController(&stubReader{err: order.ErrNoDraft}, &stubCanceller{}, nil)
	dec, err := c.Inspect(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if dec.Resumable {
		t.Fatal("empty slot must not be resumable")
	}
}

func TestInspectOffersNonTerminalDraft(t *testing.T) {
	t.Parallel()

	offers := 0
	c := NewController(&stubReader{draft: pendingDraft()}, &stubCanceller{}, func() { offers++ })

	dec, err := c.Inspect(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !dec.Resumable {
		t.Fatal("pending draft must be resumable")
	}
	if dec.Phase != order.PhasePendingPayment {
		t.Fatalf("phase = %q", dec.Phase)
	}
	if dec.Route != "/payment" {
		t.Fatalf("route = %q", dec.Route)
	}
	if dec.Draft != pendingDraft() {
		t.Fatalf("draft differs: %+v", dec.Draft)
	}
	if offers != 1 {
		t.Fatalf("offer hook called %d times", offers)
	}
}

func TestInspectIgnoresTerminalDraft(t *testing.T) {
	t.Parallel()

	d := pendingDraft()
	d.Phase = order.PhaseCancelled
	offers := 0
	c := NewController(&stubReader{draft: d}, &stubCanceller{}, func() { offers++ })

	dec, err := c.Inspect(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if dec.Resumable {
		t.Fatal("stale terminal draft must read as fresh")
	}
	if offers != 0 {
		t.Fatal("terminal draft must not count as an offer")
	}
}

func TestInspectSurfacesStoreErrors(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store unavailable")
	c := NewController(&stubReader{err: storeErr}, &stubCanceller{}, nil)
	if _, err := c.Inspect(context.Background(), "sess-1"); !errors.Is(err, storeErr) {
		t.Fatalf("got %v, want store error", err)
	}
}

func TestEnsureFresh(t *testing.T) {
	t.Parallel()

	t.Run("empty slot", func(t *testing.T) {
		c := NewController(&stubReader{err: order.ErrNoDraft}, &stubCanceller{}, nil)
		if err := c.EnsureFresh(context.Background(), "sess-1"); err != nil {
			t.Fatalf("ensure fresh: %v", err)
		}
	})

	t.Run("occupied slot", func(t *testing.T) {
		c := NewController(&stubReader{draft: pendingDraft()}, &stubCanceller{}, nil)
		err := c.EnsureFresh(context.Background(), "sess-1")
		if !errors.Is(err, order.ErrDraftPending) {
			t.Fatalf("got %v, want ErrDraftPending", err)
		}
	})

	t.Run("blocked selection is not an offer", func(t *testing.T) {
		offers := 0
		c := NewController(&stubReader{draft: pendingDraft()}, &stubCanceller{}, func() { offers++ })
		if err := c.EnsureFresh(context.Background(), "sess-1"); !errors.Is(err, order.ErrDraftPending) {
			t.Fatalf("got %v, want ErrDraftPending", err)
		}
		if offers != 0 {
			t.Fatalf("offer hook called %d times, want 0", offers)
		}
	})
}

func TestCancelDelegates(t *testing.T) {
	t.Parallel()

	canceller := &stubCanceller{}
	c := NewController(&stubReader{}, canceller, nil)
	if err := c.Cancel(context.Background(), "sess-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(canceller.sessions) != 1 || canceller.sessions[0] != "sess-1" {
		t.Fatalf("cancelled sessions = %v", canceller.sessions)
	}
}

func TestRouteFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		draft order.Draft
		want  string
	}{
		{
			"selecting kaptan",
			order.Draft{Phase: order.PhaseSelecting, Item: order.ItemRef{ProductType: order.ProductKaptan}},
			"/kaptans",
		},
		{
			"selecting agbada",
			order.Draft{Phase: order.PhaseSelecting, Item: order.ItemRef{ProductType: order.ProductAgbada}},
			"/agbada",
		},
		{
			"selecting unknown product",
			order.Draft{Phase: order.PhaseSelecting, Item: order.ItemRef{ProductType: order.ProductOther}},
			"/",
		},
		{
			"pending payment",
			order.Draft{Phase: order.PhasePendingPayment},
			"/payment",
		},
		{
			"paid",
			order.Draft{Phase: order.PhasePaid},
			"/measurement",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RouteFor(tc.draft); got != tc.want {
				t.Fatalf("route = %q, want %q", got, tc.want)
			}
		})
	}
}
