package payment

import (
	"errors"
	"strings"
	"testing"
)

func TestInitiate(t *testing.T) {
	t.Parallel()

	g := NewGateway("pk_test_abc")
	h, err := g.Initiate("ade@example.com", 20000)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if h.Email != "ade@example.com" {
		t.Fatalf("email = %q", h.Email)
	}
	if h.Amount != 2000000 {
		t.Fatalf("amount = %d, want minor units of 20000", h.Amount)
	}
	if h.PublicKey != "pk_test_abc" {
		t.Fatalf("public key = %q", h.PublicKey)
	}
	if !strings.HasPrefix(h.Reference, "md_") {
		t.Fatalf("reference = %q, want md_ prefix", h.Reference)
	}
}

func TestInitiateFreshReferencePerAttempt(t *testing.T) {
	t.Parallel()

	g := NewGateway("pk_test_abc")
	first, err := g.Initiate("ade@example.com", 35000)
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	second, err := g.Initiate("ade@example.com", 35000)
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if first.Reference == second.Reference {
		t.Fatalf("reference %q reused across attempts", first.Reference)
	}
}

func TestInitiateRejectsBadInput(t *testing.T) {
	t.Parallel()

	g := NewGateway("pk_test_abc")

	cases := []struct {
		name   string
		email  string
		amount int64
		want   error
	}{
		{"empty email", "", 20000, ErrEmailRequired},
		{"blank email", "   ", 20000, ErrEmailRequired},
		{"zero amount", "ade@example.com", 0, ErrBadAmount},
		{"negative amount", "ade@example.com", -1, ErrBadAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Initiate(tc.email, tc.amount); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
