package domain

import (
	"errors"
	"testing"
)

func TestPropertyFilters_Values_OnlySetFields(t *testing.T) {
	got := PropertyFilters{PriceType: PriceSale}.Values().Encode()
	if got != "price_type=sale" {
		t.Fatalf("expected price_type=sale, got %q", got)
	}

	got = PropertyFilters{}.Values().Encode()
	if got != "" {
		t.Fatalf("expected empty query, got %q", got)
	}

	got = PropertyFilters{IslandID: 3, MinPrice: 1500000.5, Page: 2}.Values().Encode()
	if got != "island_id=3&min_price=1500000.5&page=2" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestSession_Normalize(t *testing.T) {
	cases := []struct {
		name string
		in   Session
		want bool
	}{
		{"user and token", Session{User: &User{ID: 1}, Token: "t"}, true},
		{"token without user", Session{Token: "t", IsAuthenticated: true}, false},
		{"user without token", Session{User: &User{ID: 1}, IsAuthenticated: true}, false},
		{"empty", Session{IsAuthenticated: true}, false},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize().IsAuthenticated; got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAPIError_MessageAndKind(t *testing.T) {
	err := &APIError{Kind: ErrRejected, Status: 404}
	if err.Error() != "request failed with status code 404" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrRejected) || errors.Is(err, ErrAuthExpired) {
		t.Fatalf("unexpected kind matching")
	}

	cause := errors.New("dial tcp: refused")
	err = &APIError{Kind: ErrTransport, Err: cause}
	if !errors.Is(err, cause) || err.Error() != cause.Error() {
		t.Fatalf("expected cause to be wrapped and reported")
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(Rejection(422, "Email taken", nil), "fallback"); got != "Email taken" {
		t.Fatalf("expected backend message, got %q", got)
	}
	if got := ErrorMessage(nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := ErrorMessage(errors.New("boom"), "fallback"); got != "boom" {
		t.Fatalf("expected error text, got %q", got)
	}
}

func TestPage_Total(t *testing.T) {
	var nilPage *Page[Island]
	if nilPage.Total() != 0 {
		t.Fatalf("expected 0 for nil page")
	}
	p := &Page[Island]{Data: []Island{{ID: 1}, {ID: 2}}}
	if p.Total() != 2 {
		t.Fatalf("expected len(data) without meta")
	}
	p.Meta = &PageMeta{Total: 40}
	if p.Total() != 40 {
		t.Fatalf("expected meta.total")
	}
}
