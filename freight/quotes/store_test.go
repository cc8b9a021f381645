package quotes

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

func breakdownFixture() cost.Breakdown {
	return cost.Breakdown{
		Mode:        freightdata.ModeSea,
		Origin:      "Tokyo",
		Destination: "Shanghai",
		Currency:    cost.Currency,
		Pricing:     cost.PricingLCL,
		ActualKg:    500,
		VolumeCBM:   2,
		Base:        9000,
		Surcharges: []cost.LineItem{
			{Code: "BAF", Label: "Bunker adjustment factor", Amount: 1350},
			{Code: "CAF", Label: "Currency adjustment factor", Amount: 450},
			{Code: "THC", Label: "Terminal handling (origin + destination)", Amount: 33000},
		},
		Total: 43800,
	}
}

func quoteInput(customerID string) QuoteInput {
	return QuoteInput{
		CustomerID:  customerID,
		Origin:      "Tokyo",
		Destination: "Shanghai",
		Mode:        freightdata.ModeSea,
		WeightKg:    500,
		VolumeCBM:   2,
		Breakdown:   breakdownFixture(),
	}
}

func TestSaveQuoteAssignsRefAndValidity(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))

	q, err := store.SaveQuote(quoteInput("CUST-1"))
	if err != nil {
		t.Fatalf("SaveQuote() error = %v", err)
	}

	if q.Ref != "Q20260302103000-0001" {
		t.Fatalf("ref = %q, want Q20260302103000-0001", q.Ref)
	}
	if q.Total != 43800 || q.Currency != cost.Currency {
		t.Fatalf("quote total = %d %s", q.Total, q.Currency)
	}
	if !q.ExpiresAt.Equal(fixed.Add(DefaultValidity)) {
		t.Fatalf("expires = %v, want 30 days after save", q.ExpiresAt)
	}
	if q.Expired(fixed.Add(29 * 24 * time.Hour)) {
		t.Fatalf("quote must still be valid on day 29")
	}
	if !q.Expired(fixed.Add(31 * 24 * time.Hour)) {
		t.Fatalf("quote must be expired on day 31")
	}

	got, err := store.Quote(q.Ref)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if got.Ref != q.Ref || got.CustomerID != "CUST-1" {
		t.Fatalf("lookup returned %+v", got)
	}
}

func TestSaveQuoteRefsDistinctWithinOneSecond(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))

	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 5; i++ {
		q, err := store.SaveQuote(quoteInput("CUST-1"))
		if err != nil {
			t.Fatalf("SaveQuote() error = %v", err)
		}
		if seen[q.Ref] {
			t.Fatalf("duplicate ref %s", q.Ref)
		}
		seen[q.Ref] = true
		if q.Ref <= prev {
			t.Fatalf("refs must increase in save order: %s after %s", q.Ref, prev)
		}
		prev = q.Ref
	}
}

func TestSaveQuoteClockGoingBackwards(t *testing.T) {
	t.Parallel()

	times := []time.Time{
		time.Date(2026, 3, 2, 10, 30, 5, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 30, 1, 0, time.UTC), // clock stepped back
	}
	i := 0
	store := NewStore(WithClock(func() time.Time { t := times[i]; i++; return t }))

	first, err := store.SaveQuote(quoteInput("CUST-1"))
	if err != nil {
		t.Fatalf("SaveQuote() error = %v", err)
	}
	second, err := store.SaveQuote(quoteInput("CUST-1"))
	if err != nil {
		t.Fatalf("SaveQuote() error = %v", err)
	}
	if second.Ref <= first.Ref {
		t.Fatalf("refs must not move backwards: %s after %s", second.Ref, first.Ref)
	}
}

func TestSaveQuoteValidation(t *testing.T) {
	t.Parallel()

	store := NewStore()

	in := quoteInput("   ")
	if _, err := store.SaveQuote(in); !errors.Is(err, ErrInvalidQuote) {
		t.Fatalf("empty customer error = %v, want ErrInvalidQuote", err)
	}

	in = quoteInput("CUST-1")
	in.Breakdown.Total = 99999
	if _, err := store.SaveQuote(in); !errors.Is(err, ErrInvalidQuote) {
		t.Fatalf("mismatched breakdown error = %v, want ErrInvalidQuote", err)
	}
}

func TestQuoteHistoryMostRecentFirst(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))

	var refs []string
	for i := 0; i < 4; i++ {
		q, err := store.SaveQuote(quoteInput("CUST-1"))
		if err != nil {
			t.Fatalf("SaveQuote() error = %v", err)
		}
		refs = append(refs, q.Ref)
	}
	if _, err := store.SaveQuote(quoteInput("CUST-2")); err != nil {
		t.Fatalf("SaveQuote() error = %v", err)
	}

	history := store.QuoteHistory("CUST-1", 0)
	if len(history) != 4 {
		t.Fatalf("expected 4 quotes, got %d", len(history))
	}
	for i, q := range history {
		want := refs[len(refs)-1-i]
		if q.Ref != want {
			t.Fatalf("history[%d] = %s, want %s", i, q.Ref, want)
		}
	}

	limited := store.QuoteHistory("CUST-1", 2)
	if len(limited) != 2 || limited[0].Ref != refs[3] || limited[1].Ref != refs[2] {
		t.Fatalf("limited history wrong: %v", limited)
	}

	if empty := store.QuoteHistory("NOBODY", 10); empty == nil || len(empty) != 0 {
		t.Fatalf("unknown customer history must be an empty slice, got %#v", empty)
	}
}

func TestQuoteLookupUnknownRef(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := store.Quote("Q00000000000000-0000"); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("error = %v, want ErrQuoteNotFound", err)
	}
}

func TestSaveCustomerInfoMerges(t *testing.T) {
	t.Parallel()

	times := []time.Time{
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}
	i := 0
	store := NewStore(WithClock(func() time.Time { t := times[i]; i++; return t }))

	first, err := store.SaveCustomerInfo("CUST-1", map[string]string{
		"company":         "Acme Trading",
		"preferred_route": "Tokyo-Shanghai",
	})
	if err != nil {
		t.Fatalf("SaveCustomerInfo() error = %v", err)
	}
	if len(first.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(first.Fields))
	}

	second, err := store.SaveCustomerInfo("CUST-1", map[string]string{
		"preferred_route": "Osaka-Los Angeles",
	})
	if err != nil {
		t.Fatalf("SaveCustomerInfo() error = %v", err)
	}
	if second.Fields["preferred_route"].Value != "Osaka-Los Angeles" {
		t.Fatalf("field not overwritten: %+v", second.Fields["preferred_route"])
	}
	if second.Fields["company"].Value != "Acme Trading" {
		t.Fatalf("untouched field lost: %+v", second.Fields["company"])
	}
	if !second.Fields["preferred_route"].SavedAt.After(second.Fields["company"].SavedAt) {
		t.Fatalf("overwritten field must carry the later timestamp")
	}
}

func TestCustomerInfoDefensiveCopy(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := store.SaveCustomerInfo("CUST-1", map[string]string{"company": "Acme"}); err != nil {
		t.Fatalf("SaveCustomerInfo() error = %v", err)
	}

	profile, err := store.CustomerInfo("CUST-1")
	if err != nil {
		t.Fatalf("CustomerInfo() error = %v", err)
	}
	profile.Fields["company"] = ProfileField{Value: "Mutated"}

	again, err := store.CustomerInfo("CUST-1")
	if err != nil {
		t.Fatalf("CustomerInfo() error = %v", err)
	}
	if again.Fields["company"].Value != "Acme" {
		t.Fatalf("stored profile aliases the returned copy")
	}
}

func TestCustomerInfoUnknown(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := store.CustomerInfo("NOBODY"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("error = %v, want ErrCustomerNotFound", err)
	}
}

func TestConcurrentSaves(t *testing.T) {
	t.Parallel()

	store := NewStore()

	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		customerID := fmt.Sprintf("CUST-%d", c)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, err := store.SaveQuote(quoteInput(customerID)); err != nil {
					t.Errorf("SaveQuote(%s) error = %v", customerID, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	refs := make(map[string]bool)
	for c := 0; c < 4; c++ {
		history := store.QuoteHistory(fmt.Sprintf("CUST-%d", c), 0)
		if len(history) != 25 {
			t.Fatalf("customer %d has %d quotes, want 25", c, len(history))
		}
		for _, q := range history {
			if refs[q.Ref] {
				t.Fatalf("ref %s issued twice", q.Ref)
			}
			refs[q.Ref] = true
		}
	}
}
