package state

import (
	"testing"
	"time"

	"github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

func pendingQuoteFixture() *PendingQuote {
	return &PendingQuote{
		Origin:      "Shanghai",
		Destination: "Bangkok",
		Mode:        freightdata.ModeSea,
		WeightKg:    500,
		VolumeCBM:   2,
		Breakdown: cost.Breakdown{
			Mode:        freightdata.ModeSea,
			Origin:      "Shanghai",
			Destination: "Bangkok",
			Currency:    cost.Currency,
			Base:        9000,
			Surcharges: []cost.LineItem{
				{Code: "BAF", Label: "Bunker adjustment", Amount: 1350},
				{Code: "CAF", Label: "Currency adjustment", Amount: 450},
			},
			Total: 10800,
		},
		ComputedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestConversationStateValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	st := NewConversationState("s1", "CUST-1", now)
	if err := st.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	st.SetPendingQuote(pendingQuoteFixture())
	if err := st.Validate(); err != nil {
		t.Fatalf("Validate() with pending quote error = %v", err)
	}

	st.PendingQuote.Breakdown.Total = 9999
	if err := st.Validate(); err == nil {
		t.Fatalf("expected error for breakdown that does not sum to total")
	}

	var nilState *ConversationState
	if err := nilState.Validate(); err == nil {
		t.Fatalf("expected error for nil state")
	}

	empty := &ConversationState{SessionID: "  "}
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestConversationStateCloneIsDeep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	st := NewConversationState("s1", "CUST-1", now)
	st.SetPendingQuote(pendingQuoteFixture())

	cl := st.Clone()
	cl.CustomerID = "CUST-2"
	cl.PendingQuote.Breakdown.Surcharges[0].Amount = 1

	if st.CustomerID != "CUST-1" {
		t.Fatalf("clone must not share scalar fields")
	}
	if st.PendingQuote.Breakdown.Surcharges[0].Amount != 1350 {
		t.Fatalf("clone must not share the surcharge slice")
	}
}

func TestConversationStatePendingQuoteLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	st := NewConversationState("s1", "", now)

	st.SetPendingQuote(pendingQuoteFixture())
	if st.PendingQuote == nil {
		t.Fatalf("pending quote not set")
	}

	st.ClearPendingQuote()
	if st.PendingQuote != nil {
		t.Fatalf("pending quote not cleared")
	}

	later := now.Add(time.Minute)
	st.Touch(later)
	if !st.UpdatedAt.Equal(later) {
		t.Fatalf("Touch() did not bump UpdatedAt")
	}
}
