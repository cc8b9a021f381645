package handlers

import (
	"testing"
	"time"

	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

var handlerTestTime = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func fixedHandlerClock() time.Time { return handlerTestTime }

func testProvider(t *testing.T) *freightdata.Provider {
	t.Helper()
	data, err := freightdata.Default()
	if err != nil {
		t.Fatalf("load default dataset: %v", err)
	}
	return data
}

func testEngine(t *testing.T) *costx.Engine {
	t.Helper()
	return costx.NewEngine(testProvider(t))
}

func testAdvisor(t *testing.T) *docs.Advisor {
	t.Helper()
	return docs.NewAdvisor(testProvider(t)).WithClock(fixedHandlerClock)
}

func testSession(customerID string) *statex.ConversationState {
	return statex.NewConversationState("sess-1", customerID, handlerTestTime)
}

func sessionWithPendingQuote(customerID string) *statex.ConversationState {
	sess := testSession(customerID)
	sess.SetPendingQuote(&statex.PendingQuote{
		Origin:      "Japan",
		Destination: "China",
		Mode:        freightdata.ModeSea,
		WeightKg:    500,
		VolumeCBM:   2,
		Breakdown: costx.Breakdown{
			Mode:        freightdata.ModeSea,
			Origin:      "Japan",
			Destination: "China",
			Currency:    costx.Currency,
			Pricing:     costx.PricingLCL,
			ActualKg:    500,
			VolumeCBM:   2,
			Base:        money.Cents(9000),
			Surcharges: []costx.LineItem{
				{Code: "BAF", Label: "Bunker adjustment factor", Amount: 1350},
				{Code: "CAF", Label: "Currency adjustment factor", Amount: 450},
				{Code: "THC", Label: "Terminal handling", Amount: 33000},
			},
			Total: money.Cents(43800),
		},
		ComputedAt: handlerTestTime,
	})
	return sess
}
