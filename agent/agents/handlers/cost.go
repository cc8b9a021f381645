package handlers

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

// CostAnalyst prices shipments. Successful sea and air calculations publish
// the result as the session's pending quote so a later "save this quote"
// turn can bind to it.
type CostAnalyst struct {
	engine *costx.Engine

	now func() time.Time
}

func NewCostAnalyst(engine *costx.Engine) *CostAnalyst {
	return &CostAnalyst{engine: engine, now: time.Now}
}

// WithClock overrides the timestamp source for pending quotes.
func (h *CostAnalyst) WithClock(now func() time.Time) *CostAnalyst {
	if now != nil {
		h.now = now
	}
	return h
}

func (h *CostAnalyst) Domain() contractx.Domain { return contractx.DomainCost }

func (h *CostAnalyst) Handle(
	ctx context.Context,
	intent contractx.Intent,
	sess *statex.ConversationState,
) (contractx.Result, contractx.StateUpdates, error) {
	switch intent.Operation {
	case contractx.OpCostSea:
		return h.freight(intent.Parameters, freightdata.ModeSea)
	case contractx.OpCostAir:
		return h.freight(intent.Parameters, freightdata.ModeAir)
	case contractx.OpCostLanded:
		return h.landed(intent.Parameters, sess)
	case contractx.OpCostCompare:
		return h.compare(intent.Parameters)
	default:
		return contractx.Result{}, contractx.StateUpdates{},
			fmt.Errorf("%w: cost operation %q", contractx.ErrUnresolvedIntent, intent.Operation)
	}
}

func (h *CostAnalyst) freight(params map[string]any, mode freightdata.Mode) (contractx.Result, contractx.StateUpdates, error) {
	origin, err := stringParam(params, "origin")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	weightKg, volumeCBM, err := cargoParams(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	var breakdown costx.Breakdown
	switch mode {
	case freightdata.ModeSea:
		breakdown, err = h.engine.SeaCost(origin, destination, weightKg, volumeCBM)
	case freightdata.ModeAir:
		breakdown, err = h.engine.AirCost(origin, destination, weightKg, volumeCBM)
	}
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	updates := contractx.StateUpdates{
		SetPendingQuote: &statex.PendingQuote{
			Origin:      origin,
			Destination: destination,
			Mode:        mode,
			WeightKg:    weightKg,
			VolumeCBM:   volumeCBM,
			Breakdown:   breakdown,
			ComputedAt:  h.now().UTC(),
		},
	}
	return contractx.Result{Cost: &breakdown}, updates, nil
}

// landed computes total landed cost. Freight comes from an explicit
// "freight_cost" dollar parameter when present, otherwise from the session's
// pending quote.
func (h *CostAnalyst) landed(params map[string]any, sess *statex.ConversationState) (contractx.Result, contractx.StateUpdates, error) {
	goodsValue, err := dollarsParam(params, "goods_value")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	hsCode, err := stringParam(params, "hs_code")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	freight, err := h.landedFreight(params, destination, sess)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	landed, err := h.engine.LandedCost(costx.LandedInput{
		Freight:            freight,
		GoodsValue:         goodsValue,
		HSCode:             hsCode,
		DestinationCountry: destination,
	})
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Landed: &landed}, contractx.StateUpdates{}, nil
}

func (h *CostAnalyst) landedFreight(params map[string]any, destination string, sess *statex.ConversationState) (costx.Breakdown, error) {
	if dollars, ok, err := optionalFloatParam(params, "freight_cost"); err != nil {
		return costx.Breakdown{}, err
	} else if ok {
		if dollars < 0 {
			return costx.Breakdown{}, fmt.Errorf("%w: freight_cost must not be negative", contractx.ErrInvalidParameters)
		}
		total := money.MulFloat(money.Cents(100), dollars)
		return costx.Breakdown{
			Destination: destination,
			Currency:    costx.Currency,
			Base:        total,
			Total:       total,
		}, nil
	}

	if sess != nil && sess.PendingQuote != nil {
		return sess.PendingQuote.Breakdown, nil
	}
	return costx.Breakdown{}, fmt.Errorf("%w: landed cost needs freight_cost or a prior calculation", contractx.ErrNoPendingQuote)
}

func (h *CostAnalyst) compare(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	origin, err := stringParam(params, "origin")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	weightKg, volumeCBM, err := cargoParams(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	cmp, err := h.engine.Compare(costx.CompareInput{
		Origin:      origin,
		Destination: destination,
		WeightKg:    weightKg,
		VolumeCBM:   volumeCBM,
		Urgent:      optionalBoolParam(params, "urgent"),
	})
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Comparison: &cmp}, contractx.StateUpdates{}, nil
}
