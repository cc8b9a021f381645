package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

// RoutePlanner answers route searches and transport-mode recommendations.
type RoutePlanner struct {
	data   *freightdata.Provider
	engine *costx.Engine
}

func NewRoutePlanner(data *freightdata.Provider, engine *costx.Engine) *RoutePlanner {
	return &RoutePlanner{data: data, engine: engine}
}

func (h *RoutePlanner) Domain() contractx.Domain { return contractx.DomainRoute }

func (h *RoutePlanner) Handle(
	ctx context.Context,
	intent contractx.Intent,
	sess *statex.ConversationState,
) (contractx.Result, contractx.StateUpdates, error) {
	switch intent.Operation {
	case contractx.OpRouteSearch:
		return h.search(intent.Parameters)
	case contractx.OpRouteRecommend:
		return h.recommend(intent.Parameters)
	default:
		return contractx.Result{}, contractx.StateUpdates{},
			fmt.Errorf("%w: route operation %q", contractx.ErrUnresolvedIntent, intent.Operation)
	}
}

func (h *RoutePlanner) search(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	origin, err := stringParam(params, "origin")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	mode, err := parseModeParam(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	routes := h.data.FindRoutes(origin, destination, mode)
	return contractx.Result{Routes: routes}, contractx.StateUpdates{}, nil
}

func (h *RoutePlanner) recommend(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	weightKg, volumeCBM, err := cargoParams(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	urgency, err := parseUrgencyParam(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	rec, err := h.engine.RecommendMode(weightKg, volumeCBM, urgency)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Recommendation: &rec}, contractx.StateUpdates{}, nil
}

// parseModeParam reads the optional "mode" parameter; empty means both modes.
func parseModeParam(params map[string]any) (freightdata.Mode, error) {
	raw := optionalStringParam(params, "mode")
	switch freightdata.Mode(raw) {
	case "", freightdata.ModeSea, freightdata.ModeAir:
		return freightdata.Mode(raw), nil
	default:
		return "", fmt.Errorf("%w: mode must be sea or air", contractx.ErrInvalidParameters)
	}
}

func parseUrgencyParam(params map[string]any) (costx.Urgency, error) {
	raw := optionalStringParam(params, "urgency")
	switch costx.Urgency(raw) {
	case "":
		return costx.UrgencyNormal, nil
	case costx.UrgencyUrgent, costx.UrgencyNormal, costx.UrgencyEconomy:
		return costx.Urgency(raw), nil
	default:
		return "", fmt.Errorf("%w: urgency must be urgent, normal, or economy", contractx.ErrInvalidParameters)
	}
}
