package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

// DocumentSpecialist answers document, restriction, HS code, and checklist
// questions. It is read-only: no operation touches the session state.
type DocumentSpecialist struct {
	advisor *docs.Advisor
}

func NewDocumentSpecialist(advisor *docs.Advisor) *DocumentSpecialist {
	return &DocumentSpecialist{advisor: advisor}
}

func (h *DocumentSpecialist) Domain() contractx.Domain { return contractx.DomainDoc }

func (h *DocumentSpecialist) Handle(
	ctx context.Context,
	intent contractx.Intent,
	sess *statex.ConversationState,
) (contractx.Result, contractx.StateUpdates, error) {
	switch intent.Operation {
	case contractx.OpDocDocuments:
		return h.documents(intent.Parameters)
	case contractx.OpDocRestrictions:
		return h.restrictions(intent.Parameters)
	case contractx.OpDocHSCode:
		return h.hsCode(intent.Parameters)
	case contractx.OpDocChecklist:
		return h.checklist(intent.Parameters)
	default:
		return contractx.Result{}, contractx.StateUpdates{},
			fmt.Errorf("%w: doc operation %q", contractx.ErrUnresolvedIntent, intent.Operation)
	}
}

func (h *DocumentSpecialist) documents(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	mode, err := requireModeParam(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	documents, err := h.advisor.RequiredDocuments(destination, mode)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Documents: documents}, contractx.StateUpdates{}, nil
}

func (h *DocumentSpecialist) restrictions(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	category, err := stringParam(params, "item_category")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	report, err := h.advisor.CheckRestrictions(destination, category)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Restrictions: &report}, contractx.StateUpdates{}, nil
}

func (h *DocumentSpecialist) hsCode(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	code, err := stringParam(params, "hs_code")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	info, err := h.advisor.HSCodeInfo(code)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{HSCode: &info}, contractx.StateUpdates{}, nil
}

func (h *DocumentSpecialist) checklist(params map[string]any) (contractx.Result, contractx.StateUpdates, error) {
	destination, err := stringParam(params, "destination")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	category, err := stringParam(params, "item_category")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	mode, err := requireModeParam(params)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	checklist, err := h.advisor.Checklist(destination, category, mode)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Checklist: checklist}, contractx.StateUpdates{}, nil
}

// requireModeParam reads "mode" with sea as the default.
func requireModeParam(params map[string]any) (freightdata.Mode, error) {
	mode, err := parseModeParam(params)
	if err != nil {
		return "", err
	}
	if mode == "" {
		mode = freightdata.ModeSea
	}
	return mode, nil
}
