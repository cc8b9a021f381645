package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	"github.com/tenyyprn/logistics-quote-agent/freight/quotes"
)

// DefaultHistoryLimit caps quote history responses unless the intent asks
// for a different window.
const DefaultHistoryLimit = 10

// QuoteManager persists quotes and customer profiles. Saving a quote binds
// to the session's pending cost result; customer operations fall back to
// the session's customer id when the intent carries none.
type QuoteManager struct {
	store *quotes.Store
}

func NewQuoteManager(store *quotes.Store) *QuoteManager {
	return &QuoteManager{store: store}
}

func (h *QuoteManager) Domain() contractx.Domain { return contractx.DomainQuote }

func (h *QuoteManager) Handle(
	ctx context.Context,
	intent contractx.Intent,
	sess *statex.ConversationState,
) (contractx.Result, contractx.StateUpdates, error) {
	switch intent.Operation {
	case contractx.OpQuoteSave:
		return h.save(intent.Parameters, sess)
	case contractx.OpQuoteHistory:
		return h.history(intent.Parameters, sess)
	case contractx.OpQuoteSaveCustomer:
		return h.saveCustomer(intent.Parameters, sess)
	case contractx.OpQuoteGetCustomer:
		return h.getCustomer(intent.Parameters, sess)
	default:
		return contractx.Result{}, contractx.StateUpdates{},
			fmt.Errorf("%w: quote operation %q", contractx.ErrUnresolvedIntent, intent.Operation)
	}
}

func (h *QuoteManager) save(params map[string]any, sess *statex.ConversationState) (contractx.Result, contractx.StateUpdates, error) {
	if sess == nil || sess.PendingQuote == nil {
		return contractx.Result{}, contractx.StateUpdates{}, contractx.ErrNoPendingQuote
	}
	customerID, err := h.customerID(params, sess)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	pq := sess.PendingQuote
	quote, err := h.store.SaveQuote(quotes.QuoteInput{
		CustomerID:  customerID,
		Origin:      pq.Origin,
		Destination: pq.Destination,
		Mode:        pq.Mode,
		WeightKg:    pq.WeightKg,
		VolumeCBM:   pq.VolumeCBM,
		Breakdown:   pq.Breakdown,
	})
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	updates := contractx.StateUpdates{
		SetCustomerID:     customerID,
		ClearPendingQuote: true,
	}
	return contractx.Result{Quote: quote}, updates, nil
}

func (h *QuoteManager) history(params map[string]any, sess *statex.ConversationState) (contractx.Result, contractx.StateUpdates, error) {
	customerID, err := h.customerID(params, sess)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	limit, err := optionalIntParam(params, "limit", DefaultHistoryLimit)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	history := h.store.QuoteHistory(customerID, limit)
	return contractx.Result{Quotes: history}, contractx.StateUpdates{}, nil
}

func (h *QuoteManager) saveCustomer(params map[string]any, sess *statex.ConversationState) (contractx.Result, contractx.StateUpdates, error) {
	customerID, err := h.customerID(params, sess)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	fields, err := stringMapParam(params, "fields")
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	profile, err := h.store.SaveCustomerInfo(customerID, fields)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Customer: profile}, contractx.StateUpdates{SetCustomerID: customerID}, nil
}

func (h *QuoteManager) getCustomer(params map[string]any, sess *statex.ConversationState) (contractx.Result, contractx.StateUpdates, error) {
	customerID, err := h.customerID(params, sess)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}

	profile, err := h.store.CustomerInfo(customerID)
	if err != nil {
		return contractx.Result{}, contractx.StateUpdates{}, err
	}
	return contractx.Result{Customer: profile}, contractx.StateUpdates{}, nil
}

// customerID resolves the acting customer: an explicit parameter wins, then
// the session's remembered id.
func (h *QuoteManager) customerID(params map[string]any, sess *statex.ConversationState) (string, error) {
	if id := optionalStringParam(params, "customer_id"); id != "" {
		return id, nil
	}
	if sess != nil && sess.CustomerID != "" {
		return sess.CustomerID, nil
	}
	return "", fmt.Errorf("%w: customer_id is required", contractx.ErrInvalidParameters)
}
