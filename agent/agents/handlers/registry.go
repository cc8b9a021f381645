package handlers

import (
	"errors"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/quotes"
)

// Registry bundles the four specialists over shared freight components.
type Registry struct {
	route *RoutePlanner
	cost  *CostAnalyst
	doc   *DocumentSpecialist
	quote *QuoteManager
}

var _ contractx.Registry = (*Registry)(nil)

func NewRegistry(
	data *freightdata.Provider,
	engine *costx.Engine,
	advisor *docs.Advisor,
	store *quotes.Store,
) (*Registry, error) {
	if data == nil {
		return nil, errors.New("freight data provider is required")
	}
	if engine == nil {
		return nil, errors.New("cost engine is required")
	}
	if advisor == nil {
		return nil, errors.New("document advisor is required")
	}
	if store == nil {
		return nil, errors.New("quote store is required")
	}

	return &Registry{
		route: NewRoutePlanner(data, engine),
		cost:  NewCostAnalyst(engine),
		doc:   NewDocumentSpecialist(advisor),
		quote: NewQuoteManager(store),
	}, nil
}

func (r *Registry) RoutePlanner() contractx.Handler       { return r.route }
func (r *Registry) CostAnalyst() contractx.Handler        { return r.cost }
func (r *Registry) DocumentSpecialist() contractx.Handler { return r.doc }
func (r *Registry) QuoteManager() contractx.Handler       { return r.quote }
