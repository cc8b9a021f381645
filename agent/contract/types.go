package contract

import (
	"strings"

	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/quotes"
)

// Domain is one of the four capability domains a turn can be routed to.
type Domain string

const (
	DomainRoute Domain = "route"
	DomainCost  Domain = "cost"
	DomainDoc   Domain = "doc"
	DomainQuote Domain = "quote"
)

// ParseDomain normalizes a classifier-provided domain string. The boolean is
// false for anything outside the four routable domains.
func ParseDomain(s string) (Domain, bool) {
	switch Domain(strings.ToLower(strings.TrimSpace(s))) {
	case DomainRoute:
		return DomainRoute, true
	case DomainCost:
		return DomainCost, true
	case DomainDoc:
		return DomainDoc, true
	case DomainQuote:
		return DomainQuote, true
	default:
		return "", false
	}
}

// Operations per domain. The registry's handlers reject anything else with
// ErrUnresolvedIntent.
const (
	OpRouteSearch    = "search"
	OpRouteRecommend = "recommend"

	OpCostSea     = "sea"
	OpCostAir     = "air"
	OpCostLanded  = "landed"
	OpCostCompare = "compare"

	OpDocDocuments    = "documents"
	OpDocRestrictions = "restrictions"
	OpDocHSCode       = "hscode"
	OpDocChecklist    = "checklist"

	OpQuoteSave         = "save"
	OpQuoteHistory      = "history"
	OpQuoteSaveCustomer = "save_customer"
	OpQuoteGetCustomer  = "get_customer"
)

// Intent is the structured request produced by the external
// language-understanding collaborator. The core never parses free text.
type Intent struct {
	Domain     Domain         `json:"domain"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters,omitempty"`
	RawText    string         `json:"raw_text,omitempty"`
}

// Result is the structured outcome of one dispatched turn. Exactly the
// fields relevant to the resolved operation are populated; the collaborator
// renders them into natural language.
type Result struct {
	Domain    Domain `json:"domain"`
	Operation string `json:"operation"`

	Routes         []freightdata.Route   `json:"routes,omitempty"`
	Recommendation *costx.Recommendation `json:"recommendation,omitempty"`

	Cost       *costx.Breakdown       `json:"cost,omitempty"`
	Landed     *costx.LandedBreakdown `json:"landed,omitempty"`
	Comparison *costx.Comparison      `json:"comparison,omitempty"`

	Documents    []docs.Document         `json:"documents,omitempty"`
	Restrictions *docs.RestrictionReport `json:"restrictions,omitempty"`
	HSCode       *docs.HSCodeInfo        `json:"hs_code,omitempty"`
	Checklist    []docs.ChecklistItem    `json:"checklist,omitempty"`

	Quote    *quotes.Quote           `json:"quote,omitempty"`
	Quotes   []*quotes.Quote         `json:"quotes,omitempty"`
	Customer *quotes.CustomerProfile `json:"customer,omitempty"`
}

// StateUpdates is what a handler asks the dispatcher to fold into the
// session state after a successful turn.
type StateUpdates struct {
	SetCustomerID     string               `json:"set_customer_id,omitempty"`
	SetPendingQuote   *statex.PendingQuote `json:"set_pending_quote,omitempty"`
	ClearPendingQuote bool                 `json:"clear_pending_quote,omitempty"`
}
