// Package quotes is the persistence layer for generated quotes and customer
// profiles: reference-number issuance, quote history, and preference storage.
// The baseline keeps everything in process memory behind a RWMutex; the
// contract is unchanged if a durable backend replaces it.
package quotes

import (
	"errors"
	"time"

	"github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidQuote     = errors.New("invalid quote input")
)

// DefaultValidity is how long a saved quote stays quotable.
const DefaultValidity = 30 * 24 * time.Hour

// QuoteInput is the computed cost result being persisted.
type QuoteInput struct {
	CustomerID  string
	Origin      string
	Destination string
	Mode        freightdata.Mode
	WeightKg    float64
	VolumeCBM   float64
	Breakdown   cost.Breakdown
}

// Quote is an immutable stored quote.
type Quote struct {
	Ref         string           `json:"ref"`
	CustomerID  string           `json:"customer_id"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Mode        freightdata.Mode `json:"mode"`
	WeightKg    float64          `json:"weight_kg"`
	VolumeCBM   float64          `json:"volume_cbm"`
	Breakdown   cost.Breakdown   `json:"breakdown"`
	Currency    string           `json:"currency"`
	Total       money.Cents      `json:"total"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Expired reports whether the quote's validity window has passed.
func (q *Quote) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}

// ProfileField is one stored customer preference value.
type ProfileField struct {
	Value   string    `json:"value"`
	SavedAt time.Time `json:"saved_at"`
}

// CustomerProfile is the stored per-customer preference set. Fields merge
// last-write-wins; a profile is never destroyed automatically.
type CustomerProfile struct {
	CustomerID string                  `json:"customer_id"`
	Fields     map[string]ProfileField `json:"fields"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func (p *CustomerProfile) clone() *CustomerProfile {
	out := &CustomerProfile{
		CustomerID: p.CustomerID,
		Fields:     make(map[string]ProfileField, len(p.Fields)),
		UpdatedAt:  p.UpdatedAt,
	}
	for k, v := range p.Fields {
		out.Fields[k] = v
	}
	return out
}
