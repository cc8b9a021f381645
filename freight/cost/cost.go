// Package cost implements the freight cost calculation engine: sea and air
// pricing, total landed cost, and side-by-side option comparison. All
// computations are pure with respect to the reference dataset and produce
// itemized breakdowns whose components sum exactly to their totals.
package cost

import (
	"errors"

	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

var (
	ErrNoRateAvailable = errors.New("no rate available for route")
	ErrInvalidCargo    = errors.New("invalid cargo parameters")
)

// Currency is the quoting currency of the reference dataset.
const Currency = "USD"

// Pricing identifies how sea base freight was derived.
type Pricing string

const (
	PricingLCL   Pricing = "LCL"
	PricingFCL20 Pricing = "FCL-20ft"
	PricingFCL40 Pricing = "FCL-40ft"
	PricingPerKg Pricing = "per-kg"
)

// Container working capacities used to round cargo up to whole containers.
const (
	cap20CBM = 25.0
	cap40CBM = 55.0
	cap20Kg  = 21700.0
	cap40Kg  = 26500.0
)

// Volumetric divisor for air cargo: chargeable kg = cm3 / 6000.
const volumetricDivisor = 6000.0

// LineItem is one named component of a breakdown.
type LineItem struct {
	Code   string      `json:"code"`
	Label  string      `json:"label"`
	Amount money.Cents `json:"amount"`
}

// Breakdown is an itemized freight cost. Base plus the sum of Surcharges
// always equals Total.
type Breakdown struct {
	Mode        freightdata.Mode `json:"mode"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Currency    string           `json:"currency"`

	Pricing    Pricing `json:"pricing"`
	Containers int     `json:"containers,omitempty"`

	ActualKg     float64 `json:"actual_kg"`
	VolumeCBM    float64 `json:"volume_cbm"`
	ChargeableKg float64 `json:"chargeable_kg,omitempty"`

	Base       money.Cents `json:"base"`
	Surcharges []LineItem  `json:"surcharges"`
	Total      money.Cents `json:"total"`
}

// ComponentSum re-adds base and surcharges; it must equal Total.
func (b Breakdown) ComponentSum() money.Cents {
	sum := b.Base
	for _, item := range b.Surcharges {
		sum += item.Amount
	}
	return sum
}

// LandedInput parameterizes a total landed cost calculation.
type LandedInput struct {
	Freight            Breakdown
	GoodsValue         money.Cents
	HSCode             string
	DestinationCountry string
}

// LandedBreakdown itemizes everything paid on top of the goods themselves:
// freight, insurance, duty, VAT, and customs fees. Total is the exact sum of
// Items; GoodsValue and CIF are reported for reference.
type LandedBreakdown struct {
	DestinationCountry string `json:"destination_country"`
	HSCode             string `json:"hs_code"`
	Currency           string `json:"currency"`

	GoodsValue money.Cents `json:"goods_value"`
	CIF        money.Cents `json:"cif"`

	DutyRateBps      int64  `json:"duty_rate_bps"`
	VATRateBps       int64  `json:"vat_rate_bps"`
	AppliedAgreement string `json:"applied_agreement,omitempty"`

	Items []LineItem  `json:"items"`
	Total money.Cents `json:"total"`
}

// ComponentSum re-adds the items; it must equal Total.
func (l LandedBreakdown) ComponentSum() money.Cents {
	var sum money.Cents
	for _, item := range l.Items {
		sum += item.Amount
	}
	return sum
}

// CompareInput parameterizes a sea-versus-air comparison.
type CompareInput struct {
	Origin      string
	Destination string
	WeightKg    float64
	VolumeCBM   float64
	Urgent      bool
}

// Comparison holds both priced options and a recommendation.
type Comparison struct {
	Sea Breakdown `json:"sea"`
	Air Breakdown `json:"air"`

	SeaTransitDays int `json:"sea_transit_days,omitempty"`
	AirTransitDays int `json:"air_transit_days,omitempty"`

	Recommended freightdata.Mode `json:"recommended"`
	Savings     money.Cents      `json:"savings"`
	Urgent      bool             `json:"urgent"`
}

// Urgency grades how time-sensitive a shipment is.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyNormal  Urgency = "normal"
	UrgencyEconomy Urgency = "economy"
)

// Recommendation is the outcome of a transport-mode recommendation.
type Recommendation struct {
	Mode      freightdata.Mode `json:"mode"`
	Container string           `json:"container,omitempty"`
	Reasons   []string         `json:"reasons"`
}
