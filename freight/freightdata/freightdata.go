// Package freightdata provides read-only access to the reference dataset:
// routes, rate cards, customs regulations, and HS code records. The dataset
// is loaded once at startup and never mutated by request handling.
package freightdata

import (
	"errors"

	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

var (
	ErrRateNotFound   = errors.New("no rate card for lane")
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownHSCode  = errors.New("unknown hs code")
)

// Mode is a transport mode.
type Mode string

const (
	ModeSea Mode = "sea"
	ModeAir Mode = "air"
)

// Location identifies a port or airport.
type Location struct {
	Name    string `yaml:"name" json:"name"`
	Code    string `yaml:"code" json:"code"`
	Country string `yaml:"country" json:"country"`
}

// Route is an immutable sailing/flight lane between two locations.
type Route struct {
	ID          string   `yaml:"id" json:"id"`
	Mode        Mode     `yaml:"mode" json:"mode"`
	Origin      Location `yaml:"origin" json:"origin"`
	Destination Location `yaml:"destination" json:"destination"`
	TransitDays int      `yaml:"transit_days" json:"transit_days"`
	Frequency   string   `yaml:"frequency" json:"frequency"`
	Carriers    []string `yaml:"carriers" json:"carriers"`
	Via         string   `yaml:"via,omitempty" json:"via,omitempty"`
	Kind        string   `yaml:"kind" json:"kind"` // direct | transshipment
}

// SeaSurcharges are the named surcharges applied on top of sea base freight.
// BAF/CAF are basis points of the base; the rest are flat amounts.
type SeaSurcharges struct {
	BAFBps           int64       `yaml:"baf_bps" json:"baf_bps"`
	CAFBps           int64       `yaml:"caf_bps" json:"caf_bps"`
	THCOrigin        money.Cents `yaml:"thc_origin" json:"thc_origin"`
	THCDestination   money.Cents `yaml:"thc_destination" json:"thc_destination"`
	DocumentationFee money.Cents `yaml:"documentation_fee" json:"documentation_fee"`
	SealFee          money.Cents `yaml:"seal_fee" json:"seal_fee"` // FCL only
}

// SeaRateCard prices a country-to-country sea lane. Amounts are cents.
type SeaRateCard struct {
	Origin      string        `yaml:"origin" json:"origin"`
	Destination string        `yaml:"destination" json:"destination"`
	Per20ft     money.Cents   `yaml:"per_20ft" json:"per_20ft"`
	Per40ft     money.Cents   `yaml:"per_40ft" json:"per_40ft"`
	PerCBM      money.Cents   `yaml:"per_cbm" json:"per_cbm"`
	Surcharges  SeaSurcharges `yaml:"surcharges" json:"surcharges"`
}

// AirRateTier is one contiguous weight bracket. UpToKg is the inclusive upper
// bound; a tier with UpToKg == 0 is open-ended and must come last.
type AirRateTier struct {
	UpToKg float64     `yaml:"up_to_kg" json:"up_to_kg"`
	PerKg  money.Cents `yaml:"per_kg" json:"per_kg"`
}

// AirSurcharges are the named surcharges applied on top of air base freight.
type AirSurcharges struct {
	FuelBps       int64       `yaml:"fuel_bps" json:"fuel_bps"`
	SecurityPerKg money.Cents `yaml:"security_per_kg" json:"security_per_kg"`
	AWBFee        money.Cents `yaml:"awb_fee" json:"awb_fee"`
}

// AirRateCard prices a country-to-country air lane.
type AirRateCard struct {
	Origin      string        `yaml:"origin" json:"origin"`
	Destination string        `yaml:"destination" json:"destination"`
	MinCharge   money.Cents   `yaml:"min_charge" json:"min_charge"`
	Tiers       []AirRateTier `yaml:"tiers" json:"tiers"`
	Surcharges  AirSurcharges `yaml:"surcharges" json:"surcharges"`
}

// ExtraDocument is a destination-specific document requirement.
type ExtraDocument struct {
	Name string `yaml:"name" json:"name"`
	Note string `yaml:"note,omitempty" json:"note,omitempty"`
}

// CustomsFees are the flat per-shipment customs charges of a destination.
type CustomsFees struct {
	Documentation money.Cents `yaml:"documentation" json:"documentation"`
	Inspection    money.Cents `yaml:"inspection" json:"inspection"`
	Handling      money.Cents `yaml:"handling" json:"handling"`
}

// RegulationRecord holds a destination country's import rules.
type RegulationRecord struct {
	Country        string          `yaml:"country" json:"country"`
	Restricted     []string        `yaml:"restricted" json:"restricted"`
	Prohibited     []string        `yaml:"prohibited" json:"prohibited"`
	Documents      []string        `yaml:"documents" json:"documents"`
	ExtraDocuments []ExtraDocument `yaml:"extra_documents,omitempty" json:"extra_documents,omitempty"`
	SpecialZones   []string        `yaml:"special_zones,omitempty" json:"special_zones,omitempty"`
	VATBps         int64           `yaml:"vat_bps" json:"vat_bps"`
	CustomsFees    CustomsFees     `yaml:"customs_fees" json:"customs_fees"`
}

// TradeAgreement grants a duty discount when the destination is a member.
type TradeAgreement struct {
	Name            string   `yaml:"name" json:"name"`
	Countries       []string `yaml:"countries" json:"countries"`
	DutyDiscountBps int64    `yaml:"duty_discount_bps" json:"duty_discount_bps"`
}

// HSCodeRecord describes a 4-digit HS heading and its duty treatment.
type HSCodeRecord struct {
	Code        string           `yaml:"code" json:"code"`
	Description string           `yaml:"description" json:"description"`
	DutyBps     int64            `yaml:"duty_bps" json:"duty_bps"`
	Agreements  []TradeAgreement `yaml:"agreements,omitempty" json:"agreements,omitempty"`
}

// InsuranceTerms parameterize the landed-cost insurance estimate.
type InsuranceTerms struct {
	RateBps int64       `yaml:"rate_bps" json:"rate_bps"`
	Minimum money.Cents `yaml:"minimum" json:"minimum"`
}

// Dataset is the raw on-disk shape of the reference data.
type Dataset struct {
	Routes      []Route            `yaml:"routes"`
	SeaRates    []SeaRateCard      `yaml:"sea_rates"`
	AirRates    []AirRateCard      `yaml:"air_rates"`
	Regulations []RegulationRecord `yaml:"regulations"`
	HSCodes     []HSCodeRecord     `yaml:"hs_codes"`
	Insurance   InsuranceTerms     `yaml:"insurance"`
}
