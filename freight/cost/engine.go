package cost

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

// Engine computes freight costs against a reference dataset provider.
type Engine struct {
	data *freightdata.Provider
}

// NewEngine wraps a dataset provider.
func NewEngine(data *freightdata.Provider) *Engine {
	return &Engine{data: data}
}

// SeaCost prices sea freight for a country lane. It prices the cargo as LCL
// (revenue tons x per-CBM rate) and as FCL in both container sizes (rounded
// up to whole containers by volume and payload capacity), keeps the cheapest,
// then adds BAF, CAF, THC, documentation fee, and a seal fee for FCL.
func (e *Engine) SeaCost(origin, destination string, weightKg, volumeCBM float64) (Breakdown, error) {
	if err := validateCargo(weightKg, volumeCBM); err != nil {
		return Breakdown{}, err
	}

	rc, err := e.data.SeaRates(origin, destination)
	if err != nil {
		return Breakdown{}, fmt.Errorf("%w: sea %s-%s", ErrNoRateAvailable, origin, destination)
	}

	// Revenue tons: a CBM or 1000 kg, whichever charges more.
	chargeableCBM := math.Max(volumeCBM, weightKg/1000)
	base := money.MulFloat(rc.PerCBM, chargeableCBM)
	pricing := PricingLCL
	containers := 0

	if n := containersFor(weightKg, volumeCBM, cap20Kg, cap20CBM); rc.Per20ft > 0 {
		if fcl := rc.Per20ft * money.Cents(n); fcl < base {
			base, pricing, containers = fcl, PricingFCL20, n
		}
	}
	if n := containersFor(weightKg, volumeCBM, cap40Kg, cap40CBM); rc.Per40ft > 0 {
		if fcl := rc.Per40ft * money.Cents(n); fcl < base {
			base, pricing, containers = fcl, PricingFCL40, n
		}
	}

	items := []LineItem{
		{Code: "BAF", Label: "Bunker adjustment factor", Amount: money.PercentOf(base, rc.Surcharges.BAFBps)},
		{Code: "CAF", Label: "Currency adjustment factor", Amount: money.PercentOf(base, rc.Surcharges.CAFBps)},
		{Code: "THC", Label: "Terminal handling (origin + destination)", Amount: rc.Surcharges.THCOrigin + rc.Surcharges.THCDestination},
	}
	if rc.Surcharges.DocumentationFee > 0 {
		items = append(items, LineItem{Code: "DOC", Label: "Documentation fee", Amount: rc.Surcharges.DocumentationFee})
	}
	if pricing != PricingLCL && rc.Surcharges.SealFee > 0 {
		items = append(items, LineItem{Code: "SEAL", Label: "Container seal fee", Amount: rc.Surcharges.SealFee})
	}

	b := Breakdown{
		Mode:        freightdata.ModeSea,
		Origin:      origin,
		Destination: destination,
		Currency:    Currency,
		Pricing:     pricing,
		Containers:  containers,
		ActualKg:    weightKg,
		VolumeCBM:   volumeCBM,
		Base:        base,
		Surcharges:  items,
	}
	b.Total = b.ComponentSum()

	log.Debug().
		Str("lane", origin+"-"+destination).
		Str("pricing", string(pricing)).
		Int64("total_cents", int64(b.Total)).
		Msg("sea freight priced")
	return b, nil
}

// AirCost prices air freight for a country lane. Chargeable weight is the
// greater of actual and volumetric weight; the rate tier is the first tier
// whose inclusive upper bound covers the chargeable weight, so a weight that
// sits exactly on a boundary takes the lower tier's rate.
func (e *Engine) AirCost(origin, destination string, weightKg, volumeCBM float64) (Breakdown, error) {
	if weightKg <= 0 || volumeCBM < 0 || math.IsNaN(weightKg) || math.IsNaN(volumeCBM) {
		return Breakdown{}, fmt.Errorf("%w: weight=%v volume=%v", ErrInvalidCargo, weightKg, volumeCBM)
	}

	rc, err := e.data.AirRates(origin, destination)
	if err != nil {
		return Breakdown{}, fmt.Errorf("%w: air %s-%s", ErrNoRateAvailable, origin, destination)
	}

	volumetricKg := volumeCBM * 1_000_000 / volumetricDivisor
	chargeableKg := math.Max(weightKg, volumetricKg)

	tier := rc.Tiers[len(rc.Tiers)-1]
	for _, t := range rc.Tiers {
		if t.UpToKg > 0 && chargeableKg <= t.UpToKg {
			tier = t
			break
		}
	}

	base := money.Max(money.MulFloat(tier.PerKg, chargeableKg), rc.MinCharge)
	items := []LineItem{
		{Code: "FUEL", Label: "Fuel surcharge", Amount: money.PercentOf(base, rc.Surcharges.FuelBps)},
		{Code: "SEC", Label: "Security surcharge", Amount: money.MulFloat(rc.Surcharges.SecurityPerKg, chargeableKg)},
		{Code: "AWB", Label: "Air waybill fee", Amount: rc.Surcharges.AWBFee},
	}

	b := Breakdown{
		Mode:         freightdata.ModeAir,
		Origin:       origin,
		Destination:  destination,
		Currency:     Currency,
		Pricing:      PricingPerKg,
		ActualKg:     weightKg,
		VolumeCBM:    volumeCBM,
		ChargeableKg: chargeableKg,
		Base:         base,
		Surcharges:   items,
	}
	b.Total = b.ComponentSum()

	log.Debug().
		Str("lane", origin+"-"+destination).
		Float64("chargeable_kg", chargeableKg).
		Int64("total_cents", int64(b.Total)).
		Msg("air freight priced")
	return b, nil
}

// LandedCost computes everything paid beyond the goods themselves: freight,
// insurance, duty (with any trade-agreement discount the destination
// qualifies for), VAT, and customs fees. It performs no state changes, so a
// failed lookup leaves nothing behind.
func (e *Engine) LandedCost(in LandedInput) (LandedBreakdown, error) {
	if in.GoodsValue < 0 {
		return LandedBreakdown{}, fmt.Errorf("%w: goods value is negative", ErrInvalidCargo)
	}

	reg, err := e.data.Regulation(in.DestinationCountry)
	if err != nil {
		return LandedBreakdown{}, err
	}
	hs, err := e.data.HSCode(in.HSCode)
	if err != nil {
		return LandedBreakdown{}, err
	}

	dutyBps := hs.DutyBps
	applied := ""
	for _, agreement := range hs.Agreements {
		if !coversCountry(agreement.Countries, in.DestinationCountry) {
			continue
		}
		dutyBps -= agreement.DutyDiscountBps
		applied = agreement.Name
		break
	}
	if dutyBps < 0 {
		dutyBps = 0
	}

	duty := money.PercentOf(in.GoodsValue, dutyBps)
	vat := money.PercentOf(in.GoodsValue+duty, reg.VATBps)

	terms := e.data.Insurance()
	insurable := in.GoodsValue + money.PercentOf(in.GoodsValue, 1000) // CIF basis: value + 10%
	insurance := money.Max(money.PercentOf(insurable, terms.RateBps), terms.Minimum)

	items := []LineItem{
		{Code: "FRT", Label: "Freight", Amount: in.Freight.Total},
		{Code: "INS", Label: "Insurance", Amount: insurance},
		{Code: "DUTY", Label: "Import duty", Amount: duty},
		{Code: "VAT", Label: "VAT / import tax", Amount: vat},
		{Code: "CUST-DOC", Label: "Customs documentation", Amount: reg.CustomsFees.Documentation},
		{Code: "CUST-INSP", Label: "Customs inspection", Amount: reg.CustomsFees.Inspection},
		{Code: "CUST-HDL", Label: "Customs handling", Amount: reg.CustomsFees.Handling},
	}

	l := LandedBreakdown{
		DestinationCountry: in.DestinationCountry,
		HSCode:             in.HSCode,
		Currency:           Currency,
		GoodsValue:         in.GoodsValue,
		CIF:                in.GoodsValue + in.Freight.Total + insurance,
		DutyRateBps:        dutyBps,
		VATRateBps:         reg.VATBps,
		AppliedAgreement:   applied,
		Items:              items,
	}
	l.Total = l.ComponentSum()
	return l, nil
}

// Compare prices both modes for the same cargo and recommends one. The rule
// is fixed: air wins when the shipment is urgent or when air is strictly
// cheaper than sea; every other case, including a tie, recommends sea.
func (e *Engine) Compare(in CompareInput) (Comparison, error) {
	sea, err := e.SeaCost(in.Origin, in.Destination, in.WeightKg, in.VolumeCBM)
	if err != nil {
		return Comparison{}, err
	}
	air, err := e.AirCost(in.Origin, in.Destination, in.WeightKg, in.VolumeCBM)
	if err != nil {
		return Comparison{}, err
	}

	recommended := freightdata.ModeSea
	if in.Urgent || air.Total < sea.Total {
		recommended = freightdata.ModeAir
	}

	savings := sea.Total - air.Total
	if savings < 0 {
		savings = -savings
	}

	return Comparison{
		Sea:            sea,
		Air:            air,
		SeaTransitDays: e.fastestTransit(in.Origin, in.Destination, freightdata.ModeSea),
		AirTransitDays: e.fastestTransit(in.Origin, in.Destination, freightdata.ModeAir),
		Recommended:    recommended,
		Savings:        savings,
		Urgent:         in.Urgent,
	}, nil
}

// RecommendMode suggests a transport mode from cargo size and urgency alone,
// without pricing: air for urgent or small cargo (at most 300 kg and 1 CBM),
// sea otherwise, with container sizing LCL below 15 CBM, 20ft up to 25 CBM,
// 40ft above.
func (e *Engine) RecommendMode(weightKg, volumeCBM float64, urgency Urgency) (Recommendation, error) {
	if err := validateCargo(weightKg, volumeCBM); err != nil {
		return Recommendation{}, err
	}

	if urgency == UrgencyUrgent {
		return Recommendation{
			Mode:    freightdata.ModeAir,
			Reasons: []string{"fastest delivery for urgent cargo"},
		}, nil
	}
	if weightKg <= 300 && volumeCBM <= 1 && urgency != UrgencyEconomy {
		return Recommendation{
			Mode:    freightdata.ModeAir,
			Reasons: []string{"cost-effective for small cargo"},
		}, nil
	}

	container := "LCL"
	switch {
	case volumeCBM < 15:
		container = "LCL"
	case volumeCBM <= cap20CBM:
		container = "FCL 20ft"
	default:
		container = "FCL 40ft"
	}

	reason := "good balance of cost and transit time"
	if urgency == UrgencyEconomy || weightKg > 300 {
		reason = "most economical option"
	}
	return Recommendation{
		Mode:      freightdata.ModeSea,
		Container: container,
		Reasons:   []string{reason},
	}, nil
}

func (e *Engine) fastestTransit(origin, destination string, mode freightdata.Mode) int {
	fastest := 0
	for _, r := range e.data.FindRoutes(origin, destination, mode) {
		if fastest == 0 || r.TransitDays < fastest {
			fastest = r.TransitDays
		}
	}
	return fastest
}

func containersFor(weightKg, volumeCBM, capKg, capCBM float64) int {
	n := int(math.Ceil(volumeCBM / capCBM))
	if byWeight := int(math.Ceil(weightKg / capKg)); byWeight > n {
		n = byWeight
	}
	if n < 1 {
		n = 1
	}
	return n
}

func coversCountry(countries []string, country string) bool {
	want := freightdata.Normalize(country)
	for _, c := range countries {
		if freightdata.Normalize(c) == want {
			return true
		}
	}
	return false
}

func validateCargo(weightKg, volumeCBM float64) error {
	if weightKg <= 0 || volumeCBM <= 0 || math.IsNaN(weightKg) || math.IsNaN(volumeCBM) {
		return fmt.Errorf("%w: weight=%v volume=%v", ErrInvalidCargo, weightKg, volumeCBM)
	}
	return nil
}
