package freightdata

import (
	"fmt"
	"strings"
)

// Provider answers exact-match lookups over a loaded Dataset. Lookup keys are
// normalized (trimmed, case-folded, whitespace-collapsed); there is no fuzzy
// matching. A Provider is immutable after construction and safe for
// concurrent use.
type Provider struct {
	routes      []Route
	seaRates    map[string]SeaRateCard
	airRates    map[string]AirRateCard
	regulations map[string]RegulationRecord
	hsCodes     map[string]HSCodeRecord
	insurance   InsuranceTerms
}

// NewProvider indexes a validated dataset.
func NewProvider(ds Dataset) (*Provider, error) {
	if err := validateDataset(ds); err != nil {
		return nil, err
	}

	p := &Provider{
		routes:      make([]Route, len(ds.Routes)),
		seaRates:    make(map[string]SeaRateCard, len(ds.SeaRates)),
		airRates:    make(map[string]AirRateCard, len(ds.AirRates)),
		regulations: make(map[string]RegulationRecord, len(ds.Regulations)),
		hsCodes:     make(map[string]HSCodeRecord, len(ds.HSCodes)),
		insurance:   ds.Insurance,
	}
	copy(p.routes, ds.Routes)

	for _, rc := range ds.SeaRates {
		p.seaRates[laneKey(rc.Origin, rc.Destination)] = rc
	}
	for _, rc := range ds.AirRates {
		p.airRates[laneKey(rc.Origin, rc.Destination)] = rc
	}
	for _, reg := range ds.Regulations {
		p.regulations[Normalize(reg.Country)] = reg
	}
	for _, hs := range ds.HSCodes {
		p.hsCodes[Normalize(hs.Code)] = hs
	}

	return p, nil
}

// FindRoutes returns every route between the given countries. An empty mode
// matches both sea and air. No match yields an empty slice, not an error.
func (p *Provider) FindRoutes(originCountry, destCountry string, mode Mode) []Route {
	origin := Normalize(originCountry)
	dest := Normalize(destCountry)

	matches := make([]Route, 0, 4)
	for _, r := range p.routes {
		if mode != "" && r.Mode != mode {
			continue
		}
		if Normalize(r.Origin.Country) != origin || Normalize(r.Destination.Country) != dest {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

// SeaRates returns the sea rate card for a country lane.
func (p *Provider) SeaRates(originCountry, destCountry string) (SeaRateCard, error) {
	rc, ok := p.seaRates[laneKey(originCountry, destCountry)]
	if !ok {
		return SeaRateCard{}, fmt.Errorf("%w: sea %s-%s", ErrRateNotFound, originCountry, destCountry)
	}
	return rc, nil
}

// AirRates returns the air rate card for a country lane.
func (p *Provider) AirRates(originCountry, destCountry string) (AirRateCard, error) {
	rc, ok := p.airRates[laneKey(originCountry, destCountry)]
	if !ok {
		return AirRateCard{}, fmt.Errorf("%w: air %s-%s", ErrRateNotFound, originCountry, destCountry)
	}
	return rc, nil
}

// Regulation returns a destination country's import rules.
func (p *Provider) Regulation(country string) (RegulationRecord, error) {
	reg, ok := p.regulations[Normalize(country)]
	if !ok {
		return RegulationRecord{}, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}
	return reg, nil
}

// HSCode resolves a code by its 4-digit heading prefix, so "847130" matches
// the "8471" record.
func (p *Provider) HSCode(code string) (HSCodeRecord, error) {
	normalized := Normalize(code)
	if len(normalized) > 4 {
		normalized = normalized[:4]
	}
	hs, ok := p.hsCodes[normalized]
	if !ok {
		return HSCodeRecord{}, fmt.Errorf("%w: %s", ErrUnknownHSCode, code)
	}
	return hs, nil
}

// Insurance returns the dataset's insurance terms.
func (p *Provider) Insurance() InsuranceTerms {
	return p.insurance
}

// Normalize folds a lookup key: trimmed, lower-cased, inner whitespace
// collapsed to single spaces.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func laneKey(origin, dest string) string {
	return Normalize(origin) + "->" + Normalize(dest)
}

func validateDataset(ds Dataset) error {
	for _, rc := range ds.SeaRates {
		if rc.Origin == "" || rc.Destination == "" {
			return fmt.Errorf("sea rate card with empty lane")
		}
		if rc.Per20ft < 0 || rc.Per40ft < 0 || rc.PerCBM < 0 {
			return fmt.Errorf("sea rate card %s-%s has negative rate", rc.Origin, rc.Destination)
		}
	}
	for _, rc := range ds.AirRates {
		if rc.Origin == "" || rc.Destination == "" {
			return fmt.Errorf("air rate card with empty lane")
		}
		if len(rc.Tiers) == 0 {
			return fmt.Errorf("air rate card %s-%s has no tiers", rc.Origin, rc.Destination)
		}
		prev := 0.0
		for i, tier := range rc.Tiers {
			open := tier.UpToKg == 0
			if open && i != len(rc.Tiers)-1 {
				return fmt.Errorf("air rate card %s-%s: open tier must be last", rc.Origin, rc.Destination)
			}
			if !open && tier.UpToKg <= prev {
				return fmt.Errorf("air rate card %s-%s: tiers must be strictly ascending", rc.Origin, rc.Destination)
			}
			if tier.PerKg < 0 {
				return fmt.Errorf("air rate card %s-%s has negative tier rate", rc.Origin, rc.Destination)
			}
			prev = tier.UpToKg
		}
		if rc.Tiers[len(rc.Tiers)-1].UpToKg != 0 {
			return fmt.Errorf("air rate card %s-%s: last tier must be open-ended", rc.Origin, rc.Destination)
		}
	}
	for _, reg := range ds.Regulations {
		if strings.TrimSpace(reg.Country) == "" {
			return fmt.Errorf("regulation record with empty country")
		}
	}
	for _, hs := range ds.HSCodes {
		if len(Normalize(hs.Code)) != 4 {
			return fmt.Errorf("hs code %q: heading must be 4 digits", hs.Code)
		}
	}
	return nil
}
