// Package docs implements the document and regulation advisor: required
// shipping documents, import restriction checks, HS code lookups, and
// shipping preparation checklists. All functions are read-only over the
// reference dataset; an unknown lookup key is an error, never a silently
// empty result.
package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

// RestrictionStatus classifies an item category for a destination.
type RestrictionStatus string

const (
	StatusAllowed    RestrictionStatus = "allowed"
	StatusRestricted RestrictionStatus = "restricted"
	StatusProhibited RestrictionStatus = "prohibited"
)

// Document is one required shipping document.
type Document struct {
	Name    string `json:"name"`
	Copies  string `json:"copies"`
	Purpose string `json:"purpose"`
}

// RestrictionReport is the outcome of a restriction check.
type RestrictionReport struct {
	Country      string            `json:"country"`
	ItemCategory string            `json:"item_category"`
	Status       RestrictionStatus `json:"status"`
	Reason       string            `json:"reason"`
	SpecialZones []string          `json:"special_zones,omitempty"`
}

// HSCodeInfo is the advisor view of an HS heading.
type HSCodeInfo struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	DutyBps     int64    `json:"duty_bps"`
	Agreements  []string `json:"agreements,omitempty"`
}

// ChecklistItem is one ordered step of a shipping preparation checklist.
type ChecklistItem struct {
	DayOffset int    `json:"day_offset"`
	Task      string `json:"task"`
	Due       string `json:"due"` // yyyy-mm-dd
}

// Transit assumptions for checklist timelines when no route is consulted.
const (
	checklistSeaTransitDays = 10
	checklistAirTransitDays = 3
)

// Advisor answers documentation and customs questions from the reference
// dataset. The clock is injectable so checklist dates are testable.
type Advisor struct {
	data *freightdata.Provider
	now  func() time.Time
}

// NewAdvisor wraps a dataset provider.
func NewAdvisor(data *freightdata.Provider) *Advisor {
	return &Advisor{data: data, now: time.Now}
}

// WithClock overrides the advisor's clock.
func (a *Advisor) WithClock(now func() time.Time) *Advisor {
	if now != nil {
		a.now = now
	}
	return a
}

// RequiredDocuments returns the ordered document list for a destination and
// transport mode: the universal set, the mode's transport document, then any
// destination-specific extras from the regulation record.
func (a *Advisor) RequiredDocuments(destCountry string, mode freightdata.Mode) ([]Document, error) {
	reg, err := a.data.Regulation(destCountry)
	if err != nil {
		return nil, err
	}

	out := []Document{
		{Name: "Commercial Invoice", Copies: "3", Purpose: "Value declaration for customs"},
		{Name: "Packing List", Copies: "3", Purpose: "Contents and weights of packages"},
	}
	if mode == freightdata.ModeAir {
		out = append(out, Document{Name: "Air Waybill (AWB)", Copies: "Original", Purpose: "Contract of carriage"})
	} else {
		out = append(out, Document{Name: "Bill of Lading (B/L)", Copies: "3 originals", Purpose: "Title document"})
	}
	out = append(out, Document{Name: "Certificate of Origin", Copies: "1", Purpose: "For preferential duty rates"})

	for _, extra := range reg.ExtraDocuments {
		out = append(out, Document{Name: extra.Name, Copies: "1", Purpose: extra.Note})
	}
	return out, nil
}

// CheckRestrictions classifies an item category against the destination's
// restricted and prohibited lists. Matching is a normalized substring match
// in either direction; prohibited rules win over restricted ones.
func (a *Advisor) CheckRestrictions(destCountry, itemCategory string) (RestrictionReport, error) {
	reg, err := a.data.Regulation(destCountry)
	if err != nil {
		return RestrictionReport{}, err
	}

	report := RestrictionReport{
		Country:      reg.Country,
		ItemCategory: itemCategory,
		Status:       StatusAllowed,
		Reason:       "no matching restriction rule",
		SpecialZones: reg.SpecialZones,
	}

	if rule, ok := matchRule(reg.Prohibited, itemCategory); ok {
		report.Status = StatusProhibited
		report.Reason = rule
		return report, nil
	}
	if rule, ok := matchRule(reg.Restricted, itemCategory); ok {
		report.Status = StatusRestricted
		report.Reason = rule
	}
	return report, nil
}

// HSCodeInfo resolves an HS code (4-digit heading prefix match) to its
// description, duty rate, and applicable trade agreements.
func (a *Advisor) HSCodeInfo(code string) (HSCodeInfo, error) {
	hs, err := a.data.HSCode(code)
	if err != nil {
		return HSCodeInfo{}, err
	}

	agreements := make([]string, 0, len(hs.Agreements))
	for _, agreement := range hs.Agreements {
		agreements = append(agreements, agreement.Name)
	}
	return HSCodeInfo{
		Code:        hs.Code,
		Description: hs.Description,
		DutyBps:     hs.DutyBps,
		Agreements:  agreements,
	}, nil
}

// Checklist builds the shipping preparation checklist for a destination:
// document preparation, a restriction warning when the category is not
// freely importable, and the booking-to-delivery timeline. Items are ordered
// by day offset.
func (a *Advisor) Checklist(destCountry, itemCategory string, mode freightdata.Mode) ([]ChecklistItem, error) {
	documents, err := a.RequiredDocuments(destCountry, mode)
	if err != nil {
		return nil, err
	}
	restrictions, err := a.CheckRestrictions(destCountry, itemCategory)
	if err != nil {
		return nil, err
	}

	transit := checklistSeaTransitDays
	if mode == freightdata.ModeAir {
		transit = checklistAirTransitDays
	}
	today := a.now()

	item := func(day int, task string) ChecklistItem {
		return ChecklistItem{
			DayOffset: day,
			Task:      task,
			Due:       today.AddDate(0, 0, day).Format("2006-01-02"),
		}
	}

	out := []ChecklistItem{item(0, "Booking confirmation")}
	if restrictions.Status != StatusAllowed {
		out = append(out, item(0, fmt.Sprintf("Resolve import restriction: %s", restrictions.Reason)))
	}
	for _, doc := range documents {
		out = append(out, item(1, "Prepare "+doc.Name))
	}
	out = append(out,
		item(2, "Cargo ready"),
		item(3, "Departure"),
		item(3+transit, "Arrival"),
		item(5+transit, "Delivery"),
	)
	return out, nil
}

func matchRule(rules []string, category string) (string, bool) {
	want := freightdata.Normalize(category)
	if want == "" {
		return "", false
	}
	for _, rule := range rules {
		normalized := freightdata.Normalize(rule)
		if strings.Contains(normalized, want) || strings.Contains(want, normalized) {
			return rule, true
		}
	}
	return "", false
}
