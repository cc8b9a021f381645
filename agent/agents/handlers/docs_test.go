package handlers

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

func TestDocDocumentsDefaultsToSea(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	res, updates, err := h.Handle(context.Background(), contractx.Intent{
		Domain:     contractx.DomainDoc,
		Operation:  contractx.OpDocDocuments,
		Parameters: map[string]any{"destination": "China"},
	}, testSession(""))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(res.Documents) == 0 {
		t.Fatal("no documents returned")
	}
	var hasBL bool
	for _, d := range res.Documents {
		if d.Name == "Bill of Lading (B/L)" {
			hasBL = true
		}
	}
	if !hasBL {
		t.Fatal("sea shipment must require a bill of lading")
	}
	if updates != (contractx.StateUpdates{}) {
		t.Fatalf("doc lookup must not touch state, got %+v", updates)
	}
}

func TestDocDocumentsAir(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	res, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:    contractx.DomainDoc,
		Operation: contractx.OpDocDocuments,
		Parameters: map[string]any{
			"destination": "USA",
			"mode":        "air",
		},
	}, testSession(""))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	var hasAWB, hasBL bool
	for _, d := range res.Documents {
		switch d.Name {
		case "Air Waybill (AWB)":
			hasAWB = true
		case "Bill of Lading (B/L)":
			hasBL = true
		}
	}
	if !hasAWB || hasBL {
		t.Fatalf("air documents = %+v, want AWB and no B/L", res.Documents)
	}
}

func TestDocDocumentsUnknownCountry(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	_, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:     contractx.DomainDoc,
		Operation:  contractx.OpDocDocuments,
		Parameters: map[string]any{"destination": "Atlantis"},
	}, testSession(""))
	if !errors.Is(err, freightdata.ErrUnknownCountry) {
		t.Fatalf("error = %v, want ErrUnknownCountry", err)
	}
}

func TestDocRestrictions(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	cases := []struct {
		name     string
		country  string
		category string
		want     docs.RestrictionStatus
	}{
		{"china machine parts", "China", "machine parts", docs.StatusAllowed},
		{"china used machinery", "China", "used machinery", docs.StatusRestricted},
		{"china weapons", "China", "weapons", docs.StatusProhibited},
		{"thailand e-cigarettes", "Thailand", "e-cigarettes", docs.StatusProhibited},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, _, err := h.Handle(context.Background(), contractx.Intent{
				Domain:    contractx.DomainDoc,
				Operation: contractx.OpDocRestrictions,
				Parameters: map[string]any{
					"destination":   tc.country,
					"item_category": tc.category,
				},
			}, testSession(""))
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if res.Restrictions == nil || res.Restrictions.Status != tc.want {
				t.Fatalf("restrictions = %+v, want status %s", res.Restrictions, tc.want)
			}
		})
	}
}

func TestDocHSCode(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	res, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:     contractx.DomainDoc,
		Operation:  contractx.OpDocHSCode,
		Parameters: map[string]any{"hs_code": "851762"},
	}, testSession(""))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.HSCode == nil || res.HSCode.Code != "8517" {
		t.Fatalf("hs code = %+v, want heading 8517", res.HSCode)
	}
	if res.HSCode.DutyBps != 200 {
		t.Fatalf("duty bps = %d, want 200", res.HSCode.DutyBps)
	}
}

func TestDocHSCodeUnknown(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	_, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:     contractx.DomainDoc,
		Operation:  contractx.OpDocHSCode,
		Parameters: map[string]any{"hs_code": "9999"},
	}, testSession(""))
	if !errors.Is(err, freightdata.ErrUnknownHSCode) {
		t.Fatalf("error = %v, want ErrUnknownHSCode", err)
	}
}

func TestDocChecklist(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	res, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:    contractx.DomainDoc,
		Operation: contractx.OpDocChecklist,
		Parameters: map[string]any{
			"destination":   "Thailand",
			"item_category": "machine parts",
			"mode":          "sea",
		},
	}, testSession(""))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(res.Checklist) == 0 {
		t.Fatal("no checklist returned")
	}
	if res.Checklist[0].DayOffset != 0 || res.Checklist[0].Due != "2026-03-02" {
		t.Fatalf("first step = %+v, want day 0 on the fixed clock", res.Checklist[0])
	}
	for i := 1; i < len(res.Checklist); i++ {
		if res.Checklist[i].DayOffset < res.Checklist[i-1].DayOffset {
			t.Fatalf("checklist offsets out of order at %d: %+v", i, res.Checklist)
		}
	}
}

func TestDocChecklistMissingCategory(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	_, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:     contractx.DomainDoc,
		Operation:  contractx.OpDocChecklist,
		Parameters: map[string]any{"destination": "Thailand"},
	}, testSession(""))
	if !errors.Is(err, contractx.ErrInvalidParameters) {
		t.Fatalf("error = %v, want ErrInvalidParameters", err)
	}
}

func TestDocUnknownOperation(t *testing.T) {
	t.Parallel()

	h := NewDocumentSpecialist(testAdvisor(t))

	_, _, err := h.Handle(context.Background(), contractx.Intent{
		Domain:    contractx.DomainDoc,
		Operation: "translate",
	}, testSession(""))
	if !errors.Is(err, contractx.ErrUnresolvedIntent) {
		t.Fatalf("error = %v, want ErrUnresolvedIntent", err)
	}
}
