// Package state holds the per-session conversation state the dispatcher
// carries across turns, and the Store contract it is persisted through.
// State is an explicit value passed through the dispatch pipeline; there are
// no shared mutable globals, so sessions can run concurrently.
package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
)

var (
	ErrStateNotFound   = errors.New("session state not found")
	ErrNilSessionState = errors.New("session state is nil")
	ErrInvalidSession  = errors.New("session id is empty")
)

// PendingQuote is the most recently computed cost result of a session. It is
// what a follow-up turn like "save this quote" refers to.
type PendingQuote struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Mode        freightdata.Mode `json:"mode"`
	WeightKg    float64          `json:"weight_kg"`
	VolumeCBM   float64          `json:"volume_cbm"`
	Breakdown   cost.Breakdown   `json:"breakdown"`
	ComputedAt  time.Time        `json:"computed_at"`
}

// ConversationState is the dispatcher-owned session state: who the customer
// is, the last capability domain that handled a turn, and the last quote the
// cost engine produced. It lives for one customer session.
type ConversationState struct {
	SessionID  string `json:"session_id"`
	CustomerID string `json:"customer_id"`

	LastDomain   string        `json:"last_domain,omitempty"`
	PendingQuote *PendingQuote `json:"pending_quote,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversationState starts a session.
func NewConversationState(sessionID, customerID string, now time.Time) *ConversationState {
	return &ConversationState{
		SessionID:  sessionID,
		CustomerID: customerID,
		UpdatedAt:  now.UTC(),
	}
}

// Touch bumps the state's timestamp.
func (s *ConversationState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// SetPendingQuote records the latest computed cost result.
func (s *ConversationState) SetPendingQuote(pq *PendingQuote) {
	s.PendingQuote = pq
}

// ClearPendingQuote drops the pending result, typically after it is saved.
func (s *ConversationState) ClearPendingQuote() {
	s.PendingQuote = nil
}

// Clone deep-copies the state so stored and in-flight copies cannot alias.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	out := *s
	if s.PendingQuote != nil {
		pq := *s.PendingQuote
		if len(pq.Breakdown.Surcharges) > 0 {
			items := make([]cost.LineItem, len(pq.Breakdown.Surcharges))
			copy(items, pq.Breakdown.Surcharges)
			pq.Breakdown.Surcharges = items
		}
		out.PendingQuote = &pq
	}
	return &out
}

// Validate checks structural invariants before the state is persisted.
func (s *ConversationState) Validate() error {
	if s == nil {
		return ErrNilSessionState
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	if pq := s.PendingQuote; pq != nil {
		if pq.Breakdown.Total < 0 {
			return fmt.Errorf("pending quote has negative total")
		}
		if pq.Breakdown.ComponentSum() != pq.Breakdown.Total {
			return fmt.Errorf("pending quote breakdown does not sum to total")
		}
	}
	return nil
}
