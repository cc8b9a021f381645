package quotes

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithValidity overrides the quote validity window.
func WithValidity(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.validity = d
		}
	}
}

// WithClock overrides the store's clock.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store keeps quotes and customer profiles for the process lifetime. Writes
// hold the mutex exclusively, so operations on the same customer serialize;
// reads return defensive copies and may run concurrently.
type Store struct {
	mu sync.RWMutex

	quotes     map[string]*Quote   // ref -> quote
	byCustomer map[string][]string // customer id -> refs in save order
	profiles   map[string]*CustomerProfile

	refs     refIssuer
	validity time.Duration
	now      func() time.Time
}

// NewStore builds an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		quotes:     make(map[string]*Quote),
		byCustomer: make(map[string][]string),
		profiles:   make(map[string]*CustomerProfile),
		validity:   DefaultValidity,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SaveQuote assigns a reference number and validity window to a computed
// cost result, stores it under the global index and the owning customer's
// history, and returns the stored quote.
func (s *Store) SaveQuote(in QuoteInput) (*Quote, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is empty", ErrInvalidQuote)
	}
	if in.Breakdown.Total < 0 {
		return nil, fmt.Errorf("%w: negative total", ErrInvalidQuote)
	}
	if in.Breakdown.ComponentSum() != in.Breakdown.Total {
		return nil, fmt.Errorf("%w: breakdown components do not sum to total", ErrInvalidQuote)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now().UTC()
	q := &Quote{
		Ref:         s.refs.next(createdAt),
		CustomerID:  customerID,
		Origin:      in.Origin,
		Destination: in.Destination,
		Mode:        in.Mode,
		WeightKg:    in.WeightKg,
		VolumeCBM:   in.VolumeCBM,
		Breakdown:   in.Breakdown,
		Currency:    in.Breakdown.Currency,
		Total:       in.Breakdown.Total,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(s.validity),
	}

	s.quotes[q.Ref] = q
	s.byCustomer[customerID] = append(s.byCustomer[customerID], q.Ref)

	log.Info().
		Str("ref", q.Ref).
		Str("customer_id", customerID).
		Int64("total_cents", int64(q.Total)).
		Time("expires_at", q.ExpiresAt).
		Msg("quote saved")

	out := *q
	return &out, nil
}

// Quote returns a stored quote by reference number.
func (s *Store) Quote(ref string) (*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[strings.TrimSpace(ref)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, ref)
	}
	out := *q
	return &out, nil
}

// QuoteHistory returns a customer's quotes, most recent first. A limit of
// zero or less returns the full history. An unknown customer yields an
// empty slice, not an error.
func (s *Store) QuoteHistory(customerID string, limit int) []*Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := s.byCustomer[strings.TrimSpace(customerID)]
	out := make([]*Quote, 0, len(refs))
	for i := len(refs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		q := *s.quotes[refs[i]]
		out = append(out, &q)
	}
	return out
}

// SaveCustomerInfo merges fields into a customer's profile, creating the
// profile on first save. Each field is last-write-wins.
func (s *Store) SaveCustomerInfo(customerID string, fields map[string]string) (*CustomerProfile, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is empty", ErrInvalidQuote)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	profile, ok := s.profiles[customerID]
	if !ok {
		profile = &CustomerProfile{
			CustomerID: customerID,
			Fields:     make(map[string]ProfileField, len(fields)),
		}
		s.profiles[customerID] = profile
	}
	for k, v := range fields {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		profile.Fields[key] = ProfileField{Value: v, SavedAt: now}
	}
	profile.UpdatedAt = now

	return profile.clone(), nil
}

// CustomerInfo returns a customer's stored profile.
func (s *Store) CustomerInfo(customerID string) (*CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[strings.TrimSpace(customerID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return profile.clone(), nil
}
