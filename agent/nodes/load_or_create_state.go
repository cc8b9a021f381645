package dispatchnode

import (
	"context"
	"errors"
	"time"

	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

// LoadOrCreateState fetches the session's conversation state, creating a
// fresh one on the first turn of a session.
func LoadOrCreateState(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilGraphState
	}

	st, err := loadOrCreateState(ctx, store, in.SessionID, in.CustomerID, in.Now)
	if err != nil {
		return nil, err
	}
	in.Session = st
	return in, nil
}

func loadOrCreateState(
	ctx context.Context,
	store statex.Store,
	sessionID string,
	customerID string,
	now time.Time,
) (*statex.ConversationState, error) {
	st, err := store.Load(ctx, sessionID)
	if err == nil {
		if st.CustomerID == "" && customerID != "" {
			st.CustomerID = customerID
		}
		return st, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	return statex.NewConversationState(sessionID, customerID, now), nil
}
