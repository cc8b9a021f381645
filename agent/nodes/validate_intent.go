// Package dispatchnode contains the individual steps of the dispatcher's
// turn-handling graph. Each node is a pure function over the shared
// GraphState so the pipeline stays testable without compiling the graph.
package dispatchnode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrNilGraphState  = errors.New("graph state is nil")
)

// GraphInput is one turn entering the dispatcher.
type GraphInput struct {
	SessionID  string
	CustomerID string
	Intent     contractx.Intent
}

// GraphOutput is the structured result handed back to the collaborator.
type GraphOutput struct {
	Result contractx.Result
}

// GraphState flows through the dispatch pipeline.
type GraphState struct {
	SessionID  string
	CustomerID string
	Intent     contractx.Intent
	Now        time.Time

	Session *statex.ConversationState

	Result       contractx.Result
	StateUpdates contractx.StateUpdates
}

// ValidateIntent checks the turn before any state is touched: the session
// must be identified and the intent must carry a routable domain. An
// unroutable intent fails with ErrUnresolvedIntent instead of guessing.
func ValidateIntent(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	domain, ok := contractx.ParseDomain(string(in.Intent.Domain))
	if !ok {
		return nil, fmt.Errorf("%w: domain=%q", contractx.ErrUnresolvedIntent, in.Intent.Domain)
	}
	intent := in.Intent
	intent.Domain = domain

	if strings.TrimSpace(intent.Operation) == "" {
		return nil, fmt.Errorf("%w: operation is empty", contractx.ErrUnresolvedIntent)
	}

	return &GraphState{
		SessionID:  sessionID,
		CustomerID: strings.TrimSpace(in.CustomerID),
		Intent:     intent,
		Now:        nowFn().UTC(),
	}, nil
}
