package contract

import (
	"context"

	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

// Handler is one capability-domain specialist. Handle receives the routed
// intent and a read-only view of the session state; mutations are requested
// through the returned StateUpdates, which the dispatcher applies.
type Handler interface {
	Domain() Domain
	Handle(ctx context.Context, intent Intent, sess *statex.ConversationState) (Result, StateUpdates, error)
}

// Registry exposes the four specialists the dispatcher delegates to.
type Registry interface {
	RoutePlanner() Handler
	CostAnalyst() Handler
	DocumentSpecialist() Handler
	QuoteManager() Handler
}

// Classifier is the external language-understanding collaborator: it maps
// one free-text turn to a structured intent. Called at most once per turn,
// synchronously, with no streaming state retained in the core.
type Classifier interface {
	Classify(ctx context.Context, text string, sess *statex.ConversationState) (Intent, error)
}
