package contract

import "errors"

var (
	// ErrUnresolvedIntent means the turn cannot be routed: the intent's
	// domain or operation is missing or unknown. The dispatcher never
	// guesses a default domain.
	ErrUnresolvedIntent = errors.New("intent could not be resolved")

	// ErrNoPendingQuote means a turn referenced "this quote" but the session
	// has no computed cost result to bind it to.
	ErrNoPendingQuote = errors.New("no pending quote in session")

	// ErrInvalidParameters rejects malformed extracted parameters before any
	// computation runs.
	ErrInvalidParameters = errors.New("invalid parameters")

	// Classifier boundary errors.
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
)
