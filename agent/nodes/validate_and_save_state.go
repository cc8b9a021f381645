package dispatchnode

import (
	"context"
	"fmt"

	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

// ValidateAndSaveState persists the updated session state after the handler
// has run. A state that fails validation is never written.
func ValidateAndSaveState(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNilGraphState
	}

	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}

	return in, nil
}
