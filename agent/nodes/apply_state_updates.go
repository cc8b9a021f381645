package dispatchnode

import (
	"strings"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

// ApplyStateUpdates folds the handler's requested updates into the session
// state and records which domain produced the turn.
func ApplyStateUpdates(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNilGraphState
	}

	applyStateUpdates(in.Session, in.Intent.Domain, in.StateUpdates)
	in.Session.Touch(in.Now)
	return in, nil
}

func applyStateUpdates(st *statex.ConversationState, domain contractx.Domain, updates contractx.StateUpdates) {
	st.LastDomain = string(domain)

	if id := strings.TrimSpace(updates.SetCustomerID); id != "" {
		st.CustomerID = id
	}
	if updates.SetPendingQuote != nil {
		st.SetPendingQuote(updates.SetPendingQuote)
	} else if updates.ClearPendingQuote {
		st.ClearPendingQuote()
	}
}
