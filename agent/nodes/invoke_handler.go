package dispatchnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
)

// InvokeHandler routes the turn to the specialist for the intent's declared
// domain. Every turn routes independently: the previous turn's domain never
// locks the next one in. Handler errors propagate upward wrapped with the
// producing domain but keeping their errors.Is identity.
func InvokeHandler(
	ctx context.Context,
	in *GraphState,
	registry contractx.Registry,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNilGraphState
	}

	handler, err := pickHandler(in.Intent.Domain, registry)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("session_id", in.SessionID).
		Str("domain", string(in.Intent.Domain)).
		Str("operation", in.Intent.Operation).
		Msg("dispatching intent")

	result, updates, err := handler.Handle(ctx, in.Intent, in.Session)
	if err != nil {
		return nil, fmt.Errorf("%s handler: %w", in.Intent.Domain, err)
	}

	result.Domain = in.Intent.Domain
	result.Operation = in.Intent.Operation
	in.Result = result
	in.StateUpdates = updates
	return in, nil
}

func pickHandler(domain contractx.Domain, registry contractx.Registry) (contractx.Handler, error) {
	switch domain {
	case contractx.DomainRoute:
		return registry.RoutePlanner(), nil
	case contractx.DomainCost:
		return registry.CostAnalyst(), nil
	case contractx.DomainDoc:
		return registry.DocumentSpecialist(), nil
	case contractx.DomainQuote:
		return registry.QuoteManager(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported domain=%q", contractx.ErrUnresolvedIntent, domain)
	}
}
