// Package classifier adapts a chat model into the dispatcher's intent
// classifier: one free-text customer turn in, one structured intent out.
// The deterministic core never depends on this package; it is wired in only
// when a model is configured.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	promptx "github.com/tenyyprn/logistics-quote-agent/agent/prompt"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

type Classifier struct {
	runner compose.Runnable[map[string]any, classifierLLMOutput]
}

var _ contractx.Classifier = (*Classifier)(nil)

type classifierLLMOutput struct {
	Domain     string         `json:"domain"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Classifier, error) {
	prompts := promptx.LoadPromptSet()
	runner, err := compileClassifierGraph(ctx, chatModel, prompts.Classifier)
	if err != nil {
		return nil, fmt.Errorf("%w: compile classifier graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Classifier{runner: runner}, nil
}

func (c *Classifier) Classify(ctx context.Context, text string, sess *statex.ConversationState) (contractx.Intent, error) {
	if strings.TrimSpace(text) == "" {
		return contractx.Intent{}, fmt.Errorf("%w: message is empty", contractx.ErrUnresolvedIntent)
	}

	payload := map[string]any{
		"user_message": text,
		"session":      summarizeSession(sess),
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.Intent{}, fmt.Errorf("%w: marshal classifier payload: %v", contractx.ErrModelInvoke, err)
	}

	out, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.Intent{}, fmt.Errorf("%w: classifier invoke: %v", contractx.ErrModelInvoke, err)
	}

	return intentFromOutput(out)
}

// intentFromOutput validates the model's JSON against the routable intent
// space. An out-of-space answer is an unresolved intent, not a crash.
func intentFromOutput(out classifierLLMOutput) (contractx.Intent, error) {
	domain, ok := contractx.ParseDomain(out.Domain)
	if !ok {
		return contractx.Intent{}, fmt.Errorf("%w: domain=%q", contractx.ErrUnresolvedIntent, out.Domain)
	}

	operation := strings.ToLower(strings.TrimSpace(out.Operation))
	if !supportedOperation(domain, operation) {
		return contractx.Intent{}, fmt.Errorf("%w: %s operation=%q", contractx.ErrSchemaViolation, domain, operation)
	}

	params := out.Parameters
	if params == nil {
		params = map[string]any{}
	}

	return contractx.Intent{
		Domain:     domain,
		Operation:  operation,
		Parameters: params,
	}, nil
}

func supportedOperation(domain contractx.Domain, operation string) bool {
	ops, ok := operationsByDomain[domain]
	if !ok {
		return false
	}
	for _, op := range ops {
		if op == operation {
			return true
		}
	}
	return false
}

var operationsByDomain = map[contractx.Domain][]string{
	contractx.DomainRoute: {contractx.OpRouteSearch, contractx.OpRouteRecommend},
	contractx.DomainCost:  {contractx.OpCostSea, contractx.OpCostAir, contractx.OpCostLanded, contractx.OpCostCompare},
	contractx.DomainDoc:   {contractx.OpDocDocuments, contractx.OpDocRestrictions, contractx.OpDocHSCode, contractx.OpDocChecklist},
	contractx.DomainQuote: {contractx.OpQuoteSave, contractx.OpQuoteHistory, contractx.OpQuoteSaveCustomer, contractx.OpQuoteGetCustomer},
}

func summarizeSession(st *statex.ConversationState) map[string]any {
	if st == nil {
		return map[string]any{}
	}

	summary := map[string]any{
		"customer_id": st.CustomerID,
		"last_domain": st.LastDomain,
	}
	if pq := st.PendingQuote; pq != nil {
		summary["pending_quote"] = map[string]any{
			"origin":      pq.Origin,
			"destination": pq.Destination,
			"mode":        string(pq.Mode),
			"weight_kg":   pq.WeightKg,
			"volume_cbm":  pq.VolumeCBM,
			"total":       pq.Breakdown.Total.String(),
		}
	}
	return summary
}
