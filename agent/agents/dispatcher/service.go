// Package dispatcher is the delegation core: it receives one structured
// intent per turn, loads the session's conversation state, routes the turn
// to the matching capability handler, folds the handler's state updates
// back in, and persists the state before returning the structured result.
package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	nodex "github.com/tenyyprn/logistics-quote-agent/agent/nodes"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
)

var (
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Config carries per-dispatcher defaults.
type Config struct {
	// CustomerID seeds new sessions when the caller does not supply one.
	CustomerID string
}

// Dispatcher wires the turn-handling pipeline. It holds no per-session
// state itself; everything session-scoped lives in the state store.
type Dispatcher struct {
	store      statex.Store
	handlers   contractx.Registry
	classifier contractx.Classifier

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	customerID string

	now func() time.Time
}

// New builds a dispatcher. The classifier is optional: a nil classifier
// disables HandleText but leaves Dispatch fully functional.
func New(
	store statex.Store,
	handlers contractx.Registry,
	classifier contractx.Classifier,
	cfg Config,
) (*Dispatcher, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if handlers == nil {
		return nil, errors.New("handler registry is required")
	}

	d := &Dispatcher{
		store:      store,
		handlers:   handlers,
		classifier: classifier,
		customerID: cfg.CustomerID,
		now:        time.Now,
	}

	graphRunner, err := d.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// Dispatch handles one structured turn for the given session.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, intent contractx.Intent) (contractx.Result, error) {
	out, err := d.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID:  sessionID,
		CustomerID: d.customerID,
		Intent:     intent,
	})
	if err != nil {
		return contractx.Result{}, err
	}
	return out.Result, nil
}

// HandleText classifies one free-text turn into an intent and dispatches
// it. The session state is offered to the classifier so follow-up turns can
// resolve against the previous domain and any pending quote.
func (d *Dispatcher) HandleText(ctx context.Context, sessionID string, text string) (contractx.Result, error) {
	if d.classifier == nil {
		return contractx.Result{}, errors.New("no classifier configured")
	}

	sess, err := d.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrStateNotFound) {
			return contractx.Result{}, err
		}
		sess = nil
	}

	intent, err := d.classifier.Classify(ctx, text, sess)
	if err != nil {
		return contractx.Result{}, err
	}
	intent.RawText = text

	return d.Dispatch(ctx, sessionID, intent)
}
