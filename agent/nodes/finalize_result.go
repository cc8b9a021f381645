package dispatchnode

import "fmt"

// FinalizeResult emits the turn's structured result as the graph output.
func FinalizeResult(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, ErrNilGraphState
	}
	if in.Result.Domain == "" {
		return GraphOutput{}, fmt.Errorf("finalize: result has no domain")
	}
	return GraphOutput{Result: in.Result}, nil
}
