package fairness

import "context"

// Service defines the interface for fairness testing
type Service interface {
	// Evaluate runs a chi-square goodness-of-fit test against fair dice
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error)
}
