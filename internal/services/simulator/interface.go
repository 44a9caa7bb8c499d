package simulator

import "context"

// Service defines the interface for dice simulations
type Service interface {
	// Run simulates RollCount rolls and returns the aggregated result
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)

	// RunAsync runs a simulation in the background and calls done exactly once
	RunAsync(ctx context.Context, input *RunInput, done func(*RunOutput, error))
}
