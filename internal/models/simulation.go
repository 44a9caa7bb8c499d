package models

import "time"

// SimulationResult is the outcome of one simulator run. It is not modified after creation.
type SimulationResult struct {
	// ID uniquely identifies the run
	ID string

	// Config is the simulated dice configuration
	Config DiceConfig

	// Store holds the aggregated values
	Store *RollStore

	// RequestedRolls is the number of physical rolls simulated
	RequestedRolls int

	// Seed is the base seed the shards were derived from
	Seed int64

	// Workers is the number of shards the run was split into
	Workers int

	// StartedAt is when the run began
	StartedAt time.Time

	// Duration is how long the run took
	Duration time.Duration
}
