package simulator

import (
	"fmt"

	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/common/uuid"
	"github.com/KirkDiggler/dicegraph/internal/dice"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

// Config holds configuration for the simulator service
type Config struct {
	// Workers is the maximum number of shards a run is split into; 0 means one per CPU
	Workers int

	// MinRollsPerWorker keeps small runs on fewer shards; 0 uses the default
	MinRollsPerWorker int

	// NewRoller builds the roller of one shard; nil uses dice.NewSeeded
	NewRoller func(seed int64) dice.Roller

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// RunInput contains parameters for a simulation run
type RunInput struct {
	// Config is the dice configuration to simulate
	Config models.DiceConfig

	// RollCount is the number of physical rolls
	RollCount int

	// Seed makes the run reproducible; 0 picks a time-based seed
	Seed int64
}

// RunOutput contains the result of a simulation run
type RunOutput struct {
	Result *models.SimulationResult
}

// ResultName builds the name a simulation is saved under, e.g. "Test_2d6_1000rolls"
func ResultName(name string, cfg models.DiceConfig, rollCount int) string {
	if name == "" {
		name = "Simulation"
	}
	return fmt.Sprintf("%s_%dd%d_%drolls", name, cfg.DiceCount, cfg.FaceCount, rollCount)
}
