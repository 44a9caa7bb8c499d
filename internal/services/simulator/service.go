package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/common/uuid"
	"github.com/KirkDiggler/dicegraph/internal/dice"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

const (
	defaultMinRollsPerWorker = 50_000

	// how many rolls a shard makes between context checks
	cancelCheckInterval = 4096
)

// service implements the Service interface
type service struct {
	workers           int
	minRollsPerWorker int
	newRoller         func(seed int64) dice.Roller
	clock             clock.Clock
	uuidGenerator     uuid.UUID
}

// New creates a new simulator service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	minRolls := cfg.MinRollsPerWorker
	if minRolls <= 0 {
		minRolls = defaultMinRollsPerWorker
	}

	newRoller := cfg.NewRoller
	if newRoller == nil {
		newRoller = func(seed int64) dice.Roller {
			return dice.NewSeeded(seed)
		}
	}

	return &service{
		workers:           workers,
		minRollsPerWorker: minRolls,
		newRoller:         newRoller,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
	}, nil
}

// Run simulates the requested rolls. Each shard owns its roller and store;
// the shard stores are merged once every shard has finished.
func (s *service) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", models.ErrInvalidConfig)
	}

	if err := input.Config.Validate(); err != nil {
		return nil, err
	}

	if input.RollCount <= 0 {
		return nil, fmt.Errorf("%w: roll count must be positive, got %d", models.ErrInvalidConfig, input.RollCount)
	}

	start := s.clock.Now()

	seed := input.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}

	shards := s.shardSizes(input.RollCount)
	stores := make([]*models.RollStore, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for i, rolls := range shards {
		roller := s.newRoller(seed + int64(i))
		g.Go(func() error {
			store, err := simulateShard(gctx, roller, input.Config, rolls)
			if err != nil {
				return err
			}
			stores[i] = store
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	total, err := models.NewRollStore(input.Config)
	if err != nil {
		return nil, err
	}
	for _, store := range stores {
		if err := total.Merge(store); err != nil {
			return nil, err
		}
	}

	result := &models.SimulationResult{
		ID:             s.uuidGenerator.NewUUID(),
		Config:         input.Config,
		Store:          total,
		RequestedRolls: input.RollCount,
		Seed:           seed,
		Workers:        len(shards),
		StartedAt:      start,
		Duration:       s.clock.Since(start),
	}

	slog.InfoContext(ctx, "simulation complete",
		"id", result.ID,
		"dice", input.Config.String(),
		"rolls", input.RollCount,
		"workers", result.Workers,
		"duration", result.Duration)

	return &RunOutput{
		Result: result,
	}, nil
}

// RunAsync runs the simulation on its own goroutine
func (s *service) RunAsync(ctx context.Context, input *RunInput, done func(*RunOutput, error)) {
	go func() {
		out, err := s.Run(ctx, input)
		if done != nil {
			done(out, err)
		}
	}()
}

// shardSizes splits rollCount into near-equal shards. The split depends only
// on rollCount and the configured limits, so a seed reproduces the same run.
func (s *service) shardSizes(rollCount int) []int {
	workers := (rollCount + s.minRollsPerWorker - 1) / s.minRollsPerWorker
	workers = max(1, min(workers, s.workers))

	sizes := make([]int, workers)
	base, rem := rollCount/workers, rollCount%workers
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}

func simulateShard(ctx context.Context, roller dice.Roller, cfg models.DiceConfig, rolls int) (*models.RollStore, error) {
	store, err := models.NewRollStore(cfg)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rolls; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Same tally as RollStore.RecordDice without a slice per roll
		if cfg.Mode == models.TallyModeSum {
			sum := 0
			for d := 0; d < cfg.DiceCount; d++ {
				sum += roller.Roll(cfg.FaceCount)
			}
			err = store.RecordRoll(sum)
		} else {
			for d := 0; d < cfg.DiceCount && err == nil; d++ {
				err = store.RecordRoll(roller.Roll(cfg.FaceCount))
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return store, nil
}
