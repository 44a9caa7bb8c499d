package tabs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/repositories/rollset"
	"github.com/KirkDiggler/dicegraph/internal/services/fairness"
	"github.com/KirkDiggler/dicegraph/internal/services/messaging"
	"github.com/KirkDiggler/dicegraph/internal/services/preferences"
	"github.com/KirkDiggler/dicegraph/internal/services/simulator"
)

// DefaultLargeRunThreshold is the roll count from which a run needs confirmation
const DefaultLargeRunThreshold = 1_000_000

// ErrSimulationRunning is returned when a run is started while another is active
var ErrSimulationRunning = errors.New("a simulation is already running")

// SimulatorConfig holds the dependencies of the simulator tab
type SimulatorConfig struct {
	Simulator   simulator.Service
	Fairness    fairness.Service
	Messaging   messaging.Service
	Preferences preferences.Service

	// Repository stores simulation results
	Repository rollset.Repository
	Clock      clock.Clock

	// LargeRunThreshold is the roll count that needs confirmation; 0 uses the default
	LargeRunThreshold int
}

// SimulatorTab runs simulations and shows their results
type SimulatorTab struct {
	sim       simulator.Service
	fairness  fairness.Service
	msgs      messaging.Service
	prefs     preferences.Service
	repo      rollset.Repository
	clock     clock.Clock
	threshold int

	mu      sync.Mutex
	pending *simulator.RunInput
	running bool
	name    string
	current *models.RollStore
}

// NewSimulatorTab creates the simulator tab
func NewSimulatorTab(cfg *SimulatorConfig) (*SimulatorTab, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Simulator == nil {
		return nil, ErrNilSimulator
	}
	if cfg.Fairness == nil {
		return nil, ErrNilFairness
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Preferences == nil {
		return nil, ErrNilPreferences
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	threshold := cfg.LargeRunThreshold
	if threshold <= 0 {
		threshold = DefaultLargeRunThreshold
	}

	return &SimulatorTab{
		sim:       cfg.Simulator,
		fairness:  cfg.Fairness,
		msgs:      cfg.Messaging,
		prefs:     cfg.Preferences,
		repo:      cfg.Repository,
		clock:     cfg.Clock,
		threshold: threshold,
	}, nil
}

// Name implements Tab
func (t *SimulatorTab) Name() string {
	return "Simulator"
}

// OnApply validates the simulation parameters and keeps them for Run. Large
// runs come back with NeedsConfirmation set.
func (t *SimulatorTab) OnApply(ctx context.Context, req *Request) (*View, error) {
	cfg, err := parseDiceConfig(req, t.prefs)
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	rolls, err := intField(req, FieldRolls, "")
	if err != nil {
		return failure(ctx, t.msgs, err)
	}
	if rolls <= 0 {
		return failure(ctx, t.msgs, fmt.Errorf("%w: roll count must be positive, got %d", models.ErrInvalidConfig, rolls))
	}

	var seed int64
	if raw := req.Get(FieldSeed, ""); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return failure(ctx, t.msgs, fmt.Errorf("%w: seed must be a whole number, got %q", models.ErrInvalidConfig, raw))
		}
	}

	t.mu.Lock()
	t.pending = &simulator.RunInput{Config: cfg, RollCount: rolls, Seed: seed}
	t.mu.Unlock()

	if rolls >= t.threshold {
		view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
			Kind:  messaging.StatusConfirmLarge,
			Count: rolls,
		})
		if err != nil {
			return nil, err
		}
		view.NeedsConfirmation = true
		return view, nil
	}

	return &View{
		Title:   simulator.ResultName(cfg.Name, cfg, rolls),
		Message: fmt.Sprintf("Ready to simulate %d rolls of %s", rolls, cfg),
	}, nil
}

// Run starts the applied simulation in the background. The returned view
// reports whether the run started; done receives the final view exactly
// once when it did. A large run that is not confirmed does not start.
func (t *SimulatorTab) Run(ctx context.Context, confirmed bool, done func(*View)) (*View, error) {
	t.mu.Lock()
	input := t.pending
	switch {
	case input == nil:
		t.mu.Unlock()
		return failure(ctx, t.msgs, fmt.Errorf("%w: apply the simulation settings first", models.ErrInvalidConfig))
	case t.running:
		t.mu.Unlock()
		return failure(ctx, t.msgs, ErrSimulationRunning)
	case input.RollCount >= t.threshold && !confirmed:
		t.mu.Unlock()
		view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
			Kind:  messaging.StatusConfirmLarge,
			Count: input.RollCount,
		})
		if err != nil {
			return nil, err
		}
		view.NeedsConfirmation = true
		return view, nil
	}
	t.running = true
	t.mu.Unlock()

	t.sim.RunAsync(ctx, input, func(out *simulator.RunOutput, err error) {
		view, viewErr := t.complete(ctx, input, out, err)
		if viewErr != nil {
			view = &View{Title: "Something went wrong", Message: viewErr.Error(), IsError: true}
		}
		if done != nil {
			done(view)
		}
	})

	return &View{
		Message: fmt.Sprintf("Running simulation with %d dice, %d faces, %d rolls...",
			input.Config.DiceCount, input.Config.FaceCount, input.RollCount),
	}, nil
}

// complete stores and saves a finished run
func (t *SimulatorTab) complete(ctx context.Context, input *simulator.RunInput, out *simulator.RunOutput, runErr error) (*View, error) {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()

	if runErr != nil {
		return failure(ctx, t.msgs, runErr)
	}

	result := out.Result
	name := rollset.Key(simulator.ResultName(input.Config.Name, input.Config, input.RollCount))

	t.mu.Lock()
	t.name = name
	t.current = result.Store
	t.mu.Unlock()

	if err := t.repo.SaveRollSet(ctx, &rollset.SaveRollSetInput{
		Name: name,
		Set:  result.Store.Snapshot(t.clock.Now()),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to save simulation", "name", name, "error", err)
		return failure(ctx, t.msgs, err)
	}

	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:     messaging.StatusSimulation,
		Name:     name,
		Config:   result.Config,
		Count:    result.RequestedRolls,
		Duration: result.Duration,
	})
	if err != nil {
		return nil, err
	}
	view.Title = name
	view.Store = result.Store
	return view, nil
}

// OnLoad shows a saved simulation
func (t *SimulatorTab) OnLoad(ctx context.Context, req *Request) (*View, error) {
	name := rollset.Key(req.Get(FieldName, ""))
	if name == "" {
		return failure(ctx, t.msgs, fmt.Errorf("%w: no simulation selected", models.ErrNotFound))
	}

	set, err := t.repo.GetRollSet(ctx, &rollset.GetRollSetInput{Name: name})
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	store, err := models.RestoreRollStore(set)
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	t.mu.Lock()
	t.name = name
	t.current = store
	t.mu.Unlock()

	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:   messaging.StatusLoaded,
		Name:   name,
		Config: store.Config(),
		Total:  store.Total(),
	})
	if err != nil {
		return nil, err
	}
	view.Title = name
	view.Store = store
	return view, nil
}

// OnSave writes the shown simulation, under the name field when one is given
func (t *SimulatorTab) OnSave(ctx context.Context, req *Request) (*View, error) {
	t.mu.Lock()
	name, store := t.name, t.current
	t.mu.Unlock()

	if store == nil {
		return failure(ctx, t.msgs, fmt.Errorf("%w: no simulation to save", models.ErrNotFound))
	}
	if n := rollset.Key(req.Get(FieldName, "")); n != "" {
		name = n
	}

	if err := t.repo.SaveRollSet(ctx, &rollset.SaveRollSetInput{
		Name: name,
		Set:  store.Snapshot(t.clock.Now()),
	}); err != nil {
		return failure(ctx, t.msgs, err)
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusSaved,
		Name:  name,
		Total: store.Total(),
	})
}

// Reset clears the shown simulation. Saved results are kept.
func (t *SimulatorTab) Reset(ctx context.Context) (*View, error) {
	t.mu.Lock()
	name := t.name
	t.name = ""
	t.current = nil
	t.mu.Unlock()

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind: messaging.StatusReset,
		Name: name,
	})
}

// Fairness tests the shown simulation
func (t *SimulatorTab) Fairness(ctx context.Context, req *Request) (*View, error) {
	return evaluate(ctx, t.fairness, t.msgs, t.prefs, t.Current(), req)
}

// Sets lists the saved simulations
func (t *SimulatorTab) Sets(ctx context.Context) (*View, error) {
	out, err := t.repo.ListRollSets(ctx)
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	return &View{
		Title:   "Saved simulations",
		Message: fmt.Sprintf("%d saved simulations", len(out.Names)),
		Lines:   out.Names,
	}, nil
}

// Delete removes a saved simulation
func (t *SimulatorTab) Delete(ctx context.Context, name string) (*View, error) {
	if err := t.repo.DeleteRollSet(ctx, &rollset.DeleteRollSetInput{Name: name}); err != nil {
		return failure(ctx, t.msgs, err)
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind: messaging.StatusDeleted,
		Name: name,
	})
}

// Current returns the shown simulation store
func (t *SimulatorTab) Current() *models.RollStore {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
