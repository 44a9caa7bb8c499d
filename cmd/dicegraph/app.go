package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/common/uuid"
	"github.com/KirkDiggler/dicegraph/internal/config"
	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
	prefRepo "github.com/KirkDiggler/dicegraph/internal/repositories/preferences"
	"github.com/KirkDiggler/dicegraph/internal/repositories/rollset"
	"github.com/KirkDiggler/dicegraph/internal/services/fairness"
	"github.com/KirkDiggler/dicegraph/internal/services/messaging"
	"github.com/KirkDiggler/dicegraph/internal/services/preferences"
	"github.com/KirkDiggler/dicegraph/internal/services/simulator"
	"github.com/KirkDiggler/dicegraph/internal/services/tracker"
)

// application holds everything a command needs
type application struct {
	redisClient *redis.Client

	prefs preferences.Service

	roller      *tabs.RollerTab
	simulator   *tabs.SimulatorTab
	preferences *tabs.PreferencesTab
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}

	rolls, sims, err := app.rollSetRepositories(cfg)
	if err != nil {
		return nil, err
	}

	prefFile, err := prefRepo.NewFile(&prefRepo.Config{Path: cfg.PreferencesPath()})
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences repository: %w", err)
	}

	app.prefs, err = preferences.New(ctx, &preferences.Config{Repository: prefFile})
	if err != nil {
		return nil, err
	}

	clk := clock.New()

	fairnessSvc, err := fairness.New(&fairness.Config{
		SignificanceLevel: fairness.DefaultSignificanceLevel,
		MinExpected:       fairness.DefaultMinExpected,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fairness service: %w", err)
	}

	messagingSvc := messaging.New(nil)

	trackerSvc, err := tracker.New(&tracker.Config{
		Repository: rolls,
		Clock:      clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker service: %w", err)
	}

	simulatorSvc, err := simulator.New(&simulator.Config{
		Workers:       cfg.SimulationWorkers,
		Clock:         clk,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulator service: %w", err)
	}

	app.roller, err = tabs.NewRollerTab(&tabs.RollerConfig{
		Tracker:     trackerSvc,
		Fairness:    fairnessSvc,
		Messaging:   messagingSvc,
		Preferences: app.prefs,
	})
	if err != nil {
		return nil, err
	}

	app.simulator, err = tabs.NewSimulatorTab(&tabs.SimulatorConfig{
		Simulator:         simulatorSvc,
		Fairness:          fairnessSvc,
		Messaging:         messagingSvc,
		Preferences:       app.prefs,
		Repository:        sims,
		Clock:             clk,
		LargeRunThreshold: cfg.LargeSimulationRolls,
	})
	if err != nil {
		return nil, err
	}

	app.preferences, err = tabs.NewPreferencesTab(&tabs.PreferencesConfig{
		Preferences:  app.prefs,
		Messaging:    messagingSvc,
		Repositories: []rollset.Repository{rolls, sims},
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("application ready", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return app, nil
}

// rollSetRepositories returns the stores of hand-recorded sets and of simulations
func (a *application) rollSetRepositories(cfg *config.Config) (rollset.Repository, rollset.Repository, error) {
	if cfg.Backend == config.BackendRedis {
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		rolls, err := rollset.NewRedis(&rollset.RedisConfig{RedisClient: a.redisClient, Namespace: "rolls"})
		if err != nil {
			a.redisClient.Close()
			return nil, nil, fmt.Errorf("failed to create roll set repository: %w", err)
		}
		sims, err := rollset.NewRedis(&rollset.RedisConfig{RedisClient: a.redisClient, Namespace: "simulations"})
		if err != nil {
			a.redisClient.Close()
			return nil, nil, fmt.Errorf("failed to create simulation repository: %w", err)
		}
		return rolls, sims, nil
	}

	rolls, err := rollset.NewFile(&rollset.FileConfig{Dir: cfg.RollSetDir()})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create roll set repository: %w", err)
	}
	sims, err := rollset.NewFile(&rollset.FileConfig{Dir: cfg.SimulationDir()})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create simulation repository: %w", err)
	}
	return rolls, sims, nil
}

// Close releases the Redis connection, if any
func (a *application) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}
