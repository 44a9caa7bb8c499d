package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/repositories/rollset"
)

type service struct {
	repo  rollset.Repository
	clock clock.Clock

	mu      sync.Mutex
	name    string
	current *models.RollStore
}

// New creates a new tracker service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		repo:  cfg.Repository,
		clock: cfg.Clock,
	}, nil
}

// ApplyConfig makes the config active. A saved set with the same name is
// restored when its dice match, otherwise an empty store is started.
func (s *service) ApplyConfig(ctx context.Context, input *ApplyConfigInput) (*ApplyConfigOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", models.ErrInvalidConfig)
	}

	if err := input.Config.Validate(); err != nil {
		return nil, err
	}

	name := rollset.Key(input.Config.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	store, loaded, err := s.restoreOrCreate(ctx, name, input.Config)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.name = name
	s.current = store
	s.mu.Unlock()

	slog.InfoContext(ctx, "dice config applied",
		"name", name,
		"config", input.Config.String(),
		"loaded", loaded,
		"total", store.Total(),
	)

	return &ApplyConfigOutput{
		Name:   name,
		Loaded: loaded,
		Total:  store.Total(),
	}, nil
}

func (s *service) restoreOrCreate(ctx context.Context, name string, cfg models.DiceConfig) (*models.RollStore, bool, error) {
	set, err := s.repo.GetRollSet(ctx, &rollset.GetRollSetInput{Name: name})
	if errors.Is(err, models.ErrNotFound) {
		store, err := models.NewRollStore(cfg)
		return store, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load roll set %q: %w", name, err)
	}

	if set.Config.DiceCount != cfg.DiceCount ||
		set.Config.FaceCount != cfg.FaceCount ||
		set.Config.Mode != cfg.Mode {
		return nil, false, fmt.Errorf("%w: saved set %q is %s", models.ErrConfigMismatch, name, set.Config)
	}

	store, err := models.RestoreRollStore(set)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// RecordDice records one roll and saves the set. When the save fails the roll
// stays recorded in memory and the error is returned.
func (s *service) RecordDice(ctx context.Context, input *RecordDiceInput) (*RecordDiceOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", models.ErrInvalidValue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoActiveSet
	}

	if err := s.current.RecordDice(input.Faces); err != nil {
		return nil, err
	}

	if err := s.save(ctx, s.name); err != nil {
		return &RecordDiceOutput{Total: s.current.Total()}, err
	}

	return &RecordDiceOutput{Total: s.current.Total()}, nil
}

// Reset clears the active set and saves it
func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoActiveSet
	}

	s.current.Reset()
	return s.save(ctx, s.name)
}

// SaveSet writes the active set
func (s *service) SaveSet(ctx context.Context, input *SaveSetInput) (*SaveSetOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoActiveSet
	}

	name := s.name
	if input != nil && input.Name != "" {
		name = rollset.Key(input.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
	}

	if err := s.save(ctx, name); err != nil {
		return nil, err
	}

	return &SaveSetOutput{Name: name}, nil
}

// LoadSet makes a saved set active
func (s *service) LoadSet(ctx context.Context, input *LoadSetInput) (*LoadSetOutput, error) {
	if input == nil {
		return nil, ErrEmptyName
	}

	name := rollset.Key(input.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	set, err := s.repo.GetRollSet(ctx, &rollset.GetRollSetInput{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to load roll set %q: %w", name, err)
	}

	store, err := models.RestoreRollStore(set)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.name = name
	s.current = store
	s.mu.Unlock()

	return &LoadSetOutput{
		Name:   name,
		Config: store.Config(),
		Total:  store.Total(),
	}, nil
}

// ListSets returns the saved set names
func (s *service) ListSets(ctx context.Context) (*ListSetsOutput, error) {
	out, err := s.repo.ListRollSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roll sets: %w", err)
	}

	return &ListSetsOutput{Names: out.Names}, nil
}

// DeleteSet removes a saved set. The active set stays in memory.
func (s *service) DeleteSet(ctx context.Context, input *DeleteSetInput) error {
	if input == nil || rollset.Key(input.Name) == "" {
		return ErrEmptyName
	}

	if err := s.repo.DeleteRollSet(ctx, &rollset.DeleteRollSetInput{Name: input.Name}); err != nil {
		return fmt.Errorf("failed to delete roll set %q: %w", input.Name, err)
	}
	return nil
}

// Current returns the active store
func (s *service) Current() *models.RollStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// save must be called with mu held
func (s *service) save(ctx context.Context, name string) error {
	err := s.repo.SaveRollSet(ctx, &rollset.SaveRollSetInput{
		Name: name,
		Set:  s.current.Snapshot(s.clock.Now()),
	})
	if err != nil {
		return fmt.Errorf("failed to save roll set %q: %w", name, err)
	}
	return nil
}
