package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/KirkDiggler/dicegraph/internal/models"
	prefRepo "github.com/KirkDiggler/dicegraph/internal/repositories/preferences"
)

// Config holds configuration for the preferences service
type Config struct {
	Repository prefRepo.Repository
}

type service struct {
	repo prefRepo.Repository

	mu    sync.RWMutex
	prefs *models.Preferences
}

// New loads the stored preferences and returns the preferences object. A
// corrupt preferences file is logged and replaced by the defaults; the next
// Set overwrites it.
func New(ctx context.Context, cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	prefs, err := cfg.Repository.LoadPreferences(ctx)
	switch {
	case errors.Is(err, models.ErrCorruptData):
		slog.WarnContext(ctx, "preferences unreadable, using defaults", "error", err)
		prefs = models.NewPreferences(nil)
	case err != nil:
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	return &service{
		repo:  cfg.Repository,
		prefs: prefs,
	}, nil
}

// Get returns the value of key or def when unset
func (s *service) Get(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Get(key, def)
}

// Set stores one value and flushes
func (s *service) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany validates every value before applying any of them. When the flush
// fails the previous values are restored.
func (s *service) SetMany(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		if err := Validate(k, v); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.prefs.Clone()
	for k, v := range values {
		s.prefs.Set(k, v)
	}

	if err := s.repo.SavePreferences(ctx, &prefRepo.SavePreferencesInput{
		Preferences: s.prefs.Clone(),
	}); err != nil {
		s.prefs = previous
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	slog.DebugContext(ctx, "preferences updated", "keys", len(values))
	return nil
}

// Snapshot returns a copy of the current preferences
func (s *service) Snapshot() *models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// Flush writes the current preferences
func (s *service) Flush(ctx context.Context) error {
	s.mu.RLock()
	snapshot := s.prefs.Clone()
	s.mu.RUnlock()

	if err := s.repo.SavePreferences(ctx, &prefRepo.SavePreferencesInput{
		Preferences: snapshot,
	}); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Validate checks a value against the rules of the known keys. Unknown keys
// accept any value.
func Validate(key, value string) error {
	switch key {
	case models.PrefDarkMode:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", models.ErrInvalidConfig, key, value)
		}
	case models.PrefDefaultFaces:
		n, err := strconv.Atoi(value)
		if err != nil || n < 2 || n > models.MaxFaceCount {
			return fmt.Errorf("%w: %s must be an integer between 2 and %d, got %q", models.ErrInvalidConfig, key, models.MaxFaceCount, value)
		}
	case models.PrefWindowWidth, models.PrefWindowHeight:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", models.ErrInvalidConfig, key, value)
		}
	case models.PrefStatisticalAlpha:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f >= 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %q", models.ErrInvalidConfig, key, value)
		}
	case models.PrefMessageTone:
		if value != models.ToneNeutral && value != models.ToneFunny {
			return fmt.Errorf("%w: %s must be %s or %s, got %q", models.ErrInvalidConfig, key, models.ToneNeutral, models.ToneFunny, value)
		}
	case "":
		return fmt.Errorf("%w: preference key cannot be empty", models.ErrInvalidConfig)
	}
	return nil
}
