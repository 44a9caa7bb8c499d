package preferences

import (
	"context"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dicegraph/internal/repositories/preferences Repository

// Repository defines the interface for preference persistence
type Repository interface {
	// LoadPreferences returns the stored preferences merged over the defaults
	LoadPreferences(ctx context.Context) (*models.Preferences, error)

	// SavePreferences replaces the stored preferences
	SavePreferences(ctx context.Context, input *SavePreferencesInput) error
}

// SavePreferencesInput contains parameters for saving preferences
type SavePreferencesInput struct {
	Preferences *models.Preferences
}
