package preferences

import (
	"context"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

// Service is the process-wide preferences object. It is created once at
// startup and handed to whatever needs settings.
type Service interface {
	// Get returns the value of key or def when unset
	Get(key, def string) string

	// Set validates and stores a value, then flushes the preferences to disk
	Set(ctx context.Context, key, value string) error

	// SetMany applies several values with a single flush
	SetMany(ctx context.Context, values map[string]string) error

	// Snapshot returns a copy of the current preferences
	Snapshot() *models.Preferences

	// Flush writes the current preferences
	Flush(ctx context.Context) error
}
