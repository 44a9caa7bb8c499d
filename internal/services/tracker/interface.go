package tracker

import (
	"context"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

// Service keeps the roll set that is currently being recorded by hand
type Service interface {
	// ApplyConfig makes cfg the active set, loading a saved set of the same name if one exists
	ApplyConfig(ctx context.Context, input *ApplyConfigInput) (*ApplyConfigOutput, error)

	// RecordDice records one physical roll and saves the active set
	RecordDice(ctx context.Context, input *RecordDiceInput) (*RecordDiceOutput, error)

	// Reset clears the active set and saves the empty set
	Reset(ctx context.Context) error

	// SaveSet writes the active set, optionally under another name
	SaveSet(ctx context.Context, input *SaveSetInput) (*SaveSetOutput, error)

	// LoadSet replaces the active set with a saved one
	LoadSet(ctx context.Context, input *LoadSetInput) (*LoadSetOutput, error)

	// ListSets returns the names of the saved sets
	ListSets(ctx context.Context) (*ListSetsOutput, error)

	// DeleteSet removes a saved set
	DeleteSet(ctx context.Context, input *DeleteSetInput) error

	// Current returns the active store, or nil before a config is applied.
	// Callers must treat the store as read-only.
	Current() *models.RollStore
}
