package rollset

import (
	"context"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dicegraph/internal/repositories/rollset Repository

// Repository defines the interface for roll set persistence
type Repository interface {
	// SaveRollSet persists a roll set under a name, replacing any previous version
	SaveRollSet(ctx context.Context, input *SaveRollSetInput) error

	// GetRollSet retrieves a roll set by name
	GetRollSet(ctx context.Context, input *GetRollSetInput) (*models.RollSet, error)

	// ListRollSets returns the names of all saved roll sets
	ListRollSets(ctx context.Context) (*ListRollSetsOutput, error)

	// DeleteRollSet removes a roll set
	DeleteRollSet(ctx context.Context, input *DeleteRollSetInput) error

	// DeleteAll removes every roll set in the repository
	DeleteAll(ctx context.Context) (*DeleteAllOutput, error)
}
