package tracker

import (
	"github.com/KirkDiggler/dicegraph/internal/common/clock"
	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/repositories/rollset"
)

// Config holds configuration for the tracker service
type Config struct {
	// Repository stores hand-recorded roll sets
	Repository rollset.Repository

	// Clock stamps saved sets
	Clock clock.Clock
}

// ApplyConfigInput contains parameters for applying a dice configuration
type ApplyConfigInput struct {
	Config models.DiceConfig
}

// ApplyConfigOutput describes the set that became active
type ApplyConfigOutput struct {
	// Name is the storage name of the active set
	Name string

	// Loaded is true when a previously saved set was restored
	Loaded bool

	// Total is the number of values already in the set
	Total int64
}

// RecordDiceInput contains the faces shown by each die of one roll
type RecordDiceInput struct {
	Faces []int
}

// RecordDiceOutput contains the state after a roll was recorded
type RecordDiceOutput struct {
	Total int64
}

// SaveSetInput contains parameters for saving the active set
type SaveSetInput struct {
	// Name overrides the config name when set
	Name string
}

// SaveSetOutput reports the name the set was saved under
type SaveSetOutput struct {
	Name string
}

// LoadSetInput contains parameters for loading a saved set
type LoadSetInput struct {
	Name string
}

// LoadSetOutput describes the loaded set
type LoadSetOutput struct {
	Name   string
	Config models.DiceConfig
	Total  int64
}

// ListSetsOutput contains the saved set names
type ListSetsOutput struct {
	Names []string
}

// DeleteSetInput contains parameters for deleting a saved set
type DeleteSetInput struct {
	Name string
}
