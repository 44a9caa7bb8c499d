package models

import (
	"fmt"
	"time"
)

// RollSet is the persisted form of a RollStore
type RollSet struct {
	// Config is the dice configuration of the set
	Config DiceConfig `json:"config"`

	// Counts maps a value to the number of times it was recorded; zero counts may be omitted
	Counts map[int]int64 `json:"counts"`

	// Total is the number of recorded values
	Total int64 `json:"total"`

	// SavedAt is when the set was last written
	SavedAt time.Time `json:"saved_at"`
}

// RestoreRollStore rebuilds a RollStore from a persisted set. Any violation of
// the store invariants is reported as ErrCorruptData.
func RestoreRollStore(set *RollSet) (*RollStore, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: empty roll set", ErrCorruptData)
	}

	store, err := NewRollStore(set.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	var sum int64
	for v, c := range set.Counts {
		if !set.Config.Contains(v) {
			return nil, fmt.Errorf("%w: value %d outside %d..%d", ErrCorruptData, v, set.Config.Min(), set.Config.Max())
		}
		if c < 0 {
			return nil, fmt.Errorf("%w: negative count %d for value %d", ErrCorruptData, c, v)
		}
		store.counts[v-set.Config.Min()] = c
		sum += c
	}

	if sum != set.Total {
		return nil, fmt.Errorf("%w: counts sum to %d but total is %d", ErrCorruptData, sum, set.Total)
	}
	store.total = sum

	return store, nil
}
