package models

import (
	"fmt"
	"strings"
)

// TallyMode decides what a multi-die roll contributes to a RollStore
type TallyMode string

const (
	// TallyModeFaces records every die of a roll as its own face value
	TallyModeFaces TallyMode = "faces"

	// TallyModeSum records the sum of the dice of a roll
	TallyModeSum TallyMode = "sum"
)

// IsValid reports whether m is a known tally mode
func (m TallyMode) IsValid() bool {
	return m == TallyModeFaces || m == TallyModeSum
}

const (
	// MaxDiceCount is the largest number of dice thrown per roll
	MaxDiceCount = 100

	// MaxFaceCount is the largest number of faces on a die
	MaxFaceCount = 1000

	// MaxNameLength is the longest set name in bytes
	MaxNameLength = 256
)

// DiceConfig describes a named set of identical dice
type DiceConfig struct {
	// Name is the user-facing label of the set
	Name string `json:"name"`

	// DiceCount is the number of dice thrown per roll
	DiceCount int `json:"dice_count"`

	// FaceCount is the number of faces on each die
	FaceCount int `json:"face_count"`

	// Mode decides whether faces or sums are tallied
	Mode TallyMode `json:"mode"`
}

// NewDiceConfig builds a validated config. An empty mode defaults to faces.
func NewDiceConfig(name string, diceCount, faceCount int, mode TallyMode) (DiceConfig, error) {
	if mode == "" {
		mode = TallyModeFaces
	}

	cfg := DiceConfig{
		Name:      strings.TrimSpace(name),
		DiceCount: diceCount,
		FaceCount: faceCount,
		Mode:      mode,
	}

	if err := cfg.Validate(); err != nil {
		return DiceConfig{}, err
	}

	return cfg, nil
}

// Validate checks the invariants of a dice configuration
func (c DiceConfig) Validate() error {
	if c.DiceCount <= 0 || c.DiceCount > MaxDiceCount {
		return fmt.Errorf("%w: dice count must be between 1 and %d, got %d", ErrInvalidConfig, MaxDiceCount, c.DiceCount)
	}
	if c.FaceCount < 2 || c.FaceCount > MaxFaceCount {
		return fmt.Errorf("%w: face count must be between 2 and %d, got %d", ErrInvalidConfig, MaxFaceCount, c.FaceCount)
	}
	if len(c.Name) > MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d bytes", ErrInvalidConfig, MaxNameLength)
	}
	if !c.Mode.IsValid() {
		return fmt.Errorf("%w: unknown tally mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// Min returns the smallest value a RollStore with this config accepts
func (c DiceConfig) Min() int {
	if c.Mode == TallyModeSum {
		return c.DiceCount
	}
	return 1
}

// Max returns the largest value a RollStore with this config accepts
func (c DiceConfig) Max() int {
	if c.Mode == TallyModeSum {
		return c.DiceCount * c.FaceCount
	}
	return c.FaceCount
}

// Categories returns the number of distinct values that can be tallied
func (c DiceConfig) Categories() int {
	return c.Max() - c.Min() + 1
}

// EntriesPerRoll returns how many values one physical roll contributes
func (c DiceConfig) EntriesPerRoll() int {
	if c.Mode == TallyModeSum {
		return 1
	}
	return c.DiceCount
}

// Contains reports whether value is inside [Min, Max]
func (c DiceConfig) Contains(value int) bool {
	return value >= c.Min() && value <= c.Max()
}

// String renders the config in dice notation, e.g. "2d6 (sum)"
func (c DiceConfig) String() string {
	return fmt.Sprintf("%dd%d (%s)", c.DiceCount, c.FaceCount, c.Mode)
}
