package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/dicegraph/internal/dice Roller

// Roller rolls fair dice
type Roller interface {
	// Roll returns a uniform value in 1..sides
	Roll(sides int) int
}

// DefaultRoller provides dice rolling backed by math/rand.
// A DefaultRoller must not be shared between goroutines.
type DefaultRoller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for reproducible rolls
	Seed int64
}

// New creates a new dice roller. A zero seed uses the current time.
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return NewSeeded(seed)
}

// NewSeeded creates a roller for exactly seed, zero included
func NewSeeded(seed int64) *DefaultRoller {
	source := rand.NewSource(seed)
	random := rand.New(source)

	return &DefaultRoller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}
