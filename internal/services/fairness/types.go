package fairness

import "github.com/KirkDiggler/dicegraph/internal/models"

const (
	// DefaultSignificanceLevel is the alpha used when none is given
	DefaultSignificanceLevel = 0.05

	// DefaultMinExpected is the usual chi-square validity rule
	DefaultMinExpected = 5.0
)

// Config holds configuration for the fairness service
type Config struct {
	// SignificanceLevel is used when an input leaves it zero
	SignificanceLevel float64

	// MinExpected is the smallest expected count per category for a valid test
	MinExpected float64
}

// EvaluateInput contains parameters for a fairness test
type EvaluateInput struct {
	// Store is the tally to test
	Store *models.RollStore

	// SignificanceLevel overrides the configured alpha when non-zero
	SignificanceLevel float64

	// AllowLowCounts produces a report with a warning instead of failing
	// when a category's expected count is below the minimum
	AllowLowCounts bool
}

// EvaluateOutput contains the result of a fairness test
type EvaluateOutput struct {
	Report *models.FairnessReport

	// RequiredRolls is the total needed for every expected count to reach the minimum
	RequiredRolls int64
}
