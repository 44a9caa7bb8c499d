package models

// CategoryResult is the observed and expected count of one value
type CategoryResult struct {
	Value    int
	Observed int64
	Expected float64
}

// SummaryStats describes the observed values
type SummaryStats struct {
	Mean         float64
	StdDev       float64
	Median       float64
	ExpectedMean float64

	// LargestResidual is the biggest |observed-expected|/sqrt(expected)
	LargestResidual float64

	// CountSpread is the standard deviation of the per-category counts
	CountSpread float64
}

// FairnessReport is the result of a chi-square goodness-of-fit test.
// It is derived from a RollStore snapshot and never modified.
type FairnessReport struct {
	// ChiSquare is the test statistic
	ChiSquare float64

	// DegreesOfFreedom is the number of categories minus one
	DegreesOfFreedom int

	// PValue is the probability of a deviation at least this large for fair dice
	PValue float64

	// SignificanceLevel is the alpha the verdict was made at
	SignificanceLevel float64

	// IsFair is true when PValue > SignificanceLevel
	IsFair bool

	// Total is the number of values tested
	Total int64

	Categories []CategoryResult

	// MinExpected is the smallest expected count over all categories
	MinExpected float64

	// LowExpected lists values whose expected count is below the validity threshold
	LowExpected []int

	Summary SummaryStats

	Warnings []string
}
