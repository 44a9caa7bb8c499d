package fairness

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

type service struct {
	significanceLevel float64
	minExpected       float64
}

// New creates a new fairness service. A nil config uses the defaults.
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	alpha := cfg.SignificanceLevel
	if alpha == 0 {
		alpha = DefaultSignificanceLevel
	}
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}

	minExpected := cfg.MinExpected
	if minExpected <= 0 {
		minExpected = DefaultMinExpected
	}

	return &service{
		significanceLevel: alpha,
		minExpected:       minExpected,
	}, nil
}

// Evaluate tests the store against the distribution of fair dice. In faces
// mode every face is equally likely; in sum mode the expected share of each
// sum comes from the exact distribution of the sum of DiceCount fair dice.
func (s *service) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	if input == nil || input.Store == nil {
		return nil, fmt.Errorf("%w: no roll store to evaluate", models.ErrInsufficientData)
	}

	alpha := input.SignificanceLevel
	if alpha == 0 {
		alpha = s.significanceLevel
	}
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}

	store := input.Store
	cfg := store.Config()
	total := store.Total()
	probs := ExpectedProbabilities(cfg)

	if total == 0 {
		return nil, fmt.Errorf("%w: no rolls recorded", models.ErrInsufficientData)
	}

	// sums too unlikely to be representable are pooled into the nearest
	// representable sum so every tested category has a positive expectation
	counts := store.Counts()
	first, last := poolZeroTails(probs, counts)
	base := cfg.Min()

	values := make([]float64, 0, last-first+1)
	observed := make([]float64, 0, last-first+1)
	expected := make([]float64, 0, last-first+1)
	categories := make([]models.CategoryResult, 0, last-first+1)
	var low []int
	minExpected := math.Inf(1)
	minProb := math.Inf(1)

	for i := first; i <= last; i++ {
		v, c := base+i, counts[i]
		e := float64(total) * probs[i]
		values = append(values, float64(v))
		observed = append(observed, float64(c))
		expected = append(expected, e)
		categories = append(categories, models.CategoryResult{Value: v, Observed: c, Expected: e})

		if e < s.minExpected {
			low = append(low, v)
		}
		minExpected = math.Min(minExpected, e)
		minProb = math.Min(minProb, probs[i])
	}

	required := requiredRolls(s.minExpected, minProb)

	var warnings []string
	if len(low) > 0 {
		if !input.AllowLowCounts {
			if required == math.MaxInt64 {
				return nil, fmt.Errorf("%w: %s has sums too unlikely to test reliably, have %d rolls",
					models.ErrInsufficientData, cfg.String(), total)
			}
			return nil, fmt.Errorf("%w: need at least %d rolls, have %d", models.ErrInsufficientData, required, total)
		}
		advice := fmt.Sprintf("need at least %d rolls for a reliable result", required)
		if required == math.MaxInt64 {
			advice = "no practical number of rolls gives a reliable result"
		}
		warnings = append(warnings, fmt.Sprintf("%d of %d categories expect fewer than %.0f rolls; %s",
			len(low), len(categories), s.minExpected, advice))
	}

	chiSquare := stat.ChiSquare(observed, expected)
	df := len(categories) - 1
	pValue := distuv.ChiSquared{K: float64(df)}.Survival(chiSquare)
	pValue = math.Max(0, math.Min(1, pValue))

	summary, err := summarize(cfg, total, values, observed, expected)
	if err != nil {
		return nil, err
	}

	report := &models.FairnessReport{
		ChiSquare:         chiSquare,
		DegreesOfFreedom:  df,
		PValue:            pValue,
		SignificanceLevel: alpha,
		IsFair:            pValue > alpha,
		Total:             total,
		Categories:        categories,
		MinExpected:       minExpected,
		LowExpected:       low,
		Summary:           summary,
		Warnings:          warnings,
	}

	slog.DebugContext(ctx, "fairness evaluated",
		"dice", cfg.String(),
		"total", total,
		"chi_square", chiSquare,
		"df", df,
		"p_value", pValue,
		"fair", report.IsFair)

	return &EvaluateOutput{
		Report:        report,
		RequiredRolls: required,
	}, nil
}

// requiredRolls is the total at which the least likely category expects
// minExpected rolls, saturated at math.MaxInt64
func requiredRolls(minExpected, minProb float64) int64 {
	// the epsilon keeps 5/(1/6) from rounding up to 31
	required := math.Ceil(minExpected/minProb - 1e-9)
	if minProb <= 0 || required >= math.MaxInt64 || math.IsNaN(required) {
		return math.MaxInt64
	}
	return int64(required)
}

// poolZeroTails moves the counts of leading and trailing categories with a
// zero probability into the nearest category with a positive one and returns
// the index range left to test.
func poolZeroTails(probs []float64, counts []int64) (first, last int) {
	first, last = 0, len(probs)-1
	for first < last && probs[first] == 0 {
		first++
	}
	for last > first && probs[last] == 0 {
		last--
	}

	for i := 0; i < first; i++ {
		counts[first] += counts[i]
	}
	for i := last + 1; i < len(counts); i++ {
		counts[last] += counts[i]
	}
	return first, last
}

// ExpectedProbabilities returns the probability of each category of cfg in
// ascending value order, assuming fair dice.
func ExpectedProbabilities(cfg models.DiceConfig) []float64 {
	if cfg.Mode != models.TallyModeSum {
		probs := make([]float64, cfg.Categories())
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return probs
	}

	// dist[k] is the probability that the dice rolled so far sum to k+(dice so far)
	dist := []float64{1}
	face := 1 / float64(cfg.FaceCount)
	for d := 0; d < cfg.DiceCount; d++ {
		next := make([]float64, len(dist)+cfg.FaceCount-1)
		for k, p := range dist {
			if p == 0 {
				continue
			}
			for f := 0; f < cfg.FaceCount; f++ {
				next[k+f] += p * face
			}
		}
		dist = next
	}
	return dist
}

func summarize(cfg models.DiceConfig, total int64, values, observed, expected []float64) (models.SummaryStats, error) {
	summary := models.SummaryStats{
		ExpectedMean: float64(cfg.FaceCount+1) / 2,
		Mean:         stat.Mean(values, observed),
		Median:       stat.Quantile(0.5, stat.Empirical, values, observed),
	}
	if cfg.Mode == models.TallyModeSum {
		summary.ExpectedMean *= float64(cfg.DiceCount)
	}

	// weighted sample deviation needs two observations
	if total > 1 {
		summary.StdDev = stat.StdDev(values, observed)
	}

	residuals := make(stats.Float64Data, len(observed))
	for i := range observed {
		if expected[i] > 0 {
			residuals[i] = math.Abs(observed[i]-expected[i]) / math.Sqrt(expected[i])
		}
	}

	largest, err := stats.Max(residuals)
	if err != nil {
		return summary, fmt.Errorf("largest residual: %w", err)
	}
	summary.LargestResidual = largest

	spread, err := stats.StandardDeviation(stats.Float64Data(observed))
	if err != nil {
		return summary, fmt.Errorf("count spread: %w", err)
	}
	summary.CountSpread = spread

	return summary, nil
}

func checkAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 || math.IsNaN(alpha) {
		return fmt.Errorf("%w: significance level must be in (0, 1), got %v", models.ErrInvalidConfig, alpha)
	}
	return nil
}
