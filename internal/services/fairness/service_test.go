package fairness

import (
	"context"
	"math"
	"testing"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/stretchr/testify/suite"
)

type FairnessServiceTestSuite struct {
	suite.Suite
	service Service
	ctx     context.Context
	d6      models.DiceConfig
	twoD6   models.DiceConfig
}

func (s *FairnessServiceTestSuite) SetupTest() {
	svc, err := New(nil)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()

	s.d6, err = models.NewDiceConfig("d6", 1, 6, models.TallyModeFaces)
	s.Require().NoError(err)
	s.twoD6, err = models.NewDiceConfig("2d6", 2, 6, models.TallyModeSum)
	s.Require().NoError(err)
}

func TestFairnessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FairnessServiceTestSuite))
}

func (s *FairnessServiceTestSuite) storeWith(cfg models.DiceConfig, counts map[int]int) *models.RollStore {
	store, err := models.NewRollStore(cfg)
	s.Require().NoError(err)
	for v, n := range counts {
		for i := 0; i < n; i++ {
			s.Require().NoError(store.RecordRoll(v))
		}
	}
	return store
}

func (s *FairnessServiceTestSuite) TestPerfectlyUniformIsFair() {
	store := s.storeWith(s.d6, map[int]int{1: 100, 2: 100, 3: 100, 4: 100, 5: 100, 6: 100})

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().NoError(err)

	report := out.Report
	s.InDelta(0, report.ChiSquare, 1e-9)
	s.Equal(5, report.DegreesOfFreedom)
	s.InDelta(1, report.PValue, 1e-9)
	s.True(report.IsFair)
	s.Equal(DefaultSignificanceLevel, report.SignificanceLevel)
	s.Equal(int64(600), report.Total)
	s.InDelta(100, report.MinExpected, 1e-9)
	s.Empty(report.LowExpected)
	s.Empty(report.Warnings)
	s.InDelta(3.5, report.Summary.Mean, 1e-9)
	s.InDelta(3.5, report.Summary.ExpectedMean, 1e-9)
	s.InDelta(0, report.Summary.CountSpread, 1e-9)
}

func (s *FairnessServiceTestSuite) TestAllOnOneFaceIsUnfair() {
	store := s.storeWith(s.d6, map[int]int{6: 600})

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().NoError(err)

	report := out.Report
	s.InDelta(3000, report.ChiSquare, 1e-6)
	s.Less(report.PValue, 1e-10)
	s.False(report.IsFair)
	s.InDelta(50, report.Summary.LargestResidual, 1e-9)
	s.InDelta(6, report.Summary.Median, 1e-9)
}

func (s *FairnessServiceTestSuite) TestKnownPValue() {
	store := s.storeWith(s.d6, map[int]int{1: 10, 2: 10, 3: 10, 4: 10, 5: 10, 6: 40})
	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().NoError(err)

	// expected 15 per face: 5*(25/15) + 625/15 = 50
	s.InDelta(50, out.Report.ChiSquare, 1e-9)
	s.Less(out.Report.PValue, 0.001)

	// chi-square 6.0 with 5 degrees of freedom has p = 0.30622
	store = s.storeWith(s.d6, map[int]int{1: 12, 2: 18, 3: 15, 4: 15, 5: 9, 6: 21})
	out, err = s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().NoError(err)
	s.InDelta(6.0, out.Report.ChiSquare, 1e-9)
	s.InDelta(0.30622, out.Report.PValue, 1e-4)
	s.True(out.Report.IsFair)
}

func (s *FairnessServiceTestSuite) TestSignificanceLevelDecidesVerdict() {
	store := s.storeWith(s.d6, map[int]int{1: 12, 2: 18, 3: 15, 4: 15, 5: 9, 6: 21})

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store, SignificanceLevel: 0.5})
	s.Require().NoError(err)
	s.False(out.Report.IsFair)

	_, err = s.service.Evaluate(s.ctx, &EvaluateInput{Store: store, SignificanceLevel: 1.5})
	s.ErrorIs(err, models.ErrInvalidConfig)
}

func (s *FairnessServiceTestSuite) TestInsufficientData() {
	empty := s.storeWith(s.d6, nil)
	_, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: empty})
	s.ErrorIs(err, models.ErrInsufficientData)

	small := s.storeWith(s.d6, map[int]int{1: 3, 2: 3, 3: 3, 4: 3, 5: 3, 6: 3})
	_, err = s.service.Evaluate(s.ctx, &EvaluateInput{Store: small})
	s.ErrorIs(err, models.ErrInsufficientData)
	s.Contains(err.Error(), "need at least 30 rolls, have 18")

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: small, AllowLowCounts: true})
	s.Require().NoError(err)
	s.Len(out.Report.LowExpected, 6)
	s.Len(out.Report.Warnings, 1)
	s.Equal(int64(30), out.RequiredRolls)

	_, err = s.service.Evaluate(s.ctx, nil)
	s.ErrorIs(err, models.ErrInsufficientData)
}

func (s *FairnessServiceTestSuite) TestSumModeUsesExactDistribution() {
	// 36 * 10 rolls distributed exactly like two fair dice
	counts := map[int]int{}
	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			counts[a+b] += 10
		}
	}
	store := s.storeWith(s.twoD6, counts)

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().NoError(err)
	s.InDelta(0, out.Report.ChiSquare, 1e-9)
	s.Equal(10, out.Report.DegreesOfFreedom)
	s.True(out.Report.IsFair)
	s.InDelta(7, out.Report.Summary.ExpectedMean, 1e-9)
	s.InDelta(7, out.Report.Summary.Mean, 1e-9)
	s.Equal(int64(180), out.RequiredRolls)
}

func (s *FairnessServiceTestSuite) TestManyDiceSumSaturatesRequiredRolls() {
	cfg, err := models.NewDiceConfig("hundred", models.MaxDiceCount, 6, models.TallyModeSum)
	s.Require().NoError(err)
	store := s.storeWith(cfg, map[int]int{340: 400, 350: 300, 360: 300})

	_, err = s.service.Evaluate(s.ctx, &EvaluateInput{Store: store})
	s.Require().ErrorIs(err, models.ErrInsufficientData)
	s.NotContains(err.Error(), "-")

	out, err := s.service.Evaluate(s.ctx, &EvaluateInput{Store: store, AllowLowCounts: true})
	s.Require().NoError(err)
	s.Equal(int64(math.MaxInt64), out.RequiredRolls)
	s.False(math.IsNaN(out.Report.ChiSquare))
	s.False(math.IsInf(out.Report.ChiSquare, 0))
	s.GreaterOrEqual(out.Report.PValue, 0.0)
	s.LessOrEqual(out.Report.PValue, 1.0)
	s.Len(out.Report.Warnings, 1)
}

func (s *FairnessServiceTestSuite) TestPoolZeroTails() {
	probs := []float64{0, 0, 0.25, 0.5, 0.25, 0}
	counts := []int64{1, 2, 3, 4, 5, 6}

	first, last := poolZeroTails(probs, counts)
	s.Equal(2, first)
	s.Equal(4, last)
	s.Equal(int64(6), counts[2])
	s.Equal(int64(11), counts[4])

	first, last = poolZeroTails([]float64{0.5, 0.5}, []int64{1, 1})
	s.Equal(0, first)
	s.Equal(1, last)
}

func (s *FairnessServiceTestSuite) TestRequiredRolls() {
	s.Equal(int64(30), requiredRolls(5, 1.0/6))
	s.Equal(int64(math.MaxInt64), requiredRolls(5, 0))
	s.Equal(int64(math.MaxInt64), requiredRolls(5, 1e-300))
}

func (s *FairnessServiceTestSuite) TestExpectedProbabilities() {
	probs := ExpectedProbabilities(s.twoD6)
	s.Len(probs, 11)
	s.InDelta(1.0/36, probs[0], 1e-12)
	s.InDelta(6.0/36, probs[5], 1e-12)

	cfg, err := models.NewDiceConfig("3d4", 3, 4, models.TallyModeSum)
	s.Require().NoError(err)
	sum := 0.0
	for _, p := range ExpectedProbabilities(cfg) {
		sum += p
	}
	s.InDelta(1, sum, 1e-12)

	s.InDelta(0.25, ExpectedProbabilities(models.DiceConfig{DiceCount: 3, FaceCount: 4, Mode: models.TallyModeFaces})[0], 1e-12)
}

func (s *FairnessServiceTestSuite) TestNewRejectsInvalidAlpha() {
	_, err := New(&Config{SignificanceLevel: -0.1})
	s.ErrorIs(err, models.ErrInvalidConfig)

	svc, err := New(&Config{SignificanceLevel: 0.01, MinExpected: 1})
	s.Require().NoError(err)
	s.Equal(1.0, svc.minExpected)
	s.Equal(0.01, svc.significanceLevel)
}
