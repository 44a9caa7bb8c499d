package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/dicegraph/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/dicegraph/internal/common/uuid/mocks"
	"github.com/KirkDiggler/dicegraph/internal/dice"
	diceMocks "github.com/KirkDiggler/dicegraph/internal/dice/mocks"
	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SimulatorServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockClock  *mocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	mockRoller *diceMocks.MockRoller
	ctx        context.Context

	testTime time.Time
	testID   string
	d6       models.DiceConfig
	twoD6    models.DiceConfig
}

func (s *SimulatorServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testID = "test-simulation-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockClock.EXPECT().Since(s.testTime).Return(2 * time.Second).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testID).AnyTimes()

	var err error
	s.d6, err = models.NewDiceConfig("d6", 1, 6, models.TallyModeFaces)
	s.Require().NoError(err)
	s.twoD6, err = models.NewDiceConfig("2d6", 2, 6, models.TallyModeSum)
	s.Require().NoError(err)
}

func (s *SimulatorServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSimulatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SimulatorServiceTestSuite))
}

func (s *SimulatorServiceTestSuite) newService(workers int) Service {
	svc, err := New(&Config{
		Workers:           workers,
		MinRollsPerWorker: 100,
		Clock:             s.mockClock,
		UUIDGenerator:     s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *SimulatorServiceTestSuite) TestNewValidatesDependencies() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *SimulatorServiceTestSuite) TestRunUsesRollerFaces() {
	svc, err := New(&Config{
		Workers:       1,
		NewRoller:     func(int64) dice.Roller { return s.mockRoller },
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(6).Return(3),
		s.mockRoller.EXPECT().Roll(6).Return(4),
		s.mockRoller.EXPECT().Roll(6).Return(6),
		s.mockRoller.EXPECT().Roll(6).Return(6),
	)

	out, err := svc.Run(s.ctx, &RunInput{Config: s.twoD6, RollCount: 2, Seed: 11})
	s.Require().NoError(err)

	result := out.Result
	s.Equal(s.testID, result.ID)
	s.Equal(s.twoD6, result.Config)
	s.Equal(2, result.RequestedRolls)
	s.Equal(int64(11), result.Seed)
	s.Equal(1, result.Workers)
	s.Equal(s.testTime, result.StartedAt)
	s.Equal(2*time.Second, result.Duration)
	s.Equal(int64(1), result.Store.Count(7))
	s.Equal(int64(1), result.Store.Count(12))
}

func (s *SimulatorServiceTestSuite) TestTotalMatchesRollCount() {
	svc := s.newService(4)

	for _, rolls := range []int{1, 99, 100, 101, 1234} {
		out, err := svc.Run(s.ctx, &RunInput{Config: s.twoD6, RollCount: rolls, Seed: 5})
		s.Require().NoError(err)
		s.Equal(int64(rolls), out.Result.Store.Total(), "rolls=%d", rolls)

		var sum int64
		for v, c := range out.Result.Store.Distribution() {
			s.True(s.twoD6.Contains(v))
			sum += c
		}
		s.Equal(int64(rolls), sum)
	}
}

func (s *SimulatorServiceTestSuite) TestFacesModeTalliesEveryDie() {
	cfg, err := models.NewDiceConfig("3d8", 3, 8, models.TallyModeFaces)
	s.Require().NoError(err)

	out, err := s.newService(2).Run(s.ctx, &RunInput{Config: cfg, RollCount: 500, Seed: 9})
	s.Require().NoError(err)
	s.Equal(int64(500*cfg.EntriesPerRoll()), out.Result.Store.Total())
}

func (s *SimulatorServiceTestSuite) TestSeedIsReproducible() {
	svc := s.newService(3)

	a, err := svc.Run(s.ctx, &RunInput{Config: s.d6, RollCount: 1000, Seed: 1234})
	s.Require().NoError(err)
	b, err := svc.Run(s.ctx, &RunInput{Config: s.d6, RollCount: 1000, Seed: 1234})
	s.Require().NoError(err)

	s.Equal(a.Result.Store.Counts(), b.Result.Store.Counts())
	s.Equal(3, a.Result.Workers)
}

func (s *SimulatorServiceTestSuite) TestNegativeSeedIsReproducible() {
	svc := s.newService(3)

	// shard 1 of seed -1 derives seed 0
	a, err := svc.Run(s.ctx, &RunInput{Config: s.d6, RollCount: 1000, Seed: -1})
	s.Require().NoError(err)
	b, err := svc.Run(s.ctx, &RunInput{Config: s.d6, RollCount: 1000, Seed: -1})
	s.Require().NoError(err)

	s.Equal(3, a.Result.Workers)
	s.Equal(a.Result.Store.Counts(), b.Result.Store.Counts())
}

func (s *SimulatorServiceTestSuite) TestRunRejectsOversizedDice() {
	svc := s.newService(1)

	huge := models.DiceConfig{DiceCount: 1 << 32, FaceCount: 1 << 32, Mode: models.TallyModeSum}
	_, err := svc.Run(s.ctx, &RunInput{Config: huge, RollCount: 10})
	s.ErrorIs(err, models.ErrInvalidConfig)
}

func (s *SimulatorServiceTestSuite) TestRunRejectsInvalidInput() {
	svc := s.newService(1)

	_, err := svc.Run(s.ctx, nil)
	s.ErrorIs(err, models.ErrInvalidConfig)

	for _, rolls := range []int{0, -5} {
		_, err = svc.Run(s.ctx, &RunInput{Config: s.d6, RollCount: rolls})
		s.ErrorIs(err, models.ErrInvalidConfig)
	}

	_, err = svc.Run(s.ctx, &RunInput{Config: models.DiceConfig{DiceCount: 0, FaceCount: 6, Mode: models.TallyModeFaces}, RollCount: 10})
	s.ErrorIs(err, models.ErrInvalidConfig)

	_, err = svc.Run(s.ctx, &RunInput{Config: models.DiceConfig{DiceCount: 1, FaceCount: 1, Mode: models.TallyModeFaces}, RollCount: 10})
	s.ErrorIs(err, models.ErrInvalidConfig)
}

func (s *SimulatorServiceTestSuite) TestRunStopsOnCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.newService(2).Run(ctx, &RunInput{Config: s.d6, RollCount: 10_000, Seed: 1})
	s.ErrorIs(err, context.Canceled)
}

func (s *SimulatorServiceTestSuite) TestRunAsyncCallsBackOnce() {
	var wg sync.WaitGroup
	wg.Add(1)

	var got *RunOutput
	var gotErr error
	calls := 0
	s.newService(2).RunAsync(s.ctx, &RunInput{Config: s.d6, RollCount: 600, Seed: 3}, func(out *RunOutput, err error) {
		defer wg.Done()
		calls++
		got, gotErr = out, err
	})
	wg.Wait()

	s.Require().NoError(gotErr)
	s.Equal(1, calls)
	s.Equal(int64(600), got.Result.Store.Total())
}

func (s *SimulatorServiceTestSuite) TestShardSizes() {
	svc, err := New(&Config{Workers: 4, MinRollsPerWorker: 10, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)

	s.Equal([]int{5}, svc.shardSizes(5))
	s.Equal([]int{8, 7}, svc.shardSizes(15))
	s.Equal([]int{26, 25, 25, 25}, svc.shardSizes(101))
}

func (s *SimulatorServiceTestSuite) TestResultName() {
	s.Equal("Test_2d6_1000rolls", ResultName("Test", s.twoD6, 1000))
	s.Equal("Simulation_1d6_30rolls", ResultName("", s.d6, 30))
}
