package preferences

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/dicegraph/internal/models"
	prefRepo "github.com/KirkDiggler/dicegraph/internal/repositories/preferences"
	"github.com/KirkDiggler/dicegraph/internal/repositories/preferences/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PreferencesServiceTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *mocks.MockRepository
	ctx      context.Context
	service  Service
}

func (s *PreferencesServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.mockRepo.EXPECT().LoadPreferences(s.ctx).Return(models.NewPreferences(map[string]string{
		models.PrefLastConfig: "Red d6",
	}), nil)

	svc, err := New(s.ctx, &Config{Repository: s.mockRepo})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PreferencesServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPreferencesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PreferencesServiceTestSuite))
}

func (s *PreferencesServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(s.ctx, nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(s.ctx, &Config{})
	s.ErrorIs(err, ErrNilRepository)
}

func (s *PreferencesServiceTestSuite) TestNewFallsBackToDefaultsOnCorruptPreferences() {
	repo := mocks.NewMockRepository(s.mockCtrl)
	repo.EXPECT().LoadPreferences(s.ctx).Return(nil, fmt.Errorf("%w: bad json", models.ErrCorruptData))

	svc, err := New(s.ctx, &Config{Repository: repo})
	s.Require().NoError(err)
	s.Equal(models.DefaultPreferences(), svc.Snapshot().Values)

	repo.EXPECT().
		SavePreferences(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *prefRepo.SavePreferencesInput) error {
			s.Equal("true", input.Preferences.Get(models.PrefDarkMode, ""))
			s.Equal("6", input.Preferences.Get(models.PrefDefaultFaces, ""))
			return nil
		})
	s.NoError(svc.Set(s.ctx, models.PrefDarkMode, "true"))
}

func (s *PreferencesServiceTestSuite) TestNewFailsOnUnreadablePreferences() {
	repo := mocks.NewMockRepository(s.mockCtrl)
	repo.EXPECT().LoadPreferences(s.ctx).Return(nil, errors.New("permission denied"))

	_, err := New(s.ctx, &Config{Repository: repo})
	s.Error(err)
}

func (s *PreferencesServiceTestSuite) TestGetReturnsLoadedValues() {
	s.Equal("Red d6", s.service.Get(models.PrefLastConfig, ""))
	s.Equal("6", s.service.Get(models.PrefDefaultFaces, ""))
	s.Equal("def", s.service.Get("unknown", "def"))
}

func (s *PreferencesServiceTestSuite) TestSetFlushes() {
	s.mockRepo.EXPECT().
		SavePreferences(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *prefRepo.SavePreferencesInput) error {
			s.Equal("true", input.Preferences.Get(models.PrefDarkMode, ""))
			return nil
		})

	s.Require().NoError(s.service.Set(s.ctx, models.PrefDarkMode, "true"))
	s.True(s.service.Snapshot().Bool(models.PrefDarkMode, false))
}

func (s *PreferencesServiceTestSuite) TestSetRejectsInvalidValues() {
	testCases := []struct {
		key   string
		value string
	}{
		{key: models.PrefDarkMode, value: "dim"},
		{key: models.PrefDefaultFaces, value: "1"},
		{key: models.PrefDefaultFaces, value: "100000"},
		{key: models.PrefMessageTone, value: "sarcastic"},
		{key: models.PrefWindowWidth, value: "-5"},
		{key: models.PrefStatisticalAlpha, value: "1.5"},
		{key: "", value: "x"},
	}

	for _, tc := range testCases {
		s.Run(tc.key, func() {
			err := s.service.Set(s.ctx, tc.key, tc.value)
			s.ErrorIs(err, models.ErrInvalidConfig)
		})
	}
}

func (s *PreferencesServiceTestSuite) TestSetRollsBackWhenFlushFails() {
	s.mockRepo.EXPECT().SavePreferences(s.ctx, gomock.Any()).Return(errors.New("disk full"))

	err := s.service.SetMany(s.ctx, map[string]string{
		models.PrefDarkMode:     "true",
		models.PrefDefaultFaces: "20",
	})
	s.Error(err)
	s.Equal("false", s.service.Get(models.PrefDarkMode, ""))
	s.Equal("6", s.service.Get(models.PrefDefaultFaces, ""))
}

func (s *PreferencesServiceTestSuite) TestSnapshotIsACopy() {
	snapshot := s.service.Snapshot()
	snapshot.Set(models.PrefLastConfig, "changed")

	s.Equal("Red d6", s.service.Get(models.PrefLastConfig, ""))
}

func (s *PreferencesServiceTestSuite) TestFlush() {
	s.mockRepo.EXPECT().SavePreferences(s.ctx, gomock.Any()).Return(nil)
	s.NoError(s.service.Flush(s.ctx))
}
