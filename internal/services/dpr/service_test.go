package dpr_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	mockaccuracy "github.com/KirkDiggler/dnd-dpr/internal/accuracy/mock"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
	mockreports "github.com/KirkDiggler/dnd-dpr/internal/repositories/reports/mock"
	"github.com/KirkDiggler/dnd-dpr/internal/services/dpr"
	"github.com/KirkDiggler/dnd-dpr/internal/testutils"
	"github.com/KirkDiggler/dnd-dpr/internal/uuid"
)

var fixedNow = time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)

type ServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	repo *mockreports.MockRepository
	svc  dpr.Service
	ctx  context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mockreports.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	svc, err := dpr.NewService(&dpr.ServiceConfig{
		Repository:    s.repo,
		UUIDGenerator: uuid.NewSequenceGenerator("id"),
		Now:           func() time.Time { return fixedNow },
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) baselineInput() *dpr.CompareInput {
	return &dpr.CompareInput{
		Inputs: []calculator.Calculable{testutils.CreateTestCalculable(s.T(), "Baseline Rogue")},
	}
}

func (s *ServiceTestSuite) TestCompare_MissComputesAndSaves() {
	input := s.baselineInput()
	input.Inputs[0].ID = ""

	var saved *reports.Report
	s.repo.EXPECT().GetByCacheKey(s.ctx, gomock.Any()).Return(nil, dnderr.NotFound("no report"))
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *reports.Report) error {
		saved = r
		return nil
	})

	report, err := s.svc.Compare(s.ctx, input)
	s.Require().NoError(err)

	s.Equal("id-2", report.ID)
	s.Equal(difficulty.BandEqual, report.Band)
	s.Equal(fixedNow, report.CreatedAt)
	s.NotEmpty(report.CacheKey)
	s.Require().Len(report.Series, 1)
	s.Equal("id-1", report.Series[0].ID)
	s.InDelta(1.0, *report.Series[0].Red[10], 1e-12)
	s.Same(report, saved)

	// caller's slice is untouched
	s.Empty(input.Inputs[0].ID)
}

func (s *ServiceTestSuite) TestCompare_HitSkipsComputation() {
	cached := testutils.CreateTestReport("cached", "key", fixedNow.Add(-time.Minute))
	s.repo.EXPECT().GetByCacheKey(s.ctx, gomock.Any()).Return(cached, nil)

	report, err := s.svc.Compare(s.ctx, s.baselineInput())
	s.Require().NoError(err)
	s.Equal("cached", report.ID)
	s.Equal("Baseline Rogue", report.Series[0].ID)
}

func (s *ServiceTestSuite) TestCompare_CacheErrorsAreNotFatal() {
	s.repo.EXPECT().GetByCacheKey(s.ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(errors.New("redis down"))

	report, err := s.svc.Compare(s.ctx, s.baselineInput())
	s.Require().NoError(err)
	s.NotNil(report)
}

func (s *ServiceTestSuite) TestCompare_FailuresAreNotCached() {
	input := s.baselineInput()
	input.Inputs[0].Variant = "hexblade"
	s.repo.EXPECT().GetByCacheKey(s.ctx, gomock.Any()).Return(nil, dnderr.NotFound("no report"))

	report, err := s.svc.Compare(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsUnsupportedVariant(err))
	s.Require().NotNil(report)
	s.Len(report.Series[0].Failures, difficulty.Levels)
}

func (s *ServiceTestSuite) TestCompare_CustomProviderSkipsCache() {
	provider := mockaccuracy.NewMockProvider(s.ctrl)
	provider.EXPECT().VsArmor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(accuracy.Result{Hit: 0.5, Crit: 0.05}, nil).AnyTimes()
	provider.EXPECT().VsSave(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(accuracy.SaveResult{Fail: 0.5}, nil).AnyTimes()

	svc, err := dpr.NewService(&dpr.ServiceConfig{
		Repository:    s.repo,
		Provider:      provider,
		UUIDGenerator: uuid.NewSequenceGenerator("id"),
		Now:           func() time.Time { return fixedNow },
	})
	s.Require().NoError(err)

	// no GetByCacheKey expected
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	report, err := svc.Compare(s.ctx, s.baselineInput())
	s.Require().NoError(err)
	s.Empty(report.CacheKey)
	s.InDelta(1.0, *report.Series[0].Red[0], 1e-12)
}

func (s *ServiceTestSuite) TestCompare_RejectsBadInput() {
	_, err := s.svc.Compare(s.ctx, nil)
	s.True(dnderr.IsInvalidParameter(err))

	_, err = s.svc.Compare(s.ctx, &dpr.CompareInput{})
	s.True(dnderr.IsInvalidParameter(err))

	input := s.baselineInput()
	input.Band = "deadly"
	_, err = s.svc.Compare(s.ctx, input)
	s.True(dnderr.IsInvalidParameter(err))

	_, err = s.svc.CompareAllBands(s.ctx, nil)
	s.True(dnderr.IsInvalidParameter(err))
}

func (s *ServiceTestSuite) TestCompare_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.svc.Compare(ctx, s.baselineInput())
	s.ErrorIs(err, context.Canceled)
}

func (s *ServiceTestSuite) TestGetReport() {
	_, err := s.svc.GetReport(s.ctx, "")
	s.True(dnderr.IsInvalidParameter(err))

	s.repo.EXPECT().Get(s.ctx, "missing").Return(nil, dnderr.NotFound("report missing not found"))
	_, err = s.svc.GetReport(s.ctx, "missing")
	s.True(dnderr.IsNotFound(err))

	s.repo.EXPECT().List(s.ctx).Return([]*reports.Report{testutils.CreateTestReport("a", "", fixedNow)}, nil)
	list, err := s.svc.ListReports(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

type InMemoryServiceTestSuite struct {
	suite.Suite
	repo reports.Repository
	svc  dpr.Service
	ctx  context.Context
}

func (s *InMemoryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = reports.NewInMemory(&reports.InMemoryConfig{TTL: time.Hour})

	svc, err := dpr.NewService(&dpr.ServiceConfig{
		Repository:  s.repo,
		DefaultBand: difficulty.BandHalf,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func TestInMemoryServiceSuite(t *testing.T) {
	suite.Run(t, new(InMemoryServiceTestSuite))
}

func (s *InMemoryServiceTestSuite) input() *dpr.CompareInput {
	return &dpr.CompareInput{Inputs: []calculator.Calculable{
		testutils.CreateTestCalculable(s.T(), "TWF Rogue"),
		testutils.CreateTestCalculable(s.T(), "GWM Paladin"),
	}}
}

func (s *InMemoryServiceTestSuite) TestSameRequestIsCached() {
	first, err := s.svc.Compare(s.ctx, s.input())
	s.Require().NoError(err)
	s.Equal(difficulty.BandHalf, first.Band)

	second, err := s.svc.Compare(s.ctx, s.input())
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	other := s.input()
	other.Band = difficulty.BandBoss
	third, err := s.svc.Compare(s.ctx, other)
	s.Require().NoError(err)
	s.NotEqual(first.ID, third.ID)

	relabeled := s.input()
	relabeled.Inputs[0].Label = "Renamed"
	fourth, err := s.svc.Compare(s.ctx, relabeled)
	s.Require().NoError(err)
	s.NotEqual(first.ID, fourth.ID)

	list, err := s.svc.ListReports(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 3)

	got, err := s.svc.GetReport(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.CacheKey, got.CacheKey)
}

func (s *InMemoryServiceTestSuite) TestCompareAllBands() {
	input := s.input()
	input.Inputs[0].ID = ""

	all, err := s.svc.CompareAllBands(s.ctx, input)
	s.Require().NoError(err)
	s.Require().Len(all, len(difficulty.Bands()))

	for i, band := range difficulty.Bands() {
		s.Equal(band, all[i].Band)
		s.Len(all[i].Series, 2)
		s.Equal(all[0].Series[0].ID, all[i].Series[0].ID)
		s.NotEmpty(all[i].Series[0].ID)
	}

	// ignore means every attack lands, so rogues out-damage the on-level band
	s.Greater(*all[3].Series[0].Raw[0], *all[0].Series[0].Raw[0])

	list, err := s.svc.ListReports(s.ctx)
	s.Require().NoError(err)
	s.Len(list, len(difficulty.Bands()))
}

func (s *InMemoryServiceTestSuite) TestCompareAllBands_CollectsFailures() {
	input := s.input()
	input.Inputs = append(input.Inputs, calculator.Calculable{Label: "Bad", Override: make([]*float64, difficulty.Levels+1)})

	all, err := s.svc.CompareAllBands(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
	s.Len(all, len(difficulty.Bands()))
	for _, report := range all {
		s.Len(report.Series[2].Failures, 1)
	}
}

func TestNewService_Validates(t *testing.T) {
	_, err := dpr.NewService(nil)
	if !dnderr.IsInvalidParameter(err) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	_, err = dpr.NewService(&dpr.ServiceConfig{
		Repository:  reports.NewInMemory(nil),
		DefaultBand: "deadly",
	})
	if !dnderr.IsInvalidParameter(err) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
}
