package calculator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	mockaccuracy "github.com/KirkDiggler/dnd-dpr/internal/accuracy/mock"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/KirkDiggler/dnd-dpr/internal/testutils"
)

func baselineInput(t *testing.T) calculator.Calculable {
	t.Helper()
	rogue, err := builds.NewBaseline(accuracy.DefaultEnv())
	require.NoError(t, err)
	return calculator.Calculable{ID: "base", Label: "Baseline", Build: rogue, Variant: builds.BaselineVariant}
}

func TestComputeSeries_BaselineIsOne(t *testing.T) {
	for _, band := range difficulty.Bands() {
		t.Run(string(band), func(t *testing.T) {
			c, err := calculator.NewController(&calculator.ControllerConfig{Band: band})
			require.NoError(t, err)

			series, err := c.ComputeSeries([]calculator.Calculable{baselineInput(t)})
			require.NoError(t, err)
			require.Len(t, series, 1)

			s := series[0]
			assert.Len(t, s.Raw, difficulty.Levels)
			for i, red := range s.Red {
				require.NotNil(t, red, "level %d", i+1)
				assert.InDelta(t, 1.0, *red, 1e-12, "level %d", i+1)
				assert.NotNil(t, s.Accuracy[i])
			}
			assert.Empty(t, s.Failures)
		})
	}
}

func TestComputeSeries_BaselineFollowsAccuracyMode(t *testing.T) {
	c, err := calculator.NewController(nil)
	require.NoError(t, err)
	require.NoError(t, c.SetAccuracyMode(difficulty.BandBoss))
	assert.Equal(t, difficulty.BandBoss, c.Env().Band)

	series, err := c.ComputeSeries([]calculator.Calculable{baselineInput(t)})
	require.NoError(t, err)
	for _, red := range series[0].Red {
		assert.InDelta(t, 1.0, *red, 1e-12)
	}

	err = c.SetAccuracyMode("impossible")
	assert.True(t, dnderr.IsInvalidParameter(err))
	assert.Equal(t, difficulty.BandBoss, c.Env().Band)
}

func TestComputeSeries_OverridesBypassTheBuild(t *testing.T) {
	c, err := calculator.NewController(nil)
	require.NoError(t, err)

	base, err := c.ComputeSeries([]calculator.Calculable{baselineInput(t)})
	require.NoError(t, err)

	input := baselineInput(t)
	input.Label = "Patched"
	input.Override = []*float64{testutils.Float(20), nil, testutils.Float(0)}

	series, err := c.ComputeSeries([]calculator.Calculable{input})
	require.NoError(t, err)
	s := series[0]

	assert.Equal(t, 20.0, *s.Raw[0])
	assert.Nil(t, s.Accuracy[0])
	assert.InDelta(t, 20 / *base[0].Raw[0], *s.Red[0], 1e-12)

	// nil override falls back to the build
	assert.Equal(t, *base[0].Raw[1], *s.Raw[1])
	assert.NotNil(t, s.Accuracy[1])

	assert.Equal(t, 0.0, *s.Raw[2])
	assert.Equal(t, 0.0, *s.Red[2])
}

func TestComputeSeries_OverrideOnly(t *testing.T) {
	c, err := calculator.NewController(nil)
	require.NoError(t, err)

	series, err := c.ComputeSeries([]calculator.Calculable{{
		Label:    "Table",
		Override: []*float64{testutils.Float(5)},
	}})
	require.NoError(t, err)

	s := series[0]
	assert.Equal(t, 5.0, *s.Raw[0])
	for i := 1; i < difficulty.Levels; i++ {
		assert.Nil(t, s.Raw[i])
		assert.Nil(t, s.Red[i])
		assert.Nil(t, s.Accuracy[i])
	}
}

func TestComputeSeries_IsolatesFailures(t *testing.T) {
	c, err := calculator.NewController(nil)
	require.NoError(t, err)

	fighter, err := builds.NewFighter(nil, accuracy.DefaultEnv())
	require.NoError(t, err)

	inputs := []calculator.Calculable{
		{Label: "Broken", Build: fighter, Variant: "hexblade"},
		baselineInput(t),
		{Label: "Too long", Override: make([]*float64, difficulty.Levels+1)},
	}

	series, err := c.ComputeSeries(inputs)
	require.Error(t, err)
	require.Len(t, series, 3)

	assert.True(t, dnderr.IsUnsupportedVariant(err))
	meta := dnderr.GetMeta(err)
	assert.Equal(t, "Broken", meta["label"])
	assert.Equal(t, "hexblade", meta["variant"])

	assert.Len(t, series[0].Failures, difficulty.Levels)
	for _, raw := range series[0].Raw {
		assert.Nil(t, raw)
	}

	assert.Empty(t, series[1].Failures)
	assert.NotNil(t, series[1].Raw[19])

	require.Len(t, series[2].Failures, 1)
	assert.Equal(t, 0, series[2].Failures[0].Level)
}

func TestSeries_EncodesNullsAsJSON(t *testing.T) {
	c, err := calculator.NewController(nil)
	require.NoError(t, err)

	series, err := c.ComputeSeries([]calculator.Calculable{{ID: "x", Label: "Empty"}})
	require.NoError(t, err)

	data, err := json.Marshal(series[0])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	raw, ok := decoded["raw"].([]any)
	require.True(t, ok)
	assert.Len(t, raw, difficulty.Levels)
	assert.Nil(t, raw[0])
	assert.NotContains(t, decoded, "failures")
}

func TestNewController_CustomBaselineNeedsVariant(t *testing.T) {
	fighter, err := builds.NewFighter(nil, accuracy.DefaultEnv())
	require.NoError(t, err)

	_, err = calculator.NewController(&calculator.ControllerConfig{Baseline: fighter})
	assert.True(t, dnderr.IsValidation(err))

	_, err = calculator.NewController(&calculator.ControllerConfig{Band: "hard"})
	assert.True(t, dnderr.IsInvalidParameter(err))
}

type ProviderTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mockaccuracy.MockProvider
}

func (s *ProviderTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = mockaccuracy.NewMockProvider(s.ctrl)
}

func (s *ProviderTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ProviderTestSuite) TestSetAccuracyProvider_RebindsEveryBuild() {
	s.provider.EXPECT().VsArmor(gomock.Any(), difficulty.BandHalf, gomock.Any(), 0, accuracy.Flat).
		Return(accuracy.Result{Hit: 0.5, Crit: 0.05}, nil).AnyTimes()

	c, err := calculator.NewController(&calculator.ControllerConfig{Band: difficulty.BandHalf})
	s.Require().NoError(err)
	c.SetAccuracyProvider(s.provider)

	rogue, err := builds.NewBaseline(accuracy.DefaultEnv())
	s.Require().NoError(err)

	series, err := c.ComputeSeries([]calculator.Calculable{
		{Label: "Rogue", Build: rogue, Variant: builds.BaselineVariant},
		{Label: "Flat", Override: []*float64{testutils.Float(11.7)}},
	})
	s.Require().NoError(err)

	// bow 0.5*6.5 + 0.05*10, sneak 3.5*0.6
	s.InDelta(5.85, *series[0].Raw[0], 1e-9)
	s.InDelta(0.55, *series[0].Accuracy[0], 1e-9)
	s.InDelta(2.0, *series[1].Red[0], 1e-9)
}

func (s *ProviderTestSuite) TestProviderErrorsAreReported() {
	s.provider.EXPECT().VsArmor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(accuracy.Result{}, dnderr.Internalf("table unavailable")).AnyTimes()

	c, err := calculator.NewController(&calculator.ControllerConfig{Provider: s.provider})
	s.Require().NoError(err)

	series, err := c.ComputeSeries([]calculator.Calculable{{Label: "Flat", Override: []*float64{testutils.Float(3)}}})
	s.Require().Error(err)
	s.True(dnderr.Is(err, dnderr.CodeInternal))

	// baseline failed, so nothing can be normalized
	s.Equal(3.0, *series[0].Raw[0])
	s.Nil(series[0].Red[0])
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
