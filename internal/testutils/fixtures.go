package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
)

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// Values turns literals into an override list
func Values(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = Float(v)
	}
	return out
}

// CreateTestCalculable wraps a preset in a Calculable
func CreateTestCalculable(t *testing.T, preset string) calculator.Calculable {
	t.Helper()

	p, err := builds.FindPreset(accuracy.DefaultEnv(), preset)
	require.NoError(t, err)
	return calculator.Calculable{
		ID:      preset,
		Label:   p.Name,
		Build:   p.Build,
		Variant: p.Variant,
	}
}

// CreateTestReport creates a report holding a single flat series
func CreateTestReport(id, cacheKey string, created time.Time) *reports.Report {
	raw := make([]*float64, difficulty.Levels)
	for i := range raw {
		raw[i] = Float(float64(i + 1))
	}
	return &reports.Report{
		ID:       id,
		CacheKey: cacheKey,
		Band:     difficulty.BandEqual,
		Series: []calculator.Series{{
			ID:       "series-1",
			Label:    "Flat",
			Raw:      raw,
			Red:      make([]*float64, difficulty.Levels),
			Accuracy: make([]*float64, difficulty.Levels),
		}},
		CreatedAt: created,
	}
}
