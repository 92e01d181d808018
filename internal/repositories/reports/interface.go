package reports

//go:generate mockgen -destination=mock/mock.go -package=mockreports -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
)

// Report is a stored comparison: the series computed for one band
type Report struct {
	ID string `json:"id"`
	// CacheKey identifies the request that produced the report
	CacheKey  string              `json:"cache_key,omitempty"`
	Band      difficulty.Band     `json:"band"`
	Series    []calculator.Series `json:"series"`
	CreatedAt time.Time           `json:"created_at"`
}

// Repository stores reports for a limited time.
// Missing or expired reports return a not found error.
type Repository interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	GetByCacheKey(ctx context.Context, key string) (*Report, error)
	// List returns the live reports, newest first
	List(ctx context.Context) ([]*Report, error)
	Delete(ctx context.Context, id string) error
}

func (r *Report) clone() *Report {
	out := *r
	out.Series = make([]calculator.Series, len(r.Series))
	for i, s := range r.Series {
		s.Raw = cloneValues(s.Raw)
		s.Red = cloneValues(s.Red)
		s.Accuracy = cloneValues(s.Accuracy)
		s.Failures = append([]calculator.Failure(nil), s.Failures...)
		out.Series[i] = s
	}
	return &out
}

func cloneValues(values []*float64) []*float64 {
	if values == nil {
		return nil
	}
	out := make([]*float64, len(values))
	for i, v := range values {
		if v != nil {
			val := *v
			out[i] = &val
		}
	}
	return out
}
