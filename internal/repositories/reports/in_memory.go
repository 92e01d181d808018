package reports

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// InMemoryConfig holds configuration for the in-memory repository
type InMemoryConfig struct {
	// TTL expires reports, zero keeps them forever
	TTL time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

type storedReport struct {
	report    *Report
	expiresAt time.Time
}

type inMemoryRepo struct {
	mu      sync.RWMutex
	reports map[string]storedReport
	byKey   map[string]string
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemory creates an in-memory report repository
func NewInMemory(cfg *InMemoryConfig) Repository {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &inMemoryRepo{
		reports: make(map[string]storedReport),
		byKey:   make(map[string]string),
		ttl:     cfg.TTL,
		now:     now,
	}
}

func (r *inMemoryRepo) Save(ctx context.Context, report *Report) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	if report.ID == "" {
		return errors.New("report ID cannot be empty")
	}

	var expiresAt time.Time
	if r.ttl > 0 {
		expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports[report.ID] = storedReport{report: report.clone(), expiresAt: expiresAt}
	if report.CacheKey != "" {
		r.byKey[report.CacheKey] = report.ID
	}
	return nil
}

func (r *inMemoryRepo) live(id string) (*Report, bool) {
	stored, ok := r.reports[id]
	if !ok {
		return nil, false
	}
	if !stored.expiresAt.IsZero() && !r.now().Before(stored.expiresAt) {
		return nil, false
	}
	return stored.report, true
}

func (r *inMemoryRepo) Get(ctx context.Context, id string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.live(id)
	if !ok {
		return nil, dnderr.NotFoundf("report %s not found", id).WithMeta("report_id", id)
	}
	return report.clone(), nil
}

func (r *inMemoryRepo) GetByCacheKey(ctx context.Context, key string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return nil, dnderr.NotFoundf("no report cached for %s", key)
	}
	report, ok := r.live(id)
	if !ok {
		return nil, dnderr.NotFoundf("no report cached for %s", key)
	}
	return report.clone(), nil
}

func (r *inMemoryRepo) List(ctx context.Context) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*Report, 0, len(r.reports))
	for id := range r.reports {
		if report, ok := r.live(id); ok {
			reports = append(reports, report.clone())
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (r *inMemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reports[id]
	if !ok {
		return dnderr.NotFoundf("report %s not found", id).WithMeta("report_id", id)
	}
	delete(r.reports, id)
	if stored.report.CacheKey != "" && r.byKey[stored.report.CacheKey] == id {
		delete(r.byKey, stored.report.CacheKey)
	}
	return nil
}
