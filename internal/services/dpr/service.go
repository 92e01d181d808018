// Package dpr turns comparison requests into stored reports
package dpr

//go:generate mockgen -destination=mock/mock_service.go -package=mockdpr -source=service.go

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
	"github.com/KirkDiggler/dnd-dpr/internal/uuid"
)

// Service defines the DPR comparison service interface
type Service interface {
	// Compare computes every input against the baseline for one band.
	// Reports without failures are cached by request.
	Compare(ctx context.Context, input *CompareInput) (*reports.Report, error)

	// CompareAllBands runs Compare for every band concurrently, in band order
	CompareAllBands(ctx context.Context, input *CompareInput) ([]*reports.Report, error)

	// GetReport retrieves a stored report
	GetReport(ctx context.Context, id string) (*reports.Report, error)

	// ListReports lists the stored reports, newest first
	ListReports(ctx context.Context) ([]*reports.Report, error)
}

// CompareInput is one comparison request
type CompareInput struct {
	// Band defaults to the service's band when empty
	Band   difficulty.Band
	Inputs []calculator.Calculable
}

type service struct {
	repository    reports.Repository
	provider      accuracy.Provider
	band          difficulty.Band
	uuidGenerator uuid.Generator
	now           func() time.Time
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    reports.Repository // Required
	Provider      accuracy.Provider  // Optional, defaults to the d20 provider
	DefaultBand   difficulty.Band    // Optional, defaults to equal
	UUIDGenerator uuid.Generator     // Optional, will use default if nil
	Now           func() time.Time   // Optional, defaults to time.Now
}

// NewService creates a new DPR service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil || cfg.Repository == nil {
		return nil, dnderr.InvalidParameterf("report repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		provider:      cfg.Provider,
		band:          cfg.DefaultBand,
		uuidGenerator: cfg.UUIDGenerator,
		now:           cfg.Now,
	}
	if svc.provider == nil {
		svc.provider = accuracy.NewD20()
	}
	if svc.band == "" {
		svc.band = difficulty.BandEqual
	}
	if !svc.band.Valid() {
		return nil, dnderr.InvalidParameterf("unknown difficulty band %q", svc.band)
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) Compare(ctx context.Context, input *CompareInput) (*reports.Report, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	band := input.Band
	if band == "" {
		band = s.band
	}
	return s.compare(ctx, band, s.withIDs(input.Inputs))
}

func (s *service) CompareAllBands(ctx context.Context, input *CompareInput) ([]*reports.Report, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	// one set of IDs so a series can be followed across bands
	inputs := s.withIDs(input.Inputs)

	bands := difficulty.Bands()
	out := make([]*reports.Report, len(bands))
	errs := make([]error, len(bands))

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range bands {
		g.Go(func() error {
			report, err := s.compare(gctx, band, inputs)
			out[i] = report
			if err != nil {
				errs[i] = dnderr.Wrapf(err, "band %s failed", band).WithMeta("band", string(band))
			}
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, errors.Join(errs...)
}

func (s *service) GetReport(ctx context.Context, id string) (*reports.Report, error) {
	if id == "" {
		return nil, dnderr.InvalidParameterf("report ID is required")
	}
	return s.repository.Get(ctx, id)
}

func (s *service) ListReports(ctx context.Context) ([]*reports.Report, error) {
	return s.repository.List(ctx)
}

func (s *service) validate(input *CompareInput) error {
	if input == nil {
		return dnderr.InvalidParameterf("input cannot be nil")
	}
	if len(input.Inputs) == 0 {
		return dnderr.InvalidParameterf("at least one input is required")
	}
	if input.Band != "" && !input.Band.Valid() {
		return dnderr.InvalidParameterf("unknown difficulty band %q", input.Band)
	}
	return nil
}

// withIDs copies the inputs and fills in missing IDs
func (s *service) withIDs(inputs []calculator.Calculable) []calculator.Calculable {
	out := make([]calculator.Calculable, len(inputs))
	copy(out, inputs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = s.uuidGenerator.New()
		}
	}
	return out
}

// compare runs one band. Each call gets its own Controller, so concurrent
// bands never share accuracy state.
func (s *service) compare(ctx context.Context, band difficulty.Band, inputs []calculator.Calculable) (*reports.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.cacheKey(band, inputs)
	if err != nil {
		log.Printf("Failed to build cache key, not caching: %v", err)
	}

	if key != "" {
		cached, err := s.repository.GetByCacheKey(ctx, key)
		switch {
		case err == nil:
			log.Printf("Report cache hit for %s (%s)", cached.ID, band)
			for i := range cached.Series {
				if i < len(inputs) {
					cached.Series[i].ID = inputs[i].ID
				}
			}
			return cached, nil
		case dnderr.IsNotFound(err):
			log.Printf("Report cache miss for band %s", band)
		default:
			log.Printf("Failed to read report cache: %v", err)
		}
	}

	controller, err := calculator.NewController(&calculator.ControllerConfig{
		Provider: s.provider,
		Band:     band,
	})
	if err != nil {
		return nil, err
	}

	series, computeErr := controller.ComputeSeries(inputs)
	report := &reports.Report{
		ID:        s.uuidGenerator.New(),
		CacheKey:  key,
		Band:      band,
		Series:    series,
		CreatedAt: s.now(),
	}
	if computeErr != nil {
		return report, computeErr
	}

	if err := s.repository.Save(ctx, report); err != nil {
		log.Printf("Failed to cache report %s: %v", report.ID, err)
	}
	return report, nil
}

type cacheEntry struct {
	Archetype builds.Archetype `json:"archetype,omitempty"`
	Variant   builds.Variant   `json:"variant,omitempty"`
	Label     string           `json:"label"`
	Color     string           `json:"color"`
	Config    builds.Config    `json:"config,omitempty"`
	Override  []*float64       `json:"override,omitempty"`
}

// cacheKey hashes everything that changes the numbers or labels of a report.
// Series IDs are left out and restamped on a hit. Reports from any provider
// but the d20 one are never cached and get an empty key.
func (s *service) cacheKey(band difficulty.Band, inputs []calculator.Calculable) (string, error) {
	if _, ok := s.provider.(*accuracy.D20); !ok {
		return "", nil
	}

	entries := make([]cacheEntry, len(inputs))
	for i, in := range inputs {
		entries[i] = cacheEntry{
			Variant:  in.Variant,
			Label:    in.Label,
			Color:    in.Color,
			Override: in.Override,
		}
		if in.Build != nil {
			entries[i].Archetype = in.Build.Archetype()
			entries[i].Config = in.Build.Config()
		}
	}

	data, err := json.Marshal(struct {
		Band   difficulty.Band `json:"band"`
		Inputs []cacheEntry    `json:"inputs"`
	}{
		Band:   band,
		Inputs: entries,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
