// Package calculator runs builds over every level and normalizes the results
// against a fixed baseline build.
package calculator

import (
	"errors"
	"log"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Calculable is one requested series. Override values, when present for a
// level, are used as the raw damage instead of calling the build.
type Calculable struct {
	ID       string
	Label    string
	Color    string
	Build    builds.Build
	Variant  builds.Variant
	Override []*float64
}

// Failure records a level that could not be computed
type Failure struct {
	Level   int    `json:"level"`
	Message string `json:"message"`
}

// Series is the per-level output for one Calculable, index 0 is level 1
type Series struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Color    string     `json:"color"`
	Raw      []*float64 `json:"raw"`
	Red      []*float64 `json:"red"`
	Accuracy []*float64 `json:"accuracy"`
	Failures []Failure  `json:"failures,omitempty"`
}

// ControllerConfig holds the accuracy model and baseline. Zero values fall
// back to the d20 provider, the equal band and the baseline rogue.
type ControllerConfig struct {
	Provider        accuracy.Provider
	Band            difficulty.Band
	Baseline        builds.Build
	BaselineVariant builds.Variant
}

// Controller is not safe for concurrent use with its setters
type Controller struct {
	env             accuracy.Env
	baseline        builds.Build
	baselineVariant builds.Variant
}

// NewController creates a controller
func NewController(cfg *ControllerConfig) (*Controller, error) {
	if cfg == nil {
		cfg = &ControllerConfig{}
	}

	env := accuracy.Env{Provider: cfg.Provider, Band: cfg.Band}
	if env.Provider == nil {
		env.Provider = accuracy.NewD20()
	}
	if env.Band == "" {
		env.Band = difficulty.BandEqual
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	baseline, variant := cfg.Baseline, cfg.BaselineVariant
	if baseline == nil {
		rogue, err := builds.NewBaseline(env)
		if err != nil {
			return nil, err
		}
		baseline, variant = rogue, builds.BaselineVariant
	}
	if variant == "" {
		return nil, dnderr.Validation("baseline variant is required with a custom baseline")
	}

	return &Controller{
		env:             env,
		baseline:        baseline.WithAccuracy(env),
		baselineVariant: variant,
	}, nil
}

// Env is the accuracy model every series is evaluated under
func (c *Controller) Env() accuracy.Env {
	return c.env
}

// SetAccuracyMode switches the difficulty band
func (c *Controller) SetAccuracyMode(band difficulty.Band) error {
	if !band.Valid() {
		return dnderr.InvalidParameterf("unknown difficulty band %q", band)
	}
	c.rebind(accuracy.Env{Provider: c.env.Provider, Band: band})
	return nil
}

// SetAccuracyProvider swaps in a different provider, nil restores the d20 one
func (c *Controller) SetAccuracyProvider(p accuracy.Provider) {
	if p == nil {
		p = accuracy.NewD20()
	}
	c.rebind(accuracy.Env{Provider: p, Band: c.env.Band})
}

func (c *Controller) rebind(env accuracy.Env) {
	c.env = env
	c.baseline = c.baseline.WithAccuracy(env)
}

// ComputeSeries evaluates every input at levels 1-20. A failing input or
// level is recorded on its series and in the joined error; the other series
// are still computed.
func (c *Controller) ComputeSeries(inputs []Calculable) ([]Series, error) {
	baseline, errs := c.baselineValues()

	out := make([]Series, 0, len(inputs))
	for _, in := range inputs {
		s, err := c.series(in, baseline)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, s)
	}
	return out, errors.Join(errs...)
}

func (c *Controller) baselineValues() ([difficulty.Levels]float64, []error) {
	var values [difficulty.Levels]float64
	var errs []error
	for level := 1; level <= difficulty.Levels; level++ {
		out, err := c.baseline.Calculate(c.baselineVariant, level)
		if err != nil {
			log.Printf("Baseline failed at level %d: %v", level, err)
			errs = append(errs, dnderr.Wrap(err, "baseline failed").
				WithMeta("variant", string(c.baselineVariant)).
				WithMeta("level", level))
			continue
		}
		values[level-1] = out.DamageOr(0)
	}
	return values, errs
}

func (c *Controller) series(in Calculable, baseline [difficulty.Levels]float64) (Series, error) {
	s := Series{
		ID:       in.ID,
		Label:    in.Label,
		Color:    in.Color,
		Raw:      make([]*float64, difficulty.Levels),
		Red:      make([]*float64, difficulty.Levels),
		Accuracy: make([]*float64, difficulty.Levels),
	}

	if len(in.Override) > difficulty.Levels {
		err := c.fail(&s, in, 0, dnderr.Validationf("override has %d values, at most %d allowed", len(in.Override), difficulty.Levels))
		return s, err
	}

	var build builds.Build
	if in.Build != nil {
		build = in.Build.WithAccuracy(c.env)
	}

	var errs []error
	for level := 1; level <= difficulty.Levels; level++ {
		out, err := c.value(in, build, level)
		if err != nil {
			errs = append(errs, c.fail(&s, in, level, err))
			continue
		}

		i := level - 1
		s.Raw[i] = out.Damage
		s.Accuracy[i] = out.Accuracy
		if out.Damage != nil && baseline[i] != 0 {
			red := *out.Damage / baseline[i]
			s.Red[i] = &red
		}
	}
	return s, errors.Join(errs...)
}

// value picks the override for a level when there is one, otherwise the build
func (c *Controller) value(in Calculable, build builds.Build, level int) (attack.DamageOutput, error) {
	if i := level - 1; i < len(in.Override) && in.Override[i] != nil {
		return attack.DamageOnly(*in.Override[i]), nil
	}
	if build == nil {
		return attack.DamageOutput{}, nil
	}
	return build.Calculate(in.Variant, level)
}

func (c *Controller) fail(s *Series, in Calculable, level int, err error) error {
	log.Printf("Series %q (%s) failed at level %d: %v", in.Label, in.Variant, level, err)
	s.Failures = append(s.Failures, Failure{Level: level, Message: err.Error()})
	return dnderr.Wrap(err, "series "+in.Label+" failed").
		WithMeta("label", in.Label).
		WithMeta("variant", string(in.Variant)).
		WithMeta("level", level)
}
