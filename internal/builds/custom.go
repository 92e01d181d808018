package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const CustomData Variant = "custom"

// CustomConfig holds literal damage values, index 0 is level 1. Missing or
// null entries mean no value at that level.
type CustomConfig struct {
	Values []*float64 `yaml:"values" json:"values"`
}

// DefaultCustomConfig has no values
func DefaultCustomConfig() *CustomConfig {
	return &CustomConfig{}
}

func (c *CustomConfig) Archetype() Archetype { return ArchetypeCustom }

func (c *CustomConfig) Validate() error {
	if len(c.Values) > difficulty.Levels {
		return dnderr.Validationf("custom data has %d values, at most %d allowed", len(c.Values), difficulty.Levels)
	}
	return nil
}

func (c *CustomConfig) clone() CustomConfig {
	out := CustomConfig{Values: make([]*float64, len(c.Values))}
	for i, v := range c.Values {
		if v != nil {
			val := *v
			out.Values[i] = &val
		}
	}
	return out
}

// Custom replays user supplied values instead of computing them
type Custom struct {
	base
	cfg CustomConfig
}

// NewCustom creates a custom build. A nil config has no values.
func NewCustom(cfg *CustomConfig, env accuracy.Env) (*Custom, error) {
	if cfg == nil {
		cfg = DefaultCustomConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, CustomData)
	if err != nil {
		return nil, err
	}
	return &Custom{base: b, cfg: cfg.clone()}, nil
}

func (c *Custom) Archetype() Archetype { return ArchetypeCustom }
func (c *Custom) Name() string         { return "Custom" }

func (c *Custom) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := c.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}
	if level > len(c.cfg.Values) || c.cfg.Values[level-1] == nil {
		return attack.DamageOutput{}, nil
	}
	return attack.DamageOnly(*c.cfg.Values[level-1]), nil
}

func (c *Custom) Configure(cfg Config) (Build, error) {
	cc, ok := cfg.(*CustomConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeCustom, cfg)
	}
	return NewCustom(cc, c.env)
}

func (c *Custom) Config() Config {
	cc := c.cfg.clone()
	return &cc
}

func (c *Custom) Clone() Build {
	return &Custom{base: c.base, cfg: c.cfg.clone()}
}

func (c *Custom) WithAccuracy(env accuracy.Env) Build {
	return &Custom{base: base{env: env, variants: c.variants}, cfg: c.cfg.clone()}
}

// Presets is empty; custom data has nothing canonical to offer
func (c *Custom) Presets(env accuracy.Env) []Preset {
	return nil
}

var customLabels = map[string]string{
	string(CustomData): "Custom data",
	"values":           "Damage per level (20 values, null to skip)",
}

func (c *Custom) Describe(key string) string {
	return describe(customLabels, key)
}

func (c *Custom) ConfigurableFields() Configurables {
	return Configurables{Dials: []string{"values"}}
}
