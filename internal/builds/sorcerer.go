package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const SorcererCantripOnly Variant = "cantrip-only"

// SorcererConfig configures the draconic fire bolt sorcerer
type SorcererConfig struct {
	Common     `yaml:",inline"`
	CantripDie dice.Die `yaml:"cantrip_die" json:"cantrip_die"`
	// Quicken spends sorcery points on a second cantrip
	Quicken bool `yaml:"quicken" json:"quicken"`
	// ElementalAffinity adds the modifier to matching cantrips from level 6
	ElementalAffinity bool `yaml:"elemental_affinity" json:"elemental_affinity"`
	Rounds            int  `yaml:"rounds" json:"rounds"`
}

// DefaultSorcererConfig casts fire bolt every round with no metamagic
func DefaultSorcererConfig() *SorcererConfig {
	return &SorcererConfig{
		Common:     Common{Modifiers: DefaultModifiers()},
		CantripDie: dice.D10,
		Rounds:     1,
	}
}

func (c *SorcererConfig) Archetype() Archetype { return ArchetypeSorcerer }

func (c *SorcererConfig) Validate() error {
	if err := requireDie("cantrip_die", c.CantripDie, c.CantripDie.Valid()); err != nil {
		return err
	}
	return requireRounds("rounds", c.Rounds)
}

type Sorcerer struct {
	base
	cfg SorcererConfig
}

// NewSorcerer creates a sorcerer. A nil config uses DefaultSorcererConfig.
func NewSorcerer(cfg *SorcererConfig, env accuracy.Env) (*Sorcerer, error) {
	if cfg == nil {
		cfg = DefaultSorcererConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, SorcererCantripOnly)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Sorcerer{base: b, cfg: c}, nil
}

func (s *Sorcerer) Archetype() Archetype { return ArchetypeSorcerer }
func (s *Sorcerer) Name() string         { return "Sorcerer" }

func (s *Sorcerer) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := s.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	mod := s.cfg.Modifiers.Normal.At(level)
	var extra float64
	if s.cfg.ElementalAffinity && level >= 6 {
		extra = float64(mod)
	}
	single, err := s.resolver(s.cfg.mix()).ScalingCantrip(level, mod, s.cfg.CantripDie, extra)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	if !s.cfg.Quicken || level < 3 {
		return single, nil
	}

	// one quickened round per two sorcerer levels of sorcery points
	quickened := min(level/2, s.cfg.Rounds)
	return single.Scale(1 + float64(quickened)/float64(s.cfg.Rounds)), nil
}

func (s *Sorcerer) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*SorcererConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeSorcerer, cfg)
	}
	return NewSorcerer(c, s.env)
}

func (s *Sorcerer) Config() Config {
	c := s.cfg
	return &c
}

func (s *Sorcerer) Clone() Build {
	c := *s
	return &c
}

func (s *Sorcerer) WithAccuracy(env accuracy.Env) Build {
	c := *s
	c.env = env
	return &c
}

func (s *Sorcerer) Presets(env accuracy.Env) []Preset {
	quicken := DefaultSorcererConfig()
	quicken.Quicken = true
	quicken.ElementalAffinity = true
	quicken.Rounds = 10

	return presets(env,
		presetSpec{"Firebolt (no quicken/EA)", SorcererCantripOnly, DefaultSorcererConfig()},
		presetSpec{"Firebolt (quicken + EA, 10 rounds)", SorcererCantripOnly, quicken},
	)
}

var sorcererLabels = map[string]string{
	string(SorcererCantripOnly): "Draconic, only cantrips",
	"cantrip_die":               "Cantrip die size",
	"quicken":                   "Use sorc. points on quicken",
	"elemental_affinity":        "Cantrip damage matches draconic elemental affinity",
	"rounds":                    "Combat rounds per LR",
}

func (s *Sorcerer) Describe(key string) string {
	return describe(sorcererLabels, key)
}

func (s *Sorcerer) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("cantrip_die"),
		Toggles: []string{"quicken", "elemental_affinity"},
		Dials:   []string{"rounds"},
	}
}
