package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const RangerNoSubclass Variant = "no-sub"

// RangerConfig configures the longbow ranger
type RangerConfig struct {
	Common    `yaml:",inline"`
	WeaponDie dice.Die `yaml:"weapon_die" json:"weapon_die"`
	Archery   bool     `yaml:"archery" json:"archery"`
	// MarkUptime is the fraction of attacks carrying hunter's mark
	MarkUptime float64 `yaml:"mark_uptime" json:"mark_uptime"`
}

// DefaultRangerConfig is a longbow ranger with no fighting style or mark
func DefaultRangerConfig() *RangerConfig {
	return &RangerConfig{
		Common:    Common{Modifiers: DefaultModifiers()},
		WeaponDie: dice.D8,
	}
}

func (c *RangerConfig) Archetype() Archetype { return ArchetypeRanger }

func (c *RangerConfig) Validate() error {
	return requireDie("weapon_die", c.WeaponDie, c.WeaponDie.Valid())
}

type Ranger struct {
	base
	cfg RangerConfig
}

// NewRanger creates a ranger. A nil config uses DefaultRangerConfig.
func NewRanger(cfg *RangerConfig, env accuracy.Env) (*Ranger, error) {
	if cfg == nil {
		cfg = DefaultRangerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, RangerNoSubclass)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	c.MarkUptime = clampFraction(c.MarkUptime)
	return &Ranger{base: b, cfg: c}, nil
}

func (r *Ranger) Archetype() Archetype { return ArchetypeRanger }
func (r *Ranger) Name() string         { return "Ranger" }

func (r *Ranger) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := r.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	mod := r.cfg.Modifiers.Normal.At(level)
	toHit := mod
	if r.cfg.Archery && level > 1 {
		toHit += attack.Archery.Accuracy
	}
	attacks := 1
	if level > 4 {
		attacks = 2
	}

	// the damage modifier rides as flat damage so archery only touches the roll
	shape := attack.Shape{Die: r.cfg.WeaponDie, Count: 1, Flat: float64(mod)}
	if level > 1 {
		shape.HitBonus = r.cfg.MarkUptime * dice.D6.Average()
		shape.HitBonusOnCrit = true
	}
	return r.resolver(r.cfg.mix()).Attacks(level, attacks, toHit, shape)
}

func (r *Ranger) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*RangerConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeRanger, cfg)
	}
	return NewRanger(c, r.env)
}

func (r *Ranger) Config() Config {
	c := r.cfg
	return &c
}

func (r *Ranger) Clone() Build {
	c := *r
	return &c
}

func (r *Ranger) WithAccuracy(env accuracy.Env) Build {
	c := *r
	c.env = env
	return &c
}

func (r *Ranger) Presets(env accuracy.Env) []Preset {
	archery := DefaultRangerConfig()
	archery.Archery = true

	marked := DefaultRangerConfig()
	marked.Archery = true
	marked.MarkUptime = 1

	return presets(env,
		presetSpec{"Longbow Ranger (no hm)", RangerNoSubclass, DefaultRangerConfig()},
		presetSpec{"Longbow Ranger (archery)", RangerNoSubclass, archery},
		presetSpec{"Longbow Ranger (archery + 100% hm)", RangerNoSubclass, marked},
	)
}

var rangerLabels = map[string]string{
	string(RangerNoSubclass): "No subclass",
	"weapon_die":             "Weapon die size",
	"archery":                "Archery Fighting Style",
	"mark_uptime":            "Hunter's Mark Uptime (decimal)",
}

func (r *Ranger) Describe(key string) string {
	return describe(rangerLabels, key)
}

func (r *Ranger) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("weapon_die"),
		Toggles: []string{"archery"},
		Dials:   []string{"mark_uptime"},
	}
}
