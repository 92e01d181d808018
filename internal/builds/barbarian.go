package builds

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const (
	BarbarianNoSubclass   Variant = "no-sub"
	BarbarianGWM          Variant = "gwm"
	BarbarianFrenzy       Variant = "frenzy"
	BarbarianExperimental Variant = "expt"
)

// unlimitedRages stands in for the level 20 Primal Champion's endless rage
const unlimitedRages = math.MaxInt32

// BarbarianConfig configures the barbarian
type BarbarianConfig struct {
	Common `yaml:",inline"`

	WeaponDie   dice.Die `yaml:"weapon_die" json:"weapon_die"`
	WeaponCount int      `yaml:"weapon_count" json:"weapon_count"`

	Rage bool `yaml:"rage" json:"rage"`
	// RecklessPercent is the fraction of rounds using Reckless Attack from level 2
	RecklessPercent float64 `yaml:"reckless_percent" json:"reckless_percent"`
	// GWMProcRate is how often Great Weapon Master's bonus attack triggers
	GWMProcRate       float64 `yaml:"gwm_proc_rate" json:"gwm_proc_rate"`
	RoundsPerLongRest int     `yaml:"rounds_per_long_rest" json:"rounds_per_long_rest"`
	Combats           int     `yaml:"combats" json:"combats"`
}

// DefaultBarbarianConfig is a greataxe barbarian that never rages
func DefaultBarbarianConfig() *BarbarianConfig {
	return &BarbarianConfig{
		Common:            Common{Modifiers: barbarianModifierTables()},
		WeaponDie:         dice.D12,
		WeaponCount:       1,
		RoundsPerLongRest: 1,
		Combats:           1,
	}
}

func (c *BarbarianConfig) Archetype() Archetype { return ArchetypeBarbarian }

func (c *BarbarianConfig) Validate() error {
	if err := requireDie("weapon_die", c.WeaponDie, c.WeaponDie.Valid()); err != nil {
		return err
	}
	if c.WeaponCount < 1 {
		return dnderr.InvalidDamageShapef("weapon_count %d must be positive", c.WeaponCount)
	}
	if err := requireRounds("rounds_per_long_rest", c.RoundsPerLongRest); err != nil {
		return err
	}
	return requireRounds("combats", c.Combats)
}

// Barbarian is a great weapon barbarian with optional rage and reckless attack
type Barbarian struct {
	base
	cfg BarbarianConfig
}

// NewBarbarian creates a barbarian. A nil config uses DefaultBarbarianConfig.
func NewBarbarian(cfg *BarbarianConfig, env accuracy.Env) (*Barbarian, error) {
	if cfg == nil {
		cfg = DefaultBarbarianConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, BarbarianNoSubclass, BarbarianGWM, BarbarianFrenzy, BarbarianExperimental)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(barbarianModifierTables())
	c.RecklessPercent = clampFraction(c.RecklessPercent)
	c.GWMProcRate = clampFraction(c.GWMProcRate)
	return &Barbarian{base: b, cfg: c}, nil
}

func (b *Barbarian) Archetype() Archetype { return ArchetypeBarbarian }
func (b *Barbarian) Name() string         { return "Barbarian" }

func (b *Barbarian) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := b.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	mod := b.cfg.Modifiers.Normal.At(level)
	if variant == BarbarianGWM {
		mod = b.cfg.Modifiers.FeatAt4.At(level)
	}
	shape := b.weaponShape(level)
	res := b.resolver(b.recklessMix(level))
	attacks := barbarianAttacks(level)

	switch {
	case variant == BarbarianFrenzy && level >= 3:
		return b.frenzy(res, level, attacks, mod, shape)
	case variant == BarbarianGWM && level >= 4:
		return b.greatWeaponMaster(res, level, attacks, mod, shape)
	case variant == BarbarianExperimental && level >= 6:
		shape.CritRange = 9
		return b.resolver(attack.Mix{}).Attacks(level, attacks, mod, shape)
	default:
		return res.Attacks(level, attacks, mod, shape)
	}
}

// recklessMix rolls with advantage whenever reckless attack is used and falls
// back to the configured mix for the remaining rounds.
func (b *Barbarian) recklessMix(level int) attack.Mix {
	reckless := 0.0
	if level > 1 {
		reckless = b.cfg.RecklessPercent
	}
	return attack.Mix{
		Advantage:    reckless + (1-reckless)*b.cfg.Advantage,
		Disadvantage: (1 - reckless) * b.cfg.Disadvantage,
	}
}

func (b *Barbarian) weaponShape(level int) attack.Shape {
	shape := attack.Weapon(b.cfg.WeaponDie)
	shape.Count = b.cfg.WeaponCount
	shape.CritBonus = dice.Average(b.cfg.WeaponDie, brutalCriticalDice(level))
	if b.cfg.Rage {
		shape.Flat = b.rageUptime(level) * float64(rageBonus(level))
	}
	return shape
}

func (b *Barbarian) rageUptime(level int) float64 {
	return UptimeFraction(ragesPerDay(level), b.cfg.Combats)
}

func (b *Barbarian) frenzy(res *attack.Resolver, level, attacks, mod int, shape attack.Shape) (attack.DamageOutput, error) {
	rounds := b.cfg.RoundsPerLongRest
	frenzied := min(max(0, rounds/b.cfg.Combats-1), rounds)

	regular, err := res.Attacks(level, attacks, mod, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	extra, err := res.Attacks(level, attacks+1, mod, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}

	dmg := (float64(rounds-frenzied)*regular.DamageOr(0) + float64(frenzied)*extra.DamageOr(0)) / float64(rounds)
	return attack.NewOutput(dmg, regular.AccuracyOr(0)), nil
}

func (b *Barbarian) greatWeaponMaster(res *attack.Resolver, level, attacks, mod int, shape attack.Shape) (attack.DamageOutput, error) {
	shape.Flat += attack.PowerAttack.FlatDamage
	shape.Flat += float64(mod)
	shape.AddModifier = false
	toHit := mod + attack.PowerAttack.Accuracy

	primary, err := res.Attacks(level, attacks, toHit, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	proc, err := res.Attacks(level, 1, toHit, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}

	dmg := primary.DamageOr(0) + b.cfg.GWMProcRate*proc.DamageOr(0)
	return attack.NewOutput(dmg, primary.AccuracyOr(0)), nil
}

func barbarianAttacks(level int) int {
	if level < 5 {
		return 1
	}
	return 2
}

func rageBonus(level int) int {
	switch {
	case level < 9:
		return 2
	case level < 16:
		return 3
	default:
		return 4
	}
}

func ragesPerDay(level int) int {
	switch {
	case level < 3:
		return 2
	case level < 6:
		return 3
	case level < 12:
		return 4
	case level < 17:
		return 5
	case level < 20:
		return 6
	default:
		return unlimitedRages
	}
}

func brutalCriticalDice(level int) int {
	switch {
	case level < 9:
		return 0
	case level < 13:
		return 1
	case level < 17:
		return 2
	default:
		return 3
	}
}

func (b *Barbarian) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*BarbarianConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeBarbarian, cfg)
	}
	return NewBarbarian(c, b.env)
}

func (b *Barbarian) Config() Config {
	c := b.cfg
	return &c
}

func (b *Barbarian) Clone() Build {
	c := *b
	return &c
}

func (b *Barbarian) WithAccuracy(env accuracy.Env) Build {
	c := *b
	c.env = env
	return &c
}

func (b *Barbarian) Presets(env accuracy.Env) []Preset {
	noRage := DefaultBarbarianConfig()
	rage := DefaultBarbarianConfig()
	rage.Rage = true

	return presets(env,
		presetSpec{"Barbarian (no rage/reckless)", BarbarianNoSubclass, noRage},
		presetSpec{"Barbarian (100% rage)", BarbarianNoSubclass, rage},
	)
}

var barbarianLabels = map[string]string{
	string(BarbarianGWM):          "Great Weapon Master (feat)",
	string(BarbarianFrenzy):       "Frenzy (subclass)",
	string(BarbarianExperimental): "Experimental",
	string(BarbarianNoSubclass):   "No subclass selected",
	"weapon_die":                  "Weapon die size",
	"weapon_count":                "Weapon dice",
	"combats":                     "Combats per long rest",
	"rounds_per_long_rest":        "Combat rounds per long rest",
	"reckless_percent":            "Fraction using Reckless Attack (decimal)",
	"rage":                        "Use rage as much as possible",
	"gwm_proc_rate":               "Proc rate (decimal) for GWM (if selected)",
}

func (b *Barbarian) Describe(key string) string {
	return describe(barbarianLabels, key)
}

func (b *Barbarian) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("weapon_die", "weapon_count"),
		Toggles: []string{"rage"},
		Dials:   []string{"combats", "rounds_per_long_rest", "reckless_percent", "gwm_proc_rate"},
	}
}
