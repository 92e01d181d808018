package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const (
	RogueShortbow Variant = "red"
	RogueTWF      Variant = "twf"
)

// RogueConfig configures the rogue
type RogueConfig struct {
	Common      `yaml:",inline"`
	WeaponDie   dice.Die `yaml:"weapon_die" json:"weapon_die"`
	SneakAttack bool     `yaml:"sneak_attack" json:"sneak_attack"`
}

// DefaultRogueConfig is a shortbow rogue that always sneak attacks
func DefaultRogueConfig() *RogueConfig {
	return &RogueConfig{
		Common:      Common{Modifiers: DefaultModifiers()},
		WeaponDie:   dice.D6,
		SneakAttack: true,
	}
}

func (c *RogueConfig) Archetype() Archetype { return ArchetypeRogue }

func (c *RogueConfig) Validate() error {
	return requireDie("weapon_die", c.WeaponDie, c.WeaponDie.Valid())
}

// Rogue is the reference build: one weapon attack plus sneak attack
type Rogue struct {
	base
	cfg RogueConfig
}

// NewRogue creates a rogue. A nil config uses DefaultRogueConfig.
func NewRogue(cfg *RogueConfig, env accuracy.Env) (*Rogue, error) {
	if cfg == nil {
		cfg = DefaultRogueConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, RogueShortbow, RogueTWF)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Rogue{base: b, cfg: c}, nil
}

// NewBaseline is the default rogue whose shortbow output every series is compared to
func NewBaseline(env accuracy.Env) (*Rogue, error) {
	return NewRogue(DefaultRogueConfig(), env)
}

// BaselineVariant is the variant NewBaseline is scored with
const BaselineVariant = RogueShortbow

func (r *Rogue) Archetype() Archetype { return ArchetypeRogue }
func (r *Rogue) Name() string         { return "Rogue" }

func (r *Rogue) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := r.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}
	switch variant {
	case RogueTWF:
		return r.twoWeapons(level)
	default:
		return r.shortbow(level)
	}
}

func (r *Rogue) shortbow(level int) (attack.DamageOutput, error) {
	mod := r.cfg.Modifiers.Normal.At(level)
	res := r.resolver(r.cfg.mix())

	main, err := res.Attacks(level, 1, mod, attack.Weapon(r.cfg.WeaponDie))
	if err != nil {
		return attack.DamageOutput{}, err
	}
	sneak, err := r.sneakAttack(res, level, mod, 1)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.NewOutput(main.DamageOr(0)+sneak, main.AccuracyOr(0)), nil
}

func (r *Rogue) twoWeapons(level int) (attack.DamageOutput, error) {
	mod := r.cfg.Modifiers.Normal.At(level)
	res := r.resolver(r.cfg.mix())

	main, err := res.Attacks(level, 1, mod, attack.Weapon(r.cfg.WeaponDie))
	if err != nil {
		return attack.DamageOutput{}, err
	}
	offShape := attack.Weapon(r.cfg.WeaponDie)
	offShape.OffHand = true
	off, err := res.Attacks(level, 1, mod, offShape)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	sneak, err := r.sneakAttack(res, level, mod, 2)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.NewOutput(main.DamageOr(0)+off.DamageOr(0)+sneak, main.AccuracyOr(0)), nil
}

// sneakAttack lands once per turn. Crits double the dice, and a second attack
// gets a try when the first misses. Rounds at disadvantage never qualify.
func (r *Rogue) sneakAttack(res *attack.Resolver, level, mod, attacks int) (float64, error) {
	if !r.cfg.SneakAttack {
		return 0, nil
	}
	sneakDice := dice.Average(dice.D6, (level+1)/2)
	mix := res.Mix()

	var total float64
	for _, ws := range []struct {
		weight float64
		state  accuracy.RollState
	}{
		{mix.Flat(), accuracy.Flat},
		{mix.Advantage, accuracy.Advantage},
	} {
		if ws.weight <= 0 {
			continue
		}
		roll, err := res.Roll(level, mod, 0, ws.state)
		if err != nil {
			return 0, err
		}
		p := roll.Hit + 2*roll.Crit
		if attacks > 1 {
			p *= 2 - roll.Land()
		}
		total += ws.weight * p
	}
	return sneakDice * total, nil
}

func (r *Rogue) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*RogueConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeRogue, cfg)
	}
	return NewRogue(c, r.env)
}

func (r *Rogue) Config() Config {
	c := r.cfg
	return &c
}

func (r *Rogue) Clone() Build {
	c := *r
	return &c
}

func (r *Rogue) WithAccuracy(env accuracy.Env) Build {
	c := *r
	c.env = env
	return &c
}

func (r *Rogue) Presets(env accuracy.Env) []Preset {
	bow := DefaultRogueConfig()
	advantage := DefaultRogueConfig()
	advantage.Advantage = 1

	return presets(env,
		presetSpec{"Baseline Rogue", RogueShortbow, bow},
		presetSpec{"TWF Rogue", RogueTWF, bow},
		presetSpec{"Shortbow Rogue (100% advantage)", RogueShortbow, advantage},
	)
}

var rogueLabels = map[string]string{
	string(RogueShortbow): "Shortbow",
	string(RogueTWF):      "Two Weapon Fighting",
	"weapon_die":          "Weapon die size",
	"sneak_attack":        "Use Sneak Attack",
}

func (r *Rogue) Describe(key string) string {
	return describe(rogueLabels, key)
}

func (r *Rogue) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("weapon_die"),
		Toggles: []string{"sneak_attack"},
	}
}
