package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const (
	BardCantripOnly Variant = "cantrip-only"
	BardSword       Variant = "sword"
)

// BardConfig configures the bard
type BardConfig struct {
	Common      `yaml:",inline"`
	CantripDie  dice.Die             `yaml:"cantrip_die" json:"cantrip_die"`
	WeaponDie   dice.Die             `yaml:"weapon_die" json:"weapon_die"`
	SaveAbility accuracy.SaveAbility `yaml:"save_ability" json:"save_ability"`
}

// DefaultBardConfig casts vicious mockery against wisdom
func DefaultBardConfig() *BardConfig {
	return &BardConfig{
		Common:      Common{Modifiers: DefaultModifiers()},
		CantripDie:  dice.D4,
		WeaponDie:   dice.D8,
		SaveAbility: accuracy.WIS,
	}
}

func (c *BardConfig) Archetype() Archetype { return ArchetypeBard }

func (c *BardConfig) Validate() error {
	if err := requireDie("cantrip_die", c.CantripDie, c.CantripDie.Valid()); err != nil {
		return err
	}
	if err := requireDie("weapon_die", c.WeaponDie, c.WeaponDie.Valid()); err != nil {
		return err
	}
	if !c.SaveAbility.Valid() {
		return dnderr.Validationf("save_ability %q must be DEX or WIS", c.SaveAbility)
	}
	return nil
}

type Bard struct {
	base
	cfg BardConfig
}

// NewBard creates a bard. A nil config uses DefaultBardConfig.
func NewBard(cfg *BardConfig, env accuracy.Env) (*Bard, error) {
	if cfg == nil {
		cfg = DefaultBardConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, BardCantripOnly, BardSword)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Bard{base: b, cfg: c}, nil
}

func (b *Bard) Archetype() Archetype { return ArchetypeBard }
func (b *Bard) Name() string         { return "Bard" }

func (b *Bard) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := b.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	mod := b.cfg.Modifiers.Normal.At(level)
	if variant == BardCantripOnly {
		return b.resolver(attack.Mix{}).SaveEffect(level, b.cfg.SaveAbility, b.cfg.CantripDie, 0, mod)
	}
	return b.resolver(b.cfg.mix()).Attacks(level, 1, mod, attack.Weapon(b.cfg.WeaponDie))
}

func (b *Bard) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*BardConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeBard, cfg)
	}
	return NewBard(c, b.env)
}

func (b *Bard) Config() Config {
	c := b.cfg
	return &c
}

func (b *Bard) Clone() Build {
	c := *b
	return &c
}

func (b *Bard) WithAccuracy(env accuracy.Env) Build {
	c := *b
	c.env = env
	return &c
}

func (b *Bard) Presets(env accuracy.Env) []Preset {
	return presets(env,
		presetSpec{"Bard (VM only)", BardCantripOnly, DefaultBardConfig()},
		presetSpec{"Bard (rapier only)", BardSword, DefaultBardConfig()},
	)
}

var bardLabels = map[string]string{
	string(BardCantripOnly): "Uses only cantrips",
	string(BardSword):       "Uses only rapier",
	"cantrip_die":           "Cantrip die size",
	"weapon_die":            "Weapon die size",
	"save_ability":          "Save targeted by the cantrip",
}

func (b *Bard) Describe(key string) string {
	return describe(bardLabels, key)
}

func (b *Bard) ConfigurableFields() Configurables {
	return Configurables{Common: commonFields("cantrip_die", "weapon_die", "save_ability")}
}
