package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const (
	ClericPotentSpellcasting Variant = "ps"
	ClericBlessedStrikes     Variant = "bs"
	ClericBoomingBlade       Variant = "ps-bb"
)

const (
	clericCantripBoostLevel = 8
	spiritualWeaponLevel    = 3
)

// ClericConfig configures the sacred flame cleric
type ClericConfig struct {
	Common      `yaml:",inline"`
	CantripDie  dice.Die             `yaml:"cantrip_die" json:"cantrip_die"`
	SaveAbility accuracy.SaveAbility `yaml:"save_ability" json:"save_ability"`
	// ProcChance is how often booming blade's target moves
	ProcChance float64 `yaml:"proc_chance" json:"proc_chance"`
	// Uptime is the fraction of rounds spiritual weapon is up
	Uptime float64 `yaml:"uptime" json:"uptime"`
}

// DefaultClericConfig casts sacred flame against dexterity without spiritual weapon
func DefaultClericConfig() *ClericConfig {
	return &ClericConfig{
		Common:      Common{Modifiers: DefaultModifiers()},
		CantripDie:  dice.D8,
		SaveAbility: accuracy.DEX,
	}
}

func (c *ClericConfig) Archetype() Archetype { return ArchetypeCleric }

func (c *ClericConfig) Validate() error {
	if err := requireDie("cantrip_die", c.CantripDie, c.CantripDie.Valid()); err != nil {
		return err
	}
	if !c.SaveAbility.Valid() {
		return dnderr.Validationf("save_ability %q must be DEX or WIS", c.SaveAbility)
	}
	return nil
}

type Cleric struct {
	base
	cfg ClericConfig
}

// NewCleric creates a cleric. A nil config uses DefaultClericConfig.
func NewCleric(cfg *ClericConfig, env accuracy.Env) (*Cleric, error) {
	if cfg == nil {
		cfg = DefaultClericConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, ClericPotentSpellcasting, ClericBlessedStrikes, ClericBoomingBlade)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	c.ProcChance = clampFraction(c.ProcChance)
	c.Uptime = clampFraction(c.Uptime)
	return &Cleric{base: b, cfg: c}, nil
}

func (c *Cleric) Archetype() Archetype { return ArchetypeCleric }
func (c *Cleric) Name() string         { return "Cleric" }

func (c *Cleric) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := c.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	// cleric attacks roll flat whatever the configured mix
	res := c.resolver(attack.Mix{})
	wis := c.cfg.Modifiers.Normal.At(level)

	var cantrip attack.DamageOutput
	var err error
	if variant == ClericBoomingBlade {
		cantrip, err = res.BoomingBlade(level, c.cfg.ProcChance, c.cfg.Modifiers.Secondary.At(level), attack.Weapon(dice.D8))
	} else {
		var extra float64
		if level > clericCantripBoostLevel {
			if variant == ClericBlessedStrikes {
				extra = dice.D8.Average()
			} else {
				extra = float64(wis)
			}
		}
		cantrip, err = res.SaveEffect(level, c.cfg.SaveAbility, c.cfg.CantripDie, extra, wis)
	}
	if err != nil {
		return attack.DamageOutput{}, err
	}

	if c.cfg.Uptime <= 0 || level < spiritualWeaponLevel {
		return cantrip, nil
	}
	weapon, err := res.Attacks(level, 1, wis, attack.Shape{Die: dice.D8, Count: 1, AddModifier: true})
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.Add(cantrip, weapon.Scale(c.cfg.Uptime)), nil
}

func (c *Cleric) Configure(cfg Config) (Build, error) {
	cc, ok := cfg.(*ClericConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeCleric, cfg)
	}
	return NewCleric(cc, c.env)
}

func (c *Cleric) Config() Config {
	cc := c.cfg
	return &cc
}

func (c *Cleric) Clone() Build {
	cc := *c
	return &cc
}

func (c *Cleric) WithAccuracy(env accuracy.Env) Build {
	cc := *c
	cc.env = env
	return &cc
}

func (c *Cleric) Presets(env accuracy.Env) []Preset {
	weapon := DefaultClericConfig()
	weapon.Uptime = 0.5

	return presets(env,
		presetSpec{"Cleric (SF + PS)", ClericPotentSpellcasting, DefaultClericConfig()},
		presetSpec{"Cleric (SF + BS)", ClericBlessedStrikes, DefaultClericConfig()},
		presetSpec{"Cleric (SF + PS, 50% spiritual weapon)", ClericPotentSpellcasting, weapon},
	)
}

var clericLabels = map[string]string{
	string(ClericPotentSpellcasting): "Potent Spellcasting",
	string(ClericBlessedStrikes):     "Blessed Strikes",
	string(ClericBoomingBlade):       "Potent Spellcasting w/Booming Blade",
	"cantrip_die":                    "Cantrip die size",
	"save_ability":                   "Save targeted by the cantrip",
	"proc_chance":                    "Booming Blade proc chance",
	"uptime":                         "Spiritual Weapon uptime (decimal)",
}

func (c *Cleric) Describe(key string) string {
	return describe(clericLabels, key)
}

func (c *Cleric) ConfigurableFields() Configurables {
	return Configurables{
		Common: commonFields("proc_chance", "cantrip_die", "save_ability"),
		Dials:  []string{"uptime"},
	}
}
