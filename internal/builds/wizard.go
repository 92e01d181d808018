package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const (
	WizardCantripOnly  Variant = "cantrip-only"
	WizardBladesinger  Variant = "bladesinger"
	WizardMagicMissile Variant = "magic-missile"
)

const (
	empoweredEvocationLevel = 10
	bladesongExtraAttack    = 6
	maxRecoveredSlotLevel   = 5
)

// WizardConfig configures the wizard
type WizardConfig struct {
	Common     `yaml:",inline"`
	CantripDie dice.Die `yaml:"cantrip_die" json:"cantrip_die"`
	WeaponDie  dice.Die `yaml:"weapon_die" json:"weapon_die"`
	// PreferWeapons makes the bladesinger lead with dexterity instead of intelligence
	PreferWeapons bool `yaml:"prefer_weapons" json:"prefer_weapons"`
	// ProcChance is how often booming blade's target moves
	ProcChance         float64 `yaml:"proc_chance" json:"proc_chance"`
	EmpoweredEvocation bool    `yaml:"empowered_evocation" json:"empowered_evocation"`
	// Rounds is the total number of combat rounds per day
	Rounds               int  `yaml:"rounds" json:"rounds"`
	ArcaneRecovery       bool `yaml:"arcane_recovery" json:"arcane_recovery"`
	MagicMissileRollOnce bool `yaml:"magic_missile_roll_once" json:"magic_missile_roll_once"`
}

// DefaultWizardConfig casts fire bolt over a ten round day
func DefaultWizardConfig() *WizardConfig {
	return &WizardConfig{
		Common:     Common{Modifiers: DefaultModifiers()},
		CantripDie: dice.D10,
		WeaponDie:  dice.D8,
		Rounds:     10,
	}
}

func (c *WizardConfig) Archetype() Archetype { return ArchetypeWizard }

func (c *WizardConfig) Validate() error {
	if err := requireDie("cantrip_die", c.CantripDie, c.CantripDie.Valid()); err != nil {
		return err
	}
	if err := requireDie("weapon_die", c.WeaponDie, c.WeaponDie.Valid()); err != nil {
		return err
	}
	return requireRounds("rounds", c.Rounds)
}

type Wizard struct {
	base
	cfg WizardConfig
}

// NewWizard creates a wizard. A nil config uses DefaultWizardConfig.
func NewWizard(cfg *WizardConfig, env accuracy.Env) (*Wizard, error) {
	if cfg == nil {
		cfg = DefaultWizardConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, WizardCantripOnly, WizardBladesinger, WizardMagicMissile)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	c.ProcChance = clampFraction(c.ProcChance)
	return &Wizard{base: b, cfg: c}, nil
}

func (w *Wizard) Archetype() Archetype { return ArchetypeWizard }
func (w *Wizard) Name() string         { return "Wizard" }

func (w *Wizard) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := w.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}
	res := w.resolver(w.cfg.mix())
	switch variant {
	case WizardBladesinger:
		return w.bladesinger(res, level)
	case WizardMagicMissile:
		return w.magicMissile(res, level)
	default:
		return w.cantrip(res, level)
	}
}

func (w *Wizard) empowered(level int) float64 {
	if w.cfg.EmpoweredEvocation && level >= empoweredEvocationLevel {
		return float64(w.cfg.Modifiers.Normal.At(level))
	}
	return 0
}

func (w *Wizard) cantrip(res *attack.Resolver, level int) (attack.DamageOutput, error) {
	return res.ScalingCantrip(level, w.cfg.Modifiers.Normal.At(level), w.cfg.CantripDie, w.empowered(level))
}

func (w *Wizard) bladesinger(res *attack.Resolver, level int) (attack.DamageOutput, error) {
	weaponMod := w.cfg.Modifiers.Secondary.At(level)
	spellMod := w.cfg.Modifiers.Normal.At(level)
	if w.cfg.PreferWeapons {
		weaponMod, spellMod = spellMod, weaponMod
	}

	switch {
	case level < bladesongExtraAttack && !w.cfg.PreferWeapons:
		return res.ScalingCantrip(level, spellMod, w.cfg.CantripDie, 0)
	case level < bladesongExtraAttack:
		return res.BoomingBlade(level, w.cfg.ProcChance, weaponMod, attack.Weapon(w.cfg.WeaponDie))
	}

	weapon, err := res.Attacks(level, 1, weaponMod, attack.Weapon(w.cfg.WeaponDie))
	if err != nil {
		return attack.DamageOutput{}, err
	}
	blade, err := res.BoomingBlade(level, w.cfg.ProcChance, weaponMod, attack.Weapon(w.cfg.WeaponDie))
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.Add(weapon, blade), nil
}

// magicMissile casts one missile per slot, richest first, and fire bolt once
// the slots run out. Missiles never miss.
func (w *Wizard) magicMissile(res *attack.Resolver, level int) (attack.DamageOutput, error) {
	fallback, err := w.cantrip(res, level)
	if err != nil {
		return attack.DamageOutput{}, err
	}

	extra := w.empowered(level)
	dart := dice.D4.Average() + 1

	var damage, hitChance float64
	rounds := ExpandSlots(w.slots(level), w.cfg.Rounds)
	for _, slotLevel := range rounds {
		if slotLevel == 0 {
			damage += fallback.DamageOr(0)
			hitChance += fallback.AccuracyOr(0)
			continue
		}
		darts := float64(2 + slotLevel)
		if w.cfg.MagicMissileRollOnce {
			damage += darts * (dart + extra)
		} else {
			damage += darts*dart + extra
		}
		hitChance++
	}

	n := float64(len(rounds))
	return attack.NewOutput(damage/n, hitChance/n), nil
}

// slots are the day's slot pools plus whatever arcane recovery brings back
func (w *Wizard) slots(level int) []int {
	pools := FullCasterSlots(level)
	if !w.cfg.ArcaneRecovery {
		return pools
	}
	budget := (level + 1) / 2
	for budget > 0 {
		slotLevel := min(budget, maxRecoveredSlotLevel, len(pools))
		pools[slotLevel-1]++
		budget -= slotLevel
	}
	return pools
}

func (w *Wizard) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*WizardConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeWizard, cfg)
	}
	return NewWizard(c, w.env)
}

func (w *Wizard) Config() Config {
	c := w.cfg
	return &c
}

func (w *Wizard) Clone() Build {
	c := *w
	return &c
}

func (w *Wizard) WithAccuracy(env accuracy.Env) Build {
	c := *w
	c.env = env
	return &c
}

func (w *Wizard) Presets(env accuracy.Env) []Preset {
	missiles := DefaultWizardConfig()
	missiles.EmpoweredEvocation = true
	missiles.MagicMissileRollOnce = true

	blade := DefaultWizardConfig()
	blade.PreferWeapons = true
	blade.ProcChance = 0.5

	return presets(env,
		presetSpec{"Wizard (FB only, non-evo)", WizardCantripOnly, DefaultWizardConfig()},
		presetSpec{"MM Mage", WizardMagicMissile, missiles},
		presetSpec{"Bladesinger (weapons first, 50% BB proc)", WizardBladesinger, blade},
	)
}

var wizardLabels = map[string]string{
	string(WizardCantripOnly):  "Non-bladesinger, only cantrips",
	string(WizardBladesinger):  "Bladesinger",
	string(WizardMagicMissile): "Casts MM if slots, otherwise firebolt",
	"cantrip_die":              "Cantrip die size",
	"weapon_die":               "Weapon die size",
	"prefer_weapons":           "Focus on weapons, not spells (BS)",
	"empowered_evocation":      "Has Empowered Evocation",
	"proc_chance":              "Booming Blade proc chance",
	"rounds":                   "Total combat rounds per day",
	"arcane_recovery":          "Uses Arcane Recovery",
	"magic_missile_roll_once":  "Roll MM as N*(1d4+1), not (Nd4+N)",
}

func (w *Wizard) Describe(key string) string {
	return describe(wizardLabels, key)
}

func (w *Wizard) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("proc_chance", "cantrip_die", "weapon_die"),
		Toggles: []string{"empowered_evocation", "prefer_weapons", "arcane_recovery", "magic_missile_roll_once"},
		Dials:   []string{"rounds"},
	}
}
