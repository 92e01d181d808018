package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const (
	FighterGreatsword    Variant = "gs"
	FighterSwordAndBoard Variant = "snb"
	FighterPowerAttack   Variant = "gs_pa"
	FighterPolearm       Variant = "pam"
	FighterPolearmAndGWM Variant = "gwm_pam"
)

// fighterNeverFeatLevel is past the level cap, so the feat is never taken
const fighterNeverFeatLevel = 21

// FighterConfig configures the champion fighter
type FighterConfig struct {
	Common `yaml:",inline"`

	GreatWeaponDie   dice.Die `yaml:"great_weapon_die" json:"great_weapon_die"`
	GreatWeaponCount int      `yaml:"great_weapon_count" json:"great_weapon_count"`
	OneHandedDie     dice.Die `yaml:"one_handed_die" json:"one_handed_die"`
	PolearmDie       dice.Die `yaml:"polearm_die" json:"polearm_die"`

	ActionSurge bool `yaml:"action_surge" json:"action_surge"`
	// GWMStart is the level Great Weapon Master is taken, 21 for never
	GWMStart int `yaml:"gwm_start" json:"gwm_start"`
	// PAMStart is the level Polearm Master is taken
	PAMStart      int `yaml:"pam_start" json:"pam_start"`
	ShortRests    int `yaml:"short_rests" json:"short_rests"`
	RoundsPerRest int `yaml:"rounds_per_rest" json:"rounds_per_rest"`
}

// DefaultFighterConfig is a greatsword champion without action surge or feats
func DefaultFighterConfig() *FighterConfig {
	return &FighterConfig{
		Common:           Common{Modifiers: fighterModifierTables()},
		GreatWeaponDie:   dice.D6,
		GreatWeaponCount: 2,
		OneHandedDie:     dice.D8,
		PolearmDie:       dice.D10,
		GWMStart:         fighterNeverFeatLevel,
		PAMStart:         1,
		RoundsPerRest:    1,
	}
}

func (c *FighterConfig) Archetype() Archetype { return ArchetypeFighter }

func (c *FighterConfig) Validate() error {
	for _, d := range []struct {
		name string
		die  dice.Die
	}{
		{"great_weapon_die", c.GreatWeaponDie},
		{"one_handed_die", c.OneHandedDie},
		{"polearm_die", c.PolearmDie},
	} {
		if err := requireDie(d.name, d.die, d.die.Valid()); err != nil {
			return err
		}
	}
	if c.GreatWeaponCount < 1 {
		return dnderr.InvalidDamageShapef("great_weapon_count %d must be positive", c.GreatWeaponCount)
	}
	if err := requireNonNegative("short_rests", c.ShortRests); err != nil {
		return err
	}
	if err := requireRounds("gwm_start", c.GWMStart); err != nil {
		return err
	}
	if err := requireRounds("pam_start", c.PAMStart); err != nil {
		return err
	}
	return requireRounds("rounds_per_rest", c.RoundsPerRest)
}

// Fighter is a champion fighter
type Fighter struct {
	base
	cfg FighterConfig
}

// NewFighter creates a fighter. A nil config uses DefaultFighterConfig.
func NewFighter(cfg *FighterConfig, env accuracy.Env) (*Fighter, error) {
	if cfg == nil {
		cfg = DefaultFighterConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, FighterGreatsword, FighterSwordAndBoard, FighterPowerAttack, FighterPolearm, FighterPolearmAndGWM)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(fighterModifierTables())
	return &Fighter{base: b, cfg: c}, nil
}

func (f *Fighter) Archetype() Archetype { return ArchetypeFighter }
func (f *Fighter) Name() string         { return "Fighter" }

func (f *Fighter) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := f.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	res := f.resolver(f.cfg.mix())
	greatsword := weaponSpec{die: f.cfg.GreatWeaponDie, count: f.cfg.GreatWeaponCount}
	polearm := weaponSpec{die: f.cfg.PolearmDie, count: 1}

	switch variant {
	case FighterSwordAndBoard:
		return f.dueling(res, level)
	case FighterPowerAttack:
		return f.greatWeapon(res, level, greatsword, f.cfg.GWMStart, fighterNeverFeatLevel)
	case FighterPolearm:
		return f.greatWeapon(res, level, polearm, fighterNeverFeatLevel, f.cfg.PAMStart)
	case FighterPolearmAndGWM:
		return f.greatWeapon(res, level, polearm, f.cfg.GWMStart, f.cfg.PAMStart)
	default:
		return f.greatWeapon(res, level, greatsword, fighterNeverFeatLevel, fighterNeverFeatLevel)
	}
}

func fighterAttacks(level int) int {
	switch {
	case level < 5:
		return 1
	case level < 11:
		return 2
	case level < 20:
		return 3
	default:
		return 4
	}
}

// fighterCritRange is Improved and then Superior Critical
func fighterCritRange(level int) int {
	switch {
	case level < 3:
		return 0
	case level < 15:
		return 1
	default:
		return 2
	}
}

func fighterSurges(level int) int {
	switch {
	case level < 2:
		return 0
	case level < 17:
		return 1
	default:
		return 2
	}
}

// actionSurgeRate is the share of rounds doubled by action surge over an adventuring day
func (f *Fighter) actionSurgeRate(level int) float64 {
	if !f.cfg.ActionSurge {
		return 0
	}
	rests := f.cfg.ShortRests + 1
	return UptimeFraction(fighterSurges(level)*rests, f.cfg.RoundsPerRest*rests)
}

type weaponSpec struct {
	die   dice.Die
	count int
}

// greatWeapon scores great weapon fighting with optional power attack and
// polearm bonus attack. Feats taken at or below level count from their start.
func (f *Fighter) greatWeapon(res *attack.Resolver, level int, weapon weaponSpec, gwmStart, pamStart int) (attack.DamageOutput, error) {
	mod := f.cfg.Modifiers.Normal.At(level)
	if tookFeatAtImprovement(gwmStart) || tookFeatAtImprovement(pamStart) {
		mod = f.cfg.Modifiers.FeatAt4.At(level)
	}
	critRange := fighterCritRange(level)
	powerAttack := level >= gwmStart

	shape := greatWeaponShape(weapon, mod, powerAttack)
	shape.CritRange = critRange
	toHit := mod
	if powerAttack {
		toHit += attack.PowerAttack.Accuracy
	}

	primary, err := res.Attacks(level, fighterAttacks(level), toHit, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}

	var bonus attack.DamageOutput
	if level >= pamStart {
		butt := greatWeaponShape(weaponSpec{die: dice.D4, count: 1}, mod, powerAttack)
		butt.CritRange = critRange
		bonus, err = res.PolearmBonusAttack(level, toHit, butt)
		if err != nil {
			return attack.DamageOutput{}, err
		}
	}

	dmg := (1+f.actionSurgeRate(level))*primary.DamageOr(0) + bonus.DamageOr(0)
	return attack.NewOutput(dmg, primary.AccuracyOr(0)), nil
}

// greatWeaponShape carries the strength modifier as flat damage when power
// attacking, since the roll modifier then includes the -5.
func greatWeaponShape(weapon weaponSpec, mod int, powerAttack bool) attack.Shape {
	shape := attack.Shape{
		Die:         weapon.die,
		Count:       weapon.count,
		Flat:        attack.GreatWeaponFighting(weapon.die, weapon.count).FlatDamage,
		AddModifier: true,
	}
	if powerAttack {
		shape.Flat += float64(mod) + attack.PowerAttack.FlatDamage
		shape.AddModifier = false
	}
	return shape
}

func tookFeatAtImprovement(start int) bool {
	return start > 1 && start < fighterNeverFeatLevel
}

func (f *Fighter) dueling(res *attack.Resolver, level int) (attack.DamageOutput, error) {
	mod := f.cfg.Modifiers.Normal.At(level)
	shape := attack.Weapon(f.cfg.OneHandedDie)
	shape.Flat = attack.Dueling.FlatDamage
	shape.CritRange = fighterCritRange(level)

	primary, err := res.Attacks(level, fighterAttacks(level), mod, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return primary.Scale(1 + f.actionSurgeRate(level)), nil
}

func (f *Fighter) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*FighterConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeFighter, cfg)
	}
	return NewFighter(c, f.env)
}

func (f *Fighter) Config() Config {
	c := f.cfg
	return &c
}

func (f *Fighter) Clone() Build {
	c := *f
	return &c
}

func (f *Fighter) WithAccuracy(env accuracy.Env) Build {
	c := *f
	c.env = env
	return &c
}

func (f *Fighter) Presets(env accuracy.Env) []Preset {
	noSurge := DefaultFighterConfig()

	surge := DefaultFighterConfig()
	surge.ActionSurge = true
	surge.RoundsPerRest = 4

	powerAttack := DefaultFighterConfig()
	powerAttack.ActionSurge = true
	powerAttack.RoundsPerRest = 9
	powerAttack.GWMStart = 1

	polearm := DefaultFighterConfig()
	polearm.ActionSurge = true
	polearm.RoundsPerRest = 9

	gwmPolearm := DefaultFighterConfig()
	gwmPolearm.ActionSurge = true
	gwmPolearm.RoundsPerRest = 9
	gwmPolearm.GWMStart = 4

	return presets(env,
		presetSpec{"GS Champion (No AS)", FighterGreatsword, noSurge},
		presetSpec{"GS Champion (1 SR / 4 rounds)", FighterGreatsword, surge},
		presetSpec{"SnB Champion (1 SR / 4 rounds)", FighterSwordAndBoard, surge},
		presetSpec{"GWF (GS) Champion (Always Power Attack, 1 SR / 9 rounds)", FighterPowerAttack, powerAttack},
		presetSpec{"GWF (glaive) Champion (PAM at 1, no GWM, 1 SR / 9 rounds)", FighterPolearm, polearm},
		presetSpec{"GWF (glaive) Champion (PAM at 1, Power Attack from 4, 1 SR / 9 rounds)", FighterPolearmAndGWM, gwmPolearm},
	)
}

var fighterLabels = map[string]string{
	string(FighterGreatsword):    "Greatsword (Champion)",
	string(FighterSwordAndBoard): "Sword n' Board (Champion)",
	string(FighterPowerAttack):   "Power Attacking Greatsword",
	string(FighterPolearm):       "Pole Arm Master (glaive)",
	string(FighterPolearmAndGWM): "GWM/PAM (glaive)",
	"great_weapon_die":           "Great weapon die size",
	"great_weapon_count":         "Great weapon dice",
	"one_handed_die":             "One-handed weapon die size",
	"polearm_die":                "Polearm die size",
	"action_surge":               "Enable Action Surge",
	"gwm_start":                  "GWM starting at level",
	"pam_start":                  "PAM starting at level",
	"short_rests":                "Short rests per LR",
	"rounds_per_rest":            "Combat rounds per SR",
}

func (f *Fighter) Describe(key string) string {
	return describe(fighterLabels, key)
}

func (f *Fighter) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("great_weapon_die", "great_weapon_count", "one_handed_die", "polearm_die"),
		Toggles: []string{"action_surge"},
		Dials:   []string{"gwm_start", "pam_start", "short_rests", "rounds_per_rest"},
	}
}
