package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const (
	PaladinGreatsword Variant = "gs"
	PaladinGWM        Variant = "gwm"
	PaladinLongsword  Variant = "longsword"
	PaladinGlaive     Variant = "glaive"
)

const (
	maxSmiteDice          = 5
	improvedSmiteLevel    = 11
	paladinFeatLevel      = 4
	paladinExtraAttackLvl = 5
)

// PaladinConfig configures the paladin
type PaladinConfig struct {
	Common `yaml:",inline"`

	GreatWeaponDie   dice.Die `yaml:"great_weapon_die" json:"great_weapon_die"`
	GreatWeaponCount int      `yaml:"great_weapon_count" json:"great_weapon_count"`
	OneHandedDie     dice.Die `yaml:"one_handed_die" json:"one_handed_die"`
	PolearmDie       dice.Die `yaml:"polearm_die" json:"polearm_die"`

	GreatWeaponStyle bool `yaml:"great_weapon_style" json:"great_weapon_style"`
	// GreatWeaponMaster power attacks with the greatsword from level 4
	GreatWeaponMaster bool `yaml:"great_weapon_master" json:"great_weapon_master"`

	// Rounds is the number of combat rounds per long rest smites are spread over
	Rounds           int  `yaml:"rounds" json:"rounds"`
	OncePerTurn      bool `yaml:"once_per_turn" json:"once_per_turn"`
	HighestSlotFirst bool `yaml:"highest_slot_first" json:"highest_slot_first"`
}

// DefaultPaladinConfig smites with every slot over ten rounds
func DefaultPaladinConfig() *PaladinConfig {
	return &PaladinConfig{
		Common:           Common{Modifiers: DefaultModifiers()},
		GreatWeaponDie:   dice.D6,
		GreatWeaponCount: 2,
		OneHandedDie:     dice.D8,
		PolearmDie:       dice.D10,
		Rounds:           10,
	}
}

func (c *PaladinConfig) Archetype() Archetype { return ArchetypePaladin }

func (c *PaladinConfig) Validate() error {
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
	return requireRounds("rounds", c.Rounds)
}

// Paladin spends its spell slots on divine smite
type Paladin struct {
	base
	cfg PaladinConfig
}

// NewPaladin creates a paladin. A nil config uses DefaultPaladinConfig.
func NewPaladin(cfg *PaladinConfig, env accuracy.Env) (*Paladin, error) {
	if cfg == nil {
		cfg = DefaultPaladinConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, PaladinGreatsword, PaladinGWM, PaladinLongsword, PaladinGlaive)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Paladin{base: b, cfg: c}, nil
}

func (p *Paladin) Archetype() Archetype { return ArchetypePaladin }
func (p *Paladin) Name() string         { return "Paladin" }

func (p *Paladin) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := p.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	res := p.resolver(p.cfg.mix())
	attacks := 1
	if level >= paladinExtraAttackLvl {
		attacks = 2
	}
	polearm := variant == PaladinGlaive && level >= paladinFeatLevel
	smite := p.smite(level, attacks, polearm)

	mod := p.cfg.Modifiers.Normal.At(level)
	var shape attack.Shape
	switch variant {
	case PaladinLongsword:
		shape = attack.Weapon(p.cfg.OneHandedDie)
		if level > 1 {
			shape.Flat = attack.Dueling.FlatDamage
		}
	case PaladinGlaive:
		mod = p.cfg.Modifiers.FeatAt4.At(level)
		shape = p.greatWeapon(level, p.cfg.PolearmDie, 1)
	default:
		shape = p.greatWeapon(level, p.cfg.GreatWeaponDie, p.cfg.GreatWeaponCount)
	}
	smite.apply(&shape)

	toHit := mod
	if variant == PaladinGWM || (variant == PaladinGreatsword && p.cfg.GreatWeaponMaster) {
		mod = p.cfg.Modifiers.FeatAt4.At(level)
		toHit = mod
		if level >= paladinFeatLevel {
			toHit += attack.PowerAttack.Accuracy
			shape.Flat += float64(mod) + attack.PowerAttack.FlatDamage
			shape.AddModifier = false
		}
	}

	primary, err := res.Attacks(level, attacks, toHit, shape)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	if !polearm {
		return primary, nil
	}

	butt := p.greatWeapon(level, dice.D4, 1)
	smite.apply(&butt)
	bonus, err := res.PolearmBonusAttack(level, toHit, butt)
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.NewOutput(primary.DamageOr(0)+bonus.DamageOr(0), primary.AccuracyOr(0)), nil
}

func (p *Paladin) greatWeapon(level int, die dice.Die, count int) attack.Shape {
	shape := attack.Weapon(die)
	shape.Count = count
	if p.cfg.GreatWeaponStyle && level > 1 {
		shape.Flat = attack.GreatWeaponFighting(die, count).FlatDamage
	}
	return shape
}

// smiteDamage is the smite damage spread over every attack of the day
type smiteDamage struct {
	hit  float64
	crit float64
}

// apply adds the smite and, from level 11, Improved Divine Smite's d8
func (s smiteDamage) apply(shape *attack.Shape) {
	shape.HitBonus += s.hit
	shape.CritBonus += s.crit
}

// smite spends the day's slots over the day's attacks. Each slot adds
// 2d8 plus 1d8 per slot level above first, up to 5d8, doubled on a crit.
func (p *Paladin) smite(level, attacksPerRound int, bonusAttack bool) smiteDamage {
	rounds := p.cfg.Rounds
	totalAttacks := rounds * attacksPerRound
	if bonusAttack {
		totalAttacks += rounds
	}

	limit := totalAttacks
	if p.cfg.OncePerTurn {
		limit = rounds
	}

	var smiteDice int
	for _, tier := range AllocateSlots(PaladinSlots(level), p.cfg.HighestSlotFirst, limit) {
		smiteDice += min(tier+2, maxSmiteDice)
	}

	perAttack := dice.D8.Average() * float64(smiteDice) / float64(totalAttacks)
	out := smiteDamage{hit: perAttack, crit: 2 * perAttack}
	if level >= improvedSmiteLevel {
		out.hit += dice.D8.Average()
		out.crit += 2 * dice.D8.Average()
	}
	return out
}

func (p *Paladin) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*PaladinConfig)
	if !ok {
		return nil, wrongConfig(ArchetypePaladin, cfg)
	}
	return NewPaladin(c, p.env)
}

func (p *Paladin) Config() Config {
	c := p.cfg
	return &c
}

func (p *Paladin) Clone() Build {
	c := *p
	return &c
}

func (p *Paladin) WithAccuracy(env accuracy.Env) Build {
	c := *p
	c.env = env
	return &c
}

func (p *Paladin) Presets(env accuracy.Env) []Preset {
	gwf := DefaultPaladinConfig()
	gwf.GreatWeaponStyle = true

	dueling := DefaultPaladinConfig()

	oncePerTurn := DefaultPaladinConfig()
	oncePerTurn.GreatWeaponStyle = true
	oncePerTurn.OncePerTurn = true
	oncePerTurn.HighestSlotFirst = true

	return presets(env,
		presetSpec{"Regular GS Paladin", PaladinGreatsword, gwf},
		presetSpec{"GWM Paladin", PaladinGWM, gwf},
		presetSpec{"Longsword + Dueling Paladin", PaladinLongsword, dueling},
		presetSpec{"Glaive/PAM Paladin", PaladinGlaive, gwf},
		presetSpec{"GS Paladin (once per turn, highest slot first)", PaladinGreatsword, oncePerTurn},
	)
}

var paladinLabels = map[string]string{
	string(PaladinGreatsword): "Greatsword (no subclass)",
	string(PaladinGWM):        "Greatsword w/GWM (no subclass)",
	string(PaladinLongsword):  "Longsword + dueling (no subclass)",
	string(PaladinGlaive):     "Glaive w/PAM (no subclass)",
	"great_weapon_die":        "Great weapon die size",
	"great_weapon_count":      "Great weapon dice",
	"one_handed_die":          "One-handed weapon die size",
	"polearm_die":             "Polearm die size",
	"rounds":                  "Rounds per LR",
	"great_weapon_style":      "Use GW Fighting Style",
	"great_weapon_master":     "Take GWM at 4",
	"once_per_turn":           "Limit smites to once per turn",
	"highest_slot_first":      "Use highest slot for smiting first",
}

func (p *Paladin) Describe(key string) string {
	return describe(paladinLabels, key)
}

func (p *Paladin) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields("great_weapon_die", "great_weapon_count", "one_handed_die", "polearm_die"),
		Toggles: []string{"great_weapon_style", "great_weapon_master", "once_per_turn", "highest_slot_first"},
		Dials:   []string{"rounds"},
	}
}
