package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const (
	MonkNoSubclass Variant = "no-sub"
	MonkMercy      Variant = "mercy"
	MonkAstral     Variant = "astral"
)

const (
	monkSubclassLevel = 3
	monkExtraAttack   = 5
	monkMidTier       = 11
	monkHighTier      = 17
)

// MonkConfig configures the monk
type MonkConfig struct {
	Common      `yaml:",inline"`
	UnarmedOnly bool `yaml:"unarmed_only" json:"unarmed_only"`
	// Rests is the number of full ki pools spent over Rounds
	Rests  int `yaml:"rests" json:"rests"`
	Rounds int `yaml:"rounds" json:"rounds"`
	// PrioritizeHandOfHarm spends ki on Hand of Harm before Flurry of Blows
	PrioritizeHandOfHarm bool `yaml:"prioritize_hand_of_harm" json:"prioritize_hand_of_harm"`
}

// DefaultMonkConfig fights with a quarterstaff and no ki
func DefaultMonkConfig() *MonkConfig {
	return &MonkConfig{
		Common:               Common{Modifiers: DefaultModifiers()},
		Rounds:               1,
		PrioritizeHandOfHarm: true,
	}
}

func (c *MonkConfig) Archetype() Archetype { return ArchetypeMonk }

func (c *MonkConfig) Validate() error {
	if err := requireNonNegative("rests", c.Rests); err != nil {
		return err
	}
	return requireRounds("rounds", c.Rounds)
}

type Monk struct {
	base
	cfg MonkConfig
}

// NewMonk creates a monk. A nil config uses DefaultMonkConfig.
func NewMonk(cfg *MonkConfig, env accuracy.Env) (*Monk, error) {
	if cfg == nil {
		cfg = DefaultMonkConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, MonkNoSubclass, MonkMercy, MonkAstral)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Monk{base: b, cfg: c}, nil
}

func (m *Monk) Archetype() Archetype { return ArchetypeMonk }
func (m *Monk) Name() string         { return "Monk" }

func martialArtsDie(level int) dice.Die {
	switch {
	case level < 5:
		return dice.D4
	case level < 11:
		return dice.D6
	case level < 17:
		return dice.D8
	default:
		return dice.D10
	}
}

// monkRound is what a monk does every round without spending ki
type monkRound struct {
	output  attack.DamageOutput
	attacks int
}

func (m *Monk) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := m.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	res := m.resolver(m.cfg.mix())
	mod := m.cfg.Modifiers.Normal.At(level)

	round, err := m.baseRound(res, level, mod)
	if err != nil {
		return attack.DamageOutput{}, err
	}

	ki := level * m.cfg.Rests
	rounds := m.cfg.Rounds

	var extra float64
	switch {
	case variant == MonkMercy && level >= monkSubclassLevel:
		extra, err = m.mercy(res, level, mod, ki, round.attacks)
	case variant == MonkAstral && level >= monkSubclassLevel:
		extra, err = m.astral(res, level, mod, ki, round.attacks)
	default:
		extra, err = m.flurry(res, level, mod, min(rounds, ki))
	}
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.NewOutput(round.output.DamageOr(0)+extra, round.output.AccuracyOr(0)), nil
}

func (m *Monk) baseRound(res *attack.Resolver, level, mod int) (monkRound, error) {
	die := martialArtsDie(level)
	if m.cfg.UnarmedOnly {
		strikes := 2
		if level >= monkExtraAttack {
			strikes = 3
		}
		out, err := res.Attacks(level, strikes, mod, attack.Weapon(die))
		return monkRound{output: out, attacks: strikes}, err
	}

	swings := 1
	if level >= monkExtraAttack {
		swings = 2
	}
	staff, err := res.Attacks(level, swings, mod, attack.Weapon(max(dice.D8, die)))
	if err != nil {
		return monkRound{}, err
	}
	strike, err := res.Attacks(level, 1, mod, attack.Weapon(die))
	if err != nil {
		return monkRound{}, err
	}
	return monkRound{
		output:  attack.NewOutput(staff.DamageOr(0)+strike.DamageOr(0), staff.AccuracyOr(0)),
		attacks: swings + 1,
	}, nil
}

// flurry is the extra strike of each flurry round averaged over every round
func (m *Monk) flurry(res *attack.Resolver, level, mod, flurryRounds int) (float64, error) {
	if level == 1 || flurryRounds <= 0 {
		return 0, nil
	}
	out, err := res.Attacks(level, flurryRounds, mod, attack.Weapon(martialArtsDie(level)))
	if err != nil {
		return 0, err
	}
	return out.DamageOr(0) / float64(m.cfg.Rounds), nil
}

// mercy splits ki between Hand of Harm and Flurry of Blows. Hand of Harm
// lands once per turn on the first hit, so a flurry round gives it one more try.
// From level 11 Hand of Harm rides free on every flurry.
func (m *Monk) mercy(res *attack.Resolver, level, mod, ki, attacks int) (float64, error) {
	rounds := m.cfg.Rounds

	var harmRounds, flurryRounds, overlap int
	if level >= monkMidTier {
		flurryRounds = min(ki, rounds)
		overlap = flurryRounds
		harmRounds = flurryRounds + min(ki-flurryRounds, rounds-flurryRounds)
	} else {
		first, second := SplitCharges(ki, rounds)
		harmRounds, flurryRounds = first, second
		if !m.cfg.PrioritizeHandOfHarm {
			harmRounds, flurryRounds = second, first
		}
		overlap = min(harmRounds, flurryRounds)
	}

	flurry, err := m.flurry(res, level, mod, flurryRounds)
	if err != nil {
		return 0, err
	}
	withFlurry, err := res.ChanceToHitAtLeastOnce(level, mod, attacks+1)
	if err != nil {
		return 0, err
	}
	without, err := res.ChanceToHitAtLeastOnce(level, mod, attacks)
	if err != nil {
		return 0, err
	}

	harmDamage := martialArtsDie(level).Average() + float64(mod)
	landed := float64(overlap)*withFlurry + float64(harmRounds-overlap)*without
	return flurry + landed*harmDamage/float64(rounds), nil
}

// astral summons the arms once, paying ki that would otherwise flurry
func (m *Monk) astral(res *attack.Resolver, level, mod, ki, attacks int) (float64, error) {
	rounds := m.cfg.Rounds
	die := martialArtsDie(level)

	flurry, err := m.flurry(res, level, mod, max(0, min(rounds-1, ki-1)))
	if err != nil {
		return 0, err
	}
	if ki <= 0 {
		return flurry, nil
	}

	fail, err := res.SaveChance(level, accuracy.DEX, mod)
	if err != nil {
		return 0, err
	}
	total := flurry + fail*2*die.Average()/float64(rounds)

	// the arms trigger on the summoning round and once more during the fight
	if level >= monkMidTier {
		firstRound := attacks - 1
		if level >= monkHighTier {
			firstRound = attacks
		}
		first, err := res.ChanceToHitAtLeastOnce(level, mod, firstRound)
		if err != nil {
			return 0, err
		}
		later, err := res.ChanceToHitAtLeastOnce(level, mod, attacks+1)
		if err != nil {
			return 0, err
		}
		total += (first + later) * die.Average() / float64(rounds)
	}
	if level >= monkHighTier {
		arm, err := res.Attacks(level, 1, mod, attack.Weapon(die))
		if err != nil {
			return 0, err
		}
		total += arm.DamageOr(0)
	}
	return total, nil
}

func (m *Monk) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*MonkConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeMonk, cfg)
	}
	return NewMonk(c, m.env)
}

func (m *Monk) Config() Config {
	c := m.cfg
	return &c
}

func (m *Monk) Clone() Build {
	c := *m
	return &c
}

func (m *Monk) WithAccuracy(env accuracy.Env) Build {
	c := *m
	c.env = env
	return &c
}

func (m *Monk) Presets(env accuracy.Env) []Preset {
	unarmed := DefaultMonkConfig()
	unarmed.UnarmedOnly = true

	mercy := DefaultMonkConfig()
	mercy.UnarmedOnly = true
	mercy.Rests = 2
	mercy.Rounds = 12

	return presets(env,
		presetSpec{"Monk (unarmed, no ki)", MonkNoSubclass, unarmed},
		presetSpec{"Mercy Monk (unarmed, 2 ki pools / 12 rounds)", MonkMercy, mercy},
		presetSpec{"Astral Monk (unarmed, 2 ki pools / 12 rounds)", MonkAstral, mercy},
	)
}

var monkLabels = map[string]string{
	string(MonkNoSubclass):    "No subclass selected",
	string(MonkMercy):         "Way of Mercy",
	string(MonkAstral):        "Way of the Astral Arms",
	"unarmed_only":            "Only use unarmed strikes",
	"rests":                   "Ki pools per long rest",
	"rounds":                  "Combat rounds per long rest",
	"prioritize_hand_of_harm": "Spend ki on Hand of Harm before Flurry",
}

func (m *Monk) Describe(key string) string {
	return describe(monkLabels, key)
}

func (m *Monk) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields(),
		Toggles: []string{"unarmed_only", "prioritize_hand_of_harm"},
		Dials:   []string{"rounds", "rests"},
	}
}
