package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const (
	WarlockNoResources Variant = "nr"
	WarlockHex         Variant = "hex"
)

// WarlockConfig configures the eldritch blast warlock
type WarlockConfig struct {
	Common         `yaml:",inline"`
	AgonizingBlast bool `yaml:"agonizing_blast" json:"agonizing_blast"`
	// Rounds is the number of combat rounds per short rest
	Rounds int `yaml:"rounds" json:"rounds"`
	// Duration is how many rounds one casting of hex lasts in practice
	Duration int `yaml:"duration" json:"duration"`
}

// DefaultWarlockConfig blasts without invocations or hex
func DefaultWarlockConfig() *WarlockConfig {
	return &WarlockConfig{
		Common: Common{Modifiers: DefaultModifiers()},
		Rounds: 1,
	}
}

func (c *WarlockConfig) Archetype() Archetype { return ArchetypeWarlock }

func (c *WarlockConfig) Validate() error {
	if err := requireRounds("rounds", c.Rounds); err != nil {
		return err
	}
	return requireNonNegative("duration", c.Duration)
}

type Warlock struct {
	base
	cfg WarlockConfig
}

// NewWarlock creates a warlock. A nil config uses DefaultWarlockConfig.
func NewWarlock(cfg *WarlockConfig, env accuracy.Env) (*Warlock, error) {
	if cfg == nil {
		cfg = DefaultWarlockConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(env, WarlockNoResources, WarlockHex)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Warlock{base: b, cfg: c}, nil
}

func (w *Warlock) Archetype() Archetype { return ArchetypeWarlock }
func (w *Warlock) Name() string         { return "Warlock" }

func (w *Warlock) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := w.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	mod := w.cfg.Modifiers.Normal.At(level)
	shape := attack.Shape{
		Die:         dice.D10,
		Count:       1,
		AddModifier: w.cfg.AgonizingBlast && level > 1,
	}
	if variant == WarlockHex {
		shape.HitBonus = w.hexUptime(level) * dice.D6.Average()
		shape.HitBonusOnCrit = true
	}
	return w.resolver(w.cfg.mix()).Cantrip(level, dice.CantripDice(level), mod, shape)
}

// warlockSlots is the pact slot count and slot level at a level
func warlockSlots(level int) (slots, slotLevel int) {
	slotLevel = min((level+1)/2, 5)
	if level == 1 {
		return 1, slotLevel
	}
	return 2, slotLevel
}

// hexUptime is the share of beams hex covers over a short rest. From 3rd
// level slots hex lasts hours, so outlasting the rest once is enough.
func (w *Warlock) hexUptime(level int) float64 {
	slots, slotLevel := warlockSlots(level)
	rounds, duration := w.cfg.Rounds, w.cfg.Duration
	switch {
	case duration >= 2*rounds:
		return 1
	case duration >= rounds && slotLevel >= 3:
		return 1
	default:
		return clampFraction(float64(slots*duration) / float64(rounds))
	}
}

func (w *Warlock) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*WarlockConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeWarlock, cfg)
	}
	return NewWarlock(c, w.env)
}

func (w *Warlock) Config() Config {
	c := w.cfg
	return &c
}

func (w *Warlock) Clone() Build {
	c := *w
	return &c
}

func (w *Warlock) WithAccuracy(env accuracy.Env) Build {
	c := *w
	c.env = env
	return &c
}

func (w *Warlock) Presets(env accuracy.Env) []Preset {
	blast := DefaultWarlockConfig()
	blast.AgonizingBlast = true

	hex := DefaultWarlockConfig()
	hex.AgonizingBlast = true
	hex.Rounds = 10
	hex.Duration = 10

	return presets(env,
		presetSpec{"Warlock (EB/AB, no hex)", WarlockNoResources, blast},
		presetSpec{"Warlock (EB/AB, hex every SR)", WarlockHex, hex},
	)
}

var warlockLabels = map[string]string{
	string(WarlockNoResources): "No hex",
	string(WarlockHex):         "Use slots on Hex",
	"agonizing_blast":          "Has Agonizing Blast",
	"rounds":                   "Combat rounds per SR",
	"duration":                 "Hex duration/cast (rounds)",
}

func (w *Warlock) Describe(key string) string {
	return describe(warlockLabels, key)
}

func (w *Warlock) ConfigurableFields() Configurables {
	return Configurables{
		Common:  commonFields(),
		Toggles: []string{"agonizing_blast"},
		Dials:   []string{"rounds", "duration"},
	}
}
