package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

const DruidMoon Variant = "moon"

// polarBearLevel is when wild shape reaches CR 1 beasts with a better stat block
const polarBearLevel = 6

// DruidConfig configures the moon druid
type DruidConfig struct {
	Common `yaml:",inline"`
}

// DefaultDruidConfig is a moon druid with no advantage
func DefaultDruidConfig() *DruidConfig {
	return &DruidConfig{Common: Common{Modifiers: DefaultModifiers()}}
}

func (c *DruidConfig) Archetype() Archetype { return ArchetypeDruid }
func (c *DruidConfig) Validate() error      { return nil }

// Druid fights with produce flame at level 1 and in bear form afterwards.
// Beast attacks use the stat block's own bonuses.
type Druid struct {
	base
	cfg DruidConfig
}

// NewDruid creates a druid. A nil config uses DefaultDruidConfig.
func NewDruid(cfg *DruidConfig, env accuracy.Env) (*Druid, error) {
	if cfg == nil {
		cfg = DefaultDruidConfig()
	}
	b, err := newBase(env, DruidMoon)
	if err != nil {
		return nil, err
	}
	c := *cfg
	c.Common = c.Common.normalized(DefaultModifiers())
	return &Druid{base: b, cfg: c}, nil
}

func (d *Druid) Archetype() Archetype { return ArchetypeDruid }
func (d *Druid) Name() string         { return "Druid" }

func (d *Druid) Calculate(variant Variant, level int) (attack.DamageOutput, error) {
	if err := d.check(variant, level); err != nil {
		return attack.DamageOutput{}, err
	}

	res := d.resolver(d.cfg.mix())
	if level == 1 {
		return res.ScalingCantrip(level, d.cfg.Modifiers.Normal.At(level), dice.D8, 0)
	}

	toHit, damageMod := 6, 4.0
	if level >= polarBearLevel {
		toHit, damageMod = 7, 5
	}
	bite, err := res.Attacks(level, 1, toHit, attack.Shape{Die: dice.D8, Count: 1, Flat: damageMod, Unproficient: true})
	if err != nil {
		return attack.DamageOutput{}, err
	}
	claws, err := res.Attacks(level, 1, toHit, attack.Shape{Die: dice.D6, Count: 2, Flat: damageMod, Unproficient: true})
	if err != nil {
		return attack.DamageOutput{}, err
	}
	return attack.Add(bite, claws), nil
}

func (d *Druid) Configure(cfg Config) (Build, error) {
	c, ok := cfg.(*DruidConfig)
	if !ok {
		return nil, wrongConfig(ArchetypeDruid, cfg)
	}
	return NewDruid(c, d.env)
}

func (d *Druid) Config() Config {
	c := d.cfg
	return &c
}

func (d *Druid) Clone() Build {
	c := *d
	return &c
}

func (d *Druid) WithAccuracy(env accuracy.Env) Build {
	c := *d
	c.env = env
	return &c
}

func (d *Druid) Presets(env accuracy.Env) []Preset {
	return presets(env,
		presetSpec{"Moon Druid (brown/polar bear only)", DruidMoon, DefaultDruidConfig()},
	)
}

var druidLabels = map[string]string{
	string(DruidMoon): "Circle of the Moon",
}

func (d *Druid) Describe(key string) string {
	return describe(druidLabels, key)
}

func (d *Druid) ConfigurableFields() Configurables {
	return Configurables{Common: commonFields()}
}
