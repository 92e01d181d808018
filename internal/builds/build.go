// Package builds holds the per-archetype damage formulas.
//
// Every archetype implements Build. Configurations are typed per archetype,
// validated when a build is constructed and replaced wholesale by Configure.
// Builds never mutate after construction, so a build can be shared between
// goroutines; Clone and WithAccuracy return independent copies.
package builds

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/attack"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Archetype names a build family
type Archetype string

const (
	ArchetypeRogue     Archetype = "rogue"
	ArchetypeFighter   Archetype = "fighter"
	ArchetypeBarbarian Archetype = "barbarian"
	ArchetypePaladin   Archetype = "paladin"
	ArchetypeRanger    Archetype = "ranger"
	ArchetypeWarlock   Archetype = "warlock"
	ArchetypeSorcerer  Archetype = "sorcerer"
	ArchetypeWizard    Archetype = "wizard"
	ArchetypeCleric    Archetype = "cleric"
	ArchetypeDruid     Archetype = "druid"
	ArchetypeBard      Archetype = "bard"
	ArchetypeMonk      Archetype = "monk"
	ArchetypeCustom    Archetype = "custom"
)

// Variant tags one damage formula of an archetype
type Variant string

// Build computes expected damage for one archetype
type Build interface {
	Archetype() Archetype
	Name() string
	ValidTypes() []Variant

	// Calculate fails with an unsupported level error outside 1-20 and an
	// unsupported variant error for tags outside ValidTypes.
	Calculate(variant Variant, level int) (attack.DamageOutput, error)

	// Configure returns a new build with cfg replacing the configuration
	Configure(cfg Config) (Build, error)
	Config() Config
	Clone() Build
	// WithAccuracy returns a copy evaluated against a different provider or band
	WithAccuracy(env accuracy.Env) Build
	Env() accuracy.Env

	Presets(env accuracy.Env) []Preset
	Describe(key string) string
	ConfigurableFields() Configurables
}

// Config is an archetype's typed configuration
type Config interface {
	Archetype() Archetype
	Validate() error
}

// Preset is a named, ready to use build and variant
type Preset struct {
	Name    string
	Build   Build
	Variant Variant
}

// Configurables declares which configuration keys matter to an archetype
type Configurables struct {
	Common  []string `json:"common"`
	Toggles []string `json:"toggles"`
	Dials   []string `json:"dials"`
}

// Common is the advantage mix and modifier progression every archetype shares
type Common struct {
	Advantage    float64        `yaml:"advantage" json:"advantage"`
	Disadvantage float64        `yaml:"disadvantage" json:"disadvantage"`
	Modifiers    ModifierTables `yaml:"modifiers" json:"modifiers"`
}

func (c Common) mix() attack.Mix {
	return attack.Mix{Advantage: c.Advantage, Disadvantage: c.Disadvantage}
}

// normalized clamps the mix and fills empty modifier tables from def
func (c Common) normalized(def ModifierTables) Common {
	m := c.mix().Clamp()
	return Common{
		Advantage:    m.Advantage,
		Disadvantage: m.Disadvantage,
		Modifiers:    c.Modifiers.orDefaults(def),
	}
}

var commonKeys = []string{"advantage", "disadvantage"}

// base carries what every archetype shares: its accuracy env and variant set
type base struct {
	env      accuracy.Env
	variants []Variant
}

func newBase(env accuracy.Env, variants ...Variant) (base, error) {
	if err := env.Validate(); err != nil {
		return base{}, err
	}
	return base{env: env, variants: variants}, nil
}

func (b base) ValidTypes() []Variant {
	return slices.Clone(b.variants)
}

func (b base) Env() accuracy.Env {
	return b.env
}

func (b base) resolver(mix attack.Mix) *attack.Resolver {
	return attack.NewResolver(b.env, mix)
}

// check validates the level first and then the variant
func (b base) check(variant Variant, level int) error {
	if err := difficulty.ValidateLevel(level); err != nil {
		return err
	}
	if !slices.Contains(b.variants, variant) {
		return dnderr.UnsupportedVariantf("variant %q is not one of %v", variant, b.variants).
			WithMeta("variant", string(variant))
	}
	return nil
}

func wrongConfig(want Archetype, got Config) error {
	if got == nil {
		return dnderr.Validationf("%s build needs a %s config, got nil", want, want)
	}
	return dnderr.Validationf("%s build needs a %s config, got %s", want, want, got.Archetype())
}

func requireRounds(name string, v int) error {
	if v < 1 {
		return dnderr.Validationf("%s must be at least 1, got %d", name, v)
	}
	return nil
}

func requireNonNegative(name string, v int) error {
	if v < 0 {
		return dnderr.Validationf("%s must not be negative, got %d", name, v)
	}
	return nil
}

func requireDie(name string, d fmt.Stringer, valid bool) error {
	if !valid {
		return dnderr.InvalidDamageShapef("%s %s must be a positive die size", name, d)
	}
	return nil
}
