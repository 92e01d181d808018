package builds

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

type factory struct {
	defaults func() Config
	build    func(cfg Config, env accuracy.Env) (Build, error)
}

func register[C Config, B Build](defaults func() C, ctor func(C, accuracy.Env) (B, error)) factory {
	return factory{
		defaults: func() Config { return defaults() },
		build: func(cfg Config, env accuracy.Env) (Build, error) {
			c, ok := cfg.(C)
			if !ok {
				return nil, wrongConfig(defaults().Archetype(), cfg)
			}
			b, err := ctor(c, env)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}

var archetypeOrder = []Archetype{
	ArchetypeRogue,
	ArchetypeFighter,
	ArchetypeBarbarian,
	ArchetypePaladin,
	ArchetypeRanger,
	ArchetypeWarlock,
	ArchetypeSorcerer,
	ArchetypeWizard,
	ArchetypeCleric,
	ArchetypeDruid,
	ArchetypeBard,
	ArchetypeMonk,
	ArchetypeCustom,
}

var factories = map[Archetype]factory{
	ArchetypeRogue:     register(DefaultRogueConfig, NewRogue),
	ArchetypeFighter:   register(DefaultFighterConfig, NewFighter),
	ArchetypeBarbarian: register(DefaultBarbarianConfig, NewBarbarian),
	ArchetypePaladin:   register(DefaultPaladinConfig, NewPaladin),
	ArchetypeRanger:    register(DefaultRangerConfig, NewRanger),
	ArchetypeWarlock:   register(DefaultWarlockConfig, NewWarlock),
	ArchetypeSorcerer:  register(DefaultSorcererConfig, NewSorcerer),
	ArchetypeWizard:    register(DefaultWizardConfig, NewWizard),
	ArchetypeCleric:    register(DefaultClericConfig, NewCleric),
	ArchetypeDruid:     register(DefaultDruidConfig, NewDruid),
	ArchetypeBard:      register(DefaultBardConfig, NewBard),
	ArchetypeMonk:      register(DefaultMonkConfig, NewMonk),
	ArchetypeCustom:    register(DefaultCustomConfig, NewCustom),
}

// Archetypes lists every registered archetype in display order
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypeOrder))
	copy(out, archetypeOrder)
	return out
}

// ParseArchetype accepts an archetype name in any case
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := factories[a]; !ok {
		return "", dnderr.InvalidParameterf("unknown archetype %q", s)
	}
	return a, nil
}

// DefaultConfig returns a fresh default configuration for an archetype
func DefaultConfig(archetype Archetype) (Config, error) {
	f, ok := factories[archetype]
	if !ok {
		return nil, dnderr.InvalidParameterf("unknown archetype %q", archetype)
	}
	return f.defaults(), nil
}

// New builds the archetype the config belongs to
func New(cfg Config, env accuracy.Env) (Build, error) {
	if cfg == nil {
		return nil, dnderr.Validation("config is required")
	}
	f, ok := factories[cfg.Archetype()]
	if !ok {
		return nil, dnderr.InvalidParameterf("unknown archetype %q", cfg.Archetype())
	}
	return f.build(cfg, env)
}

// Default builds an archetype with its default configuration
func Default(archetype Archetype, env accuracy.Env) (Build, error) {
	cfg, err := DefaultConfig(archetype)
	if err != nil {
		return nil, err
	}
	return New(cfg, env)
}

// DecodeConfig decodes a YAML mapping over an archetype's defaults, so keys
// the document leaves out keep their default values.
func DecodeConfig(archetype Archetype, node *yaml.Node) (Config, error) {
	cfg, err := DefaultConfig(archetype)
	if err != nil {
		return nil, err
	}
	if node == nil || node.IsZero() {
		return cfg, nil
	}
	if err := DecodeInto(node, cfg); err != nil {
		return nil, dnderr.Wrapf(err, "failed to decode %s config", archetype)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeInto decodes node over cfg. Keys cfg does not define are rejected.
func DecodeInto(node *yaml.Node, cfg Config) error {
	// Node.Decode skips the known fields check, so go through a Decoder
	data, err := yaml.Marshal(node)
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to re-encode config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid config")
	}
	return nil
}

// AllPresets collects every archetype's presets against one accuracy env
func AllPresets(env accuracy.Env) ([]Preset, error) {
	var out []Preset
	for _, a := range archetypeOrder {
		b, err := Default(a, env)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to build default %s", a)
		}
		out = append(out, b.Presets(env)...)
	}
	return out, nil
}

// FindPreset looks a preset up by name, ignoring case
func FindPreset(env accuracy.Env, name string) (Preset, error) {
	all, err := AllPresets(env)
	if err != nil {
		return Preset{}, err
	}
	for _, p := range all {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, dnderr.NotFoundf("preset %q not found", name)
}

// Defaults pairs every archetype's default build with each of its variants
func Defaults(env accuracy.Env) ([]Preset, error) {
	var out []Preset
	for _, a := range archetypeOrder {
		if a == ArchetypeCustom {
			continue
		}
		b, err := Default(a, env)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to build default %s", a)
		}
		for _, v := range b.ValidTypes() {
			out = append(out, Preset{
				Name:    b.Name() + " (" + b.Describe(string(v)) + ")",
				Build:   b,
				Variant: v,
			})
		}
	}
	return out, nil
}

type presetSpec struct {
	name    string
	variant Variant
	cfg     Config
}

// presets builds each definition and drops the ones whose config does not validate
func presets(env accuracy.Env, specs ...presetSpec) []Preset {
	out := make([]Preset, 0, len(specs))
	for _, s := range specs {
		b, err := New(s.cfg, env)
		if err != nil {
			log.Printf("Skipping preset %q: %v", s.name, err)
			continue
		}
		out = append(out, Preset{Name: s.name, Build: b, Variant: s.variant})
	}
	return out
}
