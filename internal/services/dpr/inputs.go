package dpr

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// InputFile is the YAML document the CLI reads
type InputFile struct {
	Band   string      `yaml:"band"`
	Inputs []InputSpec `yaml:"inputs"`
}

// InputSpec describes one series. Either Preset or Build names the build;
// an entry with neither must carry an override.
type InputSpec struct {
	Preset   string     `yaml:"preset"`
	Build    string     `yaml:"build"`
	Variant  string     `yaml:"variant"`
	Label    string     `yaml:"label"`
	Color    string     `yaml:"color"`
	Weapon   string     `yaml:"weapon"`
	Config   yaml.Node  `yaml:"config"`
	Override []*float64 `yaml:"override"`
}

// DecodeInputs reads an input file
func DecodeInputs(r io.Reader) (*InputFile, error) {
	var f InputFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, dnderr.Validation("input file is empty")
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to decode input file")
	}
	if len(f.Inputs) == 0 {
		return nil, dnderr.Validation("input file has no inputs")
	}
	return &f, nil
}

// ParsedBand is the file's band, empty when the file leaves it out
func (f *InputFile) ParsedBand() (difficulty.Band, error) {
	if f.Band == "" {
		return "", nil
	}
	return difficulty.ParseBand(f.Band)
}

// Calculables builds every input. Weapons are only looked up when an input
// names one, so weapons may be nil for files that never do.
func (f *InputFile) Calculables(env accuracy.Env, weapons dnd5e.Client) ([]calculator.Calculable, error) {
	out := make([]calculator.Calculable, 0, len(f.Inputs))
	for i, item := range f.Inputs {
		c, err := item.calculable(env, weapons)
		if err != nil {
			return nil, dnderr.Wrapf(err, "input %d is invalid", i+1).WithMeta("input", i+1)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *InputSpec) calculable(env accuracy.Env, weapons dnd5e.Client) (calculator.Calculable, error) {
	c := calculator.Calculable{
		Label:    s.Label,
		Color:    s.Color,
		Override: s.Override,
	}

	var build builds.Build
	var variant builds.Variant
	switch {
	case s.Preset != "" && s.Build != "":
		return c, dnderr.Validation("preset and build are mutually exclusive")
	case s.Preset != "":
		p, err := builds.FindPreset(env, s.Preset)
		if err != nil {
			return c, err
		}
		build, variant = p.Build, p.Variant
		if c.Label == "" {
			c.Label = p.Name
		}
		if s.Weapon != "" || !s.Config.IsZero() {
			cfg := build.Config()
			if err := s.customize(cfg, weapons); err != nil {
				return c, err
			}
			if build, err = build.Configure(cfg); err != nil {
				return c, err
			}
		}
	case s.Build != "":
		archetype, err := builds.ParseArchetype(s.Build)
		if err != nil {
			return c, err
		}
		var node *yaml.Node
		if !s.Config.IsZero() {
			node = &s.Config
		}
		cfg, err := builds.DecodeConfig(archetype, node)
		if err != nil {
			return c, err
		}
		if err := s.applyWeapon(cfg, weapons); err != nil {
			return c, err
		}
		if build, err = builds.New(cfg, env); err != nil {
			return c, err
		}
	default:
		if len(s.Override) == 0 {
			return c, dnderr.Validation("input needs a preset, a build or an override")
		}
		if c.Label == "" {
			c.Label = "Custom"
		}
		return c, nil
	}

	if s.Variant != "" {
		variant = builds.Variant(s.Variant)
	}
	if variant == "" {
		variant = build.ValidTypes()[0]
	}
	if c.Label == "" {
		c.Label = build.Name() + " (" + build.Describe(string(variant)) + ")"
	}
	c.Build, c.Variant = build, variant
	return c, nil
}

// customize overlays the config node and weapon onto a preset's config
func (s *InputSpec) customize(cfg builds.Config, weapons dnd5e.Client) error {
	if !s.Config.IsZero() {
		if err := builds.DecodeInto(&s.Config, cfg); err != nil {
			return dnderr.Wrap(err, "failed to decode preset config")
		}
	}
	return s.applyWeapon(cfg, weapons)
}

func (s *InputSpec) applyWeapon(cfg builds.Config, weapons dnd5e.Client) error {
	if s.Weapon == "" {
		return nil
	}
	if weapons == nil {
		return dnderr.InvalidParameterf("weapon %s needs a weapon client", s.Weapon)
	}
	w, err := weapons.GetWeapon(s.Weapon)
	if err != nil {
		return err
	}
	if err := builds.ApplyWeapon(cfg, w.Damage); err != nil {
		return dnderr.Wrapf(err, "weapon %s does not fit %s", w.Key, cfg.Archetype())
	}
	return cfg.Validate()
}
