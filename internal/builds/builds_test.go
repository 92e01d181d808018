package builds_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// everyBuild is each archetype's defaults plus every preset
func everyBuild(t *testing.T, env accuracy.Env) []builds.Build {
	t.Helper()

	var out []builds.Build
	for _, a := range builds.Archetypes() {
		b, err := builds.Default(a, env)
		require.NoError(t, err, a)
		out = append(out, b)
	}
	presets, err := builds.AllPresets(env)
	require.NoError(t, err)
	for _, p := range presets {
		out = append(out, p.Build)
	}
	return out
}

func TestBuilds_CloneAndReconfigureMatch(t *testing.T) {
	env := accuracy.DefaultEnv()

	for _, b := range everyBuild(t, env) {
		clone := b.Clone()
		rebuilt, err := b.Configure(b.Config())
		require.NoError(t, err, b.Name())
		moved := b.WithAccuracy(env)

		for _, v := range b.ValidTypes() {
			for level := 1; level <= difficulty.Levels; level++ {
				want, err := b.Calculate(v, level)
				require.NoError(t, err, "%s %s level %d", b.Name(), v, level)

				for _, other := range []builds.Build{clone, rebuilt, moved} {
					got, err := other.Calculate(v, level)
					require.NoError(t, err)
					assert.Equal(t, want, got, "%s %s level %d", b.Name(), v, level)
				}
			}
		}
	}
}

func TestBuilds_OutputsAreSane(t *testing.T) {
	for _, band := range difficulty.Bands() {
		env := accuracy.Env{Provider: accuracy.NewD20(), Band: band}
		for _, b := range everyBuild(t, env) {
			for _, v := range b.ValidTypes() {
				for level := 1; level <= difficulty.Levels; level++ {
					out, err := b.Calculate(v, level)
					require.NoError(t, err)
					if out.Damage != nil {
						assert.False(t, math.IsNaN(*out.Damage), "%s %s %d", b.Name(), v, level)
						assert.GreaterOrEqual(t, *out.Damage, 0.0, "%s %s %d", b.Name(), v, level)
					}
					if out.Accuracy != nil {
						assert.GreaterOrEqual(t, *out.Accuracy, 0.0)
						assert.LessOrEqual(t, *out.Accuracy, 1.0+1e-9)
					}
				}
			}
		}
	}
}

func TestBuilds_LevelCheckedBeforeVariant(t *testing.T) {
	env := accuracy.DefaultEnv()

	for _, a := range builds.Archetypes() {
		b, err := builds.Default(a, env)
		require.NoError(t, err)

		for _, level := range []int{0, 21} {
			_, err = b.Calculate("nope", level)
			assert.True(t, dnderr.IsUnsupportedLevel(err), "%s level %d", a, level)
		}

		_, err = b.Calculate("nope", 5)
		assert.True(t, dnderr.IsUnsupportedVariant(err), a)
		assert.Equal(t, "nope", dnderr.GetMeta(err)["variant"])
	}
}

func TestBuilds_ConfigureRejectsOtherArchetypes(t *testing.T) {
	env := accuracy.DefaultEnv()
	rogue, err := builds.NewBaseline(env)
	require.NoError(t, err)

	_, err = rogue.Configure(builds.DefaultFighterConfig())
	assert.True(t, dnderr.IsValidation(err))

	_, err = rogue.Configure(nil)
	assert.True(t, dnderr.IsValidation(err))
}

func TestBuilds_ConfigureDoesNotTouchOriginal(t *testing.T) {
	env := accuracy.DefaultEnv()
	rogue, err := builds.NewBaseline(env)
	require.NoError(t, err)
	before, err := rogue.Calculate(builds.BaselineVariant, 5)
	require.NoError(t, err)

	cfg := builds.DefaultRogueConfig()
	cfg.SneakAttack = false
	plain, err := rogue.Configure(cfg)
	require.NoError(t, err)

	after, err := rogue.Calculate(builds.BaselineVariant, 5)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	without, err := plain.Calculate(builds.BaselineVariant, 5)
	require.NoError(t, err)
	assert.Less(t, without.DamageOr(0), before.DamageOr(0))
}

func TestBuilds_WithAccuracyChangesBand(t *testing.T) {
	rogue, err := builds.NewBaseline(accuracy.Env{Provider: accuracy.NewD20(), Band: difficulty.BandIgnore})
	require.NoError(t, err)
	boss := rogue.WithAccuracy(accuracy.Env{Provider: accuracy.NewD20(), Band: difficulty.BandBoss})

	for level := 1; level <= difficulty.Levels; level++ {
		easy, err := rogue.Calculate(builds.BaselineVariant, level)
		require.NoError(t, err)
		hard, err := boss.Calculate(builds.BaselineVariant, level)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, easy.DamageOr(0), hard.DamageOr(0), "level %d", level)
	}
	assert.Equal(t, difficulty.BandBoss, boss.Env().Band)
	assert.Equal(t, difficulty.BandIgnore, rogue.Env().Band)
}

func TestConstructors_Validate(t *testing.T) {
	env := accuracy.DefaultEnv()

	fighter := builds.DefaultFighterConfig()
	fighter.RoundsPerRest = 0
	_, err := builds.NewFighter(fighter, env)
	assert.True(t, dnderr.IsValidation(err))

	rogue := builds.DefaultRogueConfig()
	rogue.WeaponDie = 0
	_, err = builds.NewRogue(rogue, env)
	assert.True(t, dnderr.IsInvalidDamageShape(err))

	bard := builds.DefaultBardConfig()
	bard.SaveAbility = "CON"
	_, err = builds.NewBard(bard, env)
	assert.True(t, dnderr.IsValidation(err))

	_, err = builds.NewRogue(nil, accuracy.Env{Band: difficulty.BandEqual})
	assert.True(t, dnderr.IsInvalidParameter(err))

	values := make([]*float64, difficulty.Levels+1)
	_, err = builds.NewCustom(&builds.CustomConfig{Values: values}, env)
	assert.True(t, dnderr.IsValidation(err))
}

func TestNew_UsesConfigArchetype(t *testing.T) {
	env := accuracy.DefaultEnv()

	b, err := builds.New(builds.DefaultPaladinConfig(), env)
	require.NoError(t, err)
	assert.Equal(t, builds.ArchetypePaladin, b.Archetype())

	_, err = builds.New(nil, env)
	assert.True(t, dnderr.IsValidation(err))
}

func TestParseArchetype(t *testing.T) {
	a, err := builds.ParseArchetype(" Warlock ")
	require.NoError(t, err)
	assert.Equal(t, builds.ArchetypeWarlock, a)

	_, err = builds.ParseArchetype("artificer")
	assert.True(t, dnderr.IsInvalidParameter(err))
}

func TestDecodeConfig_KeepsDefaults(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("advantage: 1\nsneak_attack: false\n"), &node))

	cfg, err := builds.DecodeConfig(builds.ArchetypeRogue, &node)
	require.NoError(t, err)

	rogue, ok := cfg.(*builds.RogueConfig)
	require.True(t, ok)
	assert.Equal(t, 1.0, rogue.Advantage)
	assert.False(t, rogue.SneakAttack)
	assert.Equal(t, dice.D6, rogue.WeaponDie)
	assert.Equal(t, builds.DefaultModifiers(), rogue.Modifiers)
}

func TestDecodeConfig_Errors(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("rounds: 0\n"), &node))
	_, err := builds.DecodeConfig(builds.ArchetypeWizard, &node)
	assert.True(t, dnderr.IsValidation(err))

	var bad yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("weapon_die: banana\n"), &bad))
	_, err = builds.DecodeConfig(builds.ArchetypeRogue, &bad)
	assert.True(t, dnderr.IsValidation(err))

	var typo yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("sneak_atack: false\n"), &typo))
	_, err = builds.DecodeConfig(builds.ArchetypeRogue, &typo)
	assert.True(t, dnderr.IsValidation(err))
	assert.Contains(t, err.Error(), "sneak_atack")

	_, err = builds.DecodeConfig("artificer", nil)
	assert.True(t, dnderr.IsInvalidParameter(err))
}

func TestPresets(t *testing.T) {
	env := accuracy.DefaultEnv()

	for _, a := range builds.Archetypes() {
		b, err := builds.Default(a, env)
		require.NoError(t, err)
		if a == builds.ArchetypeCustom {
			assert.Empty(t, b.Presets(env))
			continue
		}
		presets := b.Presets(env)
		assert.NotEmpty(t, presets, a)
		for _, p := range presets {
			assert.Contains(t, p.Build.ValidTypes(), p.Variant, p.Name)
			assert.Equal(t, a, p.Build.Archetype())
		}
	}
}

func TestFindPreset(t *testing.T) {
	env := accuracy.DefaultEnv()

	p, err := builds.FindPreset(env, "baseline rogue")
	require.NoError(t, err)
	assert.Equal(t, builds.BaselineVariant, p.Variant)

	_, err = builds.FindPreset(env, "Hexblade Coffeelock")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestDefaults_CoverEveryVariant(t *testing.T) {
	env := accuracy.DefaultEnv()
	defaults, err := builds.Defaults(env)
	require.NoError(t, err)

	want := 0
	for _, a := range builds.Archetypes() {
		if a == builds.ArchetypeCustom {
			continue
		}
		b, err := builds.Default(a, env)
		require.NoError(t, err)
		want += len(b.ValidTypes())
	}
	assert.Len(t, defaults, want)
}

func TestDescribe_LabelsEveryKey(t *testing.T) {
	env := accuracy.DefaultEnv()

	for _, a := range builds.Archetypes() {
		b, err := builds.Default(a, env)
		require.NoError(t, err)

		for _, v := range b.ValidTypes() {
			assert.NotEmpty(t, b.Describe(string(v)), "%s %s", a, v)
		}
		fields := b.ConfigurableFields()
		for _, group := range [][]string{fields.Common, fields.Toggles, fields.Dials} {
			for _, key := range group {
				assert.NotEmpty(t, b.Describe(key), "%s %s", a, key)
			}
		}
		assert.Empty(t, b.Describe("no_such_key"))
	}
}

func TestValidTypes_ReturnsCopy(t *testing.T) {
	b, err := builds.NewBaseline(accuracy.DefaultEnv())
	require.NoError(t, err)

	types := b.ValidTypes()
	types[0] = "mutated"
	assert.Equal(t, builds.RogueShortbow, b.ValidTypes()[0])
}

func TestCustom_MissingValuesAreNull(t *testing.T) {
	v := 12.5
	c, err := builds.NewCustom(&builds.CustomConfig{Values: []*float64{nil, &v}}, accuracy.DefaultEnv())
	require.NoError(t, err)

	out, err := c.Calculate(builds.CustomData, 1)
	require.NoError(t, err)
	assert.Nil(t, out.Damage)

	out, err = c.Calculate(builds.CustomData, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.5, out.DamageOr(-1))
	assert.Nil(t, out.Accuracy)

	out, err = c.Calculate(builds.CustomData, 20)
	require.NoError(t, err)
	assert.Nil(t, out.Damage)

	v = 99
	out, err = c.Calculate(builds.CustomData, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.5, out.DamageOr(-1))
}

func TestMonk_MercyWithoutKiMatchesNoSubclass(t *testing.T) {
	env := accuracy.DefaultEnv()
	cfg := builds.DefaultMonkConfig()
	cfg.UnarmedOnly = true
	monk, err := builds.NewMonk(cfg, env)
	require.NoError(t, err)

	for level := 1; level <= difficulty.Levels; level++ {
		plain, err := monk.Calculate(builds.MonkNoSubclass, level)
		require.NoError(t, err)
		mercy, err := monk.Calculate(builds.MonkMercy, level)
		require.NoError(t, err)
		assert.InDelta(t, plain.DamageOr(0), mercy.DamageOr(0), 1e-9, "level %d", level)
	}
}

func TestFighter_ActionSurgeAddsDamage(t *testing.T) {
	env := accuracy.DefaultEnv()
	cfg := builds.DefaultFighterConfig()
	cfg.ActionSurge = true
	cfg.RoundsPerRest = 4
	with, err := builds.NewFighter(cfg, env)
	require.NoError(t, err)

	without, err := builds.NewFighter(nil, env)
	require.NoError(t, err)

	for level := 2; level <= difficulty.Levels; level++ {
		a, err := with.Calculate(builds.FighterGreatsword, level)
		require.NoError(t, err)
		b, err := without.Calculate(builds.FighterGreatsword, level)
		require.NoError(t, err)
		assert.Greater(t, a.DamageOr(0), b.DamageOr(0), "level %d", level)
	}
}
