package builds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

func TestApplyWeapon(t *testing.T) {
	rapier := dice.Damage{Count: 1, Die: dice.D8}
	maul := dice.Damage{Count: 2, Die: dice.D6}

	t.Run("rogue takes a single die", func(t *testing.T) {
		cfg := builds.DefaultRogueConfig()
		require.NoError(t, builds.ApplyWeapon(cfg, rapier))
		assert.Equal(t, dice.D8, cfg.WeaponDie)

		err := builds.ApplyWeapon(cfg, maul)
		assert.True(t, dnderr.IsInvalidDamageShape(err))
		assert.Equal(t, dice.D8, cfg.WeaponDie)
	})

	t.Run("fighter gets a great weapon", func(t *testing.T) {
		cfg := builds.DefaultFighterConfig()
		require.NoError(t, builds.ApplyWeapon(cfg, dice.Damage{Count: 1, Die: dice.D12}))
		assert.Equal(t, dice.D12, cfg.GreatWeaponDie)
		assert.Equal(t, 1, cfg.GreatWeaponCount)
	})

	t.Run("barbarian keeps the count", func(t *testing.T) {
		cfg := builds.DefaultBarbarianConfig()
		require.NoError(t, builds.ApplyWeapon(cfg, maul))
		assert.Equal(t, dice.D6, cfg.WeaponDie)
		assert.Equal(t, 2, cfg.WeaponCount)
	})

	t.Run("warlock has no weapon", func(t *testing.T) {
		err := builds.ApplyWeapon(builds.DefaultWarlockConfig(), rapier)
		assert.True(t, dnderr.IsValidation(err))
	})

	t.Run("bad dice", func(t *testing.T) {
		err := builds.ApplyWeapon(builds.DefaultRogueConfig(), dice.Damage{})
		assert.True(t, dnderr.IsInvalidDamageShape(err))

		err = builds.ApplyWeapon(nil, rapier)
		assert.True(t, dnderr.IsInvalidParameter(err))
	})

	t.Run("applied config still builds", func(t *testing.T) {
		cfg := builds.DefaultPaladinConfig()
		require.NoError(t, builds.ApplyWeapon(cfg, maul))
		b, err := builds.New(cfg, accuracy.DefaultEnv())
		require.NoError(t, err)
		_, err = b.Calculate(b.ValidTypes()[0], 5)
		require.NoError(t, err)
	})
}
