package dnd5e

import (
	"testing"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

func TestApiWeaponToWeapon(t *testing.T) {
	input := &apiEntities.Weapon{
		Key:            "longsword",
		Name:           "Longsword",
		WeaponCategory: "Martial",
		WeaponRange:    "Melee",
		Damage: &apiEntities.Damage{
			DamageDice: "1d8",
			DamageType: &apiEntities.ReferenceItem{Key: "slashing"},
		},
		TwoHandedDamage: &apiEntities.Damage{DamageDice: "1d10"},
		Properties: []*apiEntities.ReferenceItem{
			{Key: "versatile"},
			nil,
		},
	}

	weapon, err := apiWeaponToWeapon(input)
	require.NoError(t, err)
	assert.Equal(t, "martial", weapon.Category)
	assert.Equal(t, "melee", weapon.Range)
	assert.Equal(t, dice.Damage{Count: 1, Die: dice.D8}, weapon.Damage)
	assert.Equal(t, "slashing", weapon.DamageType)
	require.NotNil(t, weapon.TwoHanded)
	assert.Equal(t, dice.D10, weapon.TwoHanded.Die)
	assert.Equal(t, []string{"versatile"}, weapon.Properties)
}

func TestApiWeaponToWeapon_Errors(t *testing.T) {
	_, err := apiWeaponToWeapon(nil)
	assert.True(t, dnderr.IsInvalidParameter(err))

	_, err = apiWeaponToWeapon(&apiEntities.Weapon{Key: "net"})
	assert.True(t, dnderr.IsInvalidDamageShape(err))

	_, err = apiWeaponToWeapon(&apiEntities.Weapon{Key: "odd", Damage: &apiEntities.Damage{DamageDice: "lots"}})
	assert.True(t, dnderr.IsInvalidDamageShape(err))
}
