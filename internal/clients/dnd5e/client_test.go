package dnd5e_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e"
	mockdnd5e "github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e/mock"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

func TestCatalog_GetWeapon(t *testing.T) {
	catalog := dnd5e.NewCatalog()

	greatsword, err := catalog.GetWeapon("greatsword")
	require.NoError(t, err)
	assert.Equal(t, dice.Damage{Count: 2, Die: dice.D6}, greatsword.Damage)
	assert.True(t, greatsword.HasProperty("heavy"))
	assert.Nil(t, greatsword.TwoHanded)

	longsword, err := catalog.GetWeapon("longsword")
	require.NoError(t, err)
	require.NotNil(t, longsword.TwoHanded)
	assert.Equal(t, dice.D10, longsword.TwoHanded.Die)
	assert.Equal(t, "slashing", longsword.DamageType)

	_, err = catalog.GetWeapon("lightsaber")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = catalog.GetWeapon("")
	assert.True(t, dnderr.IsInvalidParameter(err))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog := dnd5e.NewCatalog()

	rapier, err := catalog.GetWeapon("rapier")
	require.NoError(t, err)
	rapier.Properties[0] = "heavy"
	rapier.Damage.Count = 9

	again, err := catalog.GetWeapon("rapier")
	require.NoError(t, err)
	assert.True(t, again.HasProperty("finesse"))
	assert.Equal(t, 1, again.Damage.Count)
}

func TestCatalog_ListWeaponsSorted(t *testing.T) {
	weapons, err := dnd5e.NewCatalog().ListWeapons()
	require.NoError(t, err)
	require.NotEmpty(t, weapons)
	for i := 1; i < len(weapons); i++ {
		assert.Less(t, weapons[i-1].Key, weapons[i].Key)
	}
}

func TestWithFallback_GetWeapon(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mockdnd5e.NewMockClient(ctrl)
	client := dnd5e.WithFallback(primary, dnd5e.NewCatalog())

	remote := &dnd5e.Weapon{Key: "maul", Damage: dice.Damage{Count: 2, Die: dice.D6}}
	primary.EXPECT().GetWeapon("maul").Return(remote, nil)
	got, err := client.GetWeapon("maul")
	require.NoError(t, err)
	assert.Same(t, remote, got)

	primary.EXPECT().GetWeapon("greataxe").Return(nil, errors.New("connection refused"))
	got, err = client.GetWeapon("greataxe")
	require.NoError(t, err)
	assert.Equal(t, dice.D12, got.Damage.Die)

	primary.EXPECT().GetWeapon("chain-mail").Return(nil, dnderr.NotFoundf("chain-mail is not a weapon"))
	_, err = client.GetWeapon("chain-mail")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestWithFallback_ListWeapons(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mockdnd5e.NewMockClient(ctrl)
	client := dnd5e.WithFallback(primary, dnd5e.NewCatalog())

	primary.EXPECT().ListWeapons().Return([]*dnd5e.Weapon{{Key: "whip"}}, nil)
	weapons, err := client.ListWeapons()
	require.NoError(t, err)
	assert.Len(t, weapons, 1)

	primary.EXPECT().ListWeapons().Return(nil, errors.New("timeout"))
	weapons, err = client.ListWeapons()
	require.NoError(t, err)
	assert.Greater(t, len(weapons), 10)

	primary.EXPECT().ListWeapons().Return(nil, nil)
	weapons, err = client.ListWeapons()
	require.NoError(t, err)
	assert.NotEmpty(t, weapons)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := dnd5e.New(nil)
	assert.True(t, dnderr.IsInvalidParameter(err))
}
