package dice_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDie_Average(t *testing.T) {
	tests := []struct {
		die  dice.Die
		want float64
	}{
		{dice.D4, 2.5},
		{dice.D6, 3.5},
		{dice.D8, 4.5},
		{dice.D10, 5.5},
		{dice.D12, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.die.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.die.Average())
		})
	}

	assert.Equal(t, 7.0, dice.Average(dice.D6, 2), "greatsword averages 7")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		want     dice.Damage
		wantErr  bool
	}{
		{name: "single die", notation: "1d8", want: dice.Damage{Count: 1, Die: dice.D8}},
		{name: "implicit count", notation: "d12", want: dice.Damage{Count: 1, Die: dice.D12}},
		{name: "bonus", notation: "2d6+3", want: dice.Damage{Count: 2, Die: dice.D6, Bonus: 3}},
		{name: "penalty", notation: "1d4-1", want: dice.Damage{Count: 1, Die: dice.D4, Bonus: -1}},
		{name: "spaces", notation: " 2d6 + 1 ", want: dice.Damage{Count: 2, Die: dice.D6, Bonus: 1}},
		{name: "no d", notation: "12", wantErr: true},
		{name: "zero dice", notation: "0d6", wantErr: true},
		{name: "garbage", notation: "xdy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dice.Parse(tt.notation)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDamage_Average(t *testing.T) {
	dmg, err := dice.Parse("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 10.0, dmg.Average())
	assert.Equal(t, "2d6+3", dmg.String())
}

func TestGreatWeaponBonus(t *testing.T) {
	assert.InDelta(t, 0.5, dice.GreatWeaponBonus(dice.D4, 1), 1e-9)
	assert.InDelta(t, 2.0/3.0, dice.GreatWeaponBonus(dice.D6, 1), 1e-9)
	assert.InDelta(t, 0.75, dice.GreatWeaponBonus(dice.D8, 1), 1e-9)
	assert.InDelta(t, 0.8, dice.GreatWeaponBonus(dice.D10, 1), 1e-9)
	assert.InDelta(t, 5.0/6.0, dice.GreatWeaponBonus(dice.D12, 1), 1e-9)
	assert.InDelta(t, 4.0/3.0, dice.GreatWeaponBonus(dice.D6, 2), 1e-9)
}

func TestCantripDice(t *testing.T) {
	want := map[int]int{1: 1, 4: 1, 5: 2, 10: 2, 11: 3, 16: 3, 17: 4, 20: 4}
	for level, count := range want {
		assert.Equal(t, count, dice.CantripDice(level), "level %d", level)
	}
}

func TestDie_UnmarshalYAML(t *testing.T) {
	var out struct {
		A dice.Die `yaml:"a"`
		B dice.Die `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: d10\nb: 6\n"), &out))
	assert.Equal(t, dice.D10, out.A)
	assert.Equal(t, dice.D6, out.B)

	assert.Error(t, yaml.Unmarshal([]byte("a: dx\n"), &out))
}
