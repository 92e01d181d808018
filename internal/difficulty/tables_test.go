package difficulty_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBand(t *testing.T) {
	tests := []struct {
		in      string
		want    difficulty.Band
		wantErr bool
	}{
		{in: "equal", want: difficulty.BandEqual},
		{in: "on-level", want: difficulty.BandEqual},
		{in: "Half-Level", want: difficulty.BandHalf},
		{in: "boss", want: difficulty.BandBoss},
		{in: "ignored", want: difficulty.BandIgnore},
		{in: "deadly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := difficulty.ParseBand(tt.in)
			if tt.wantErr {
				assert.True(t, dnderr.IsInvalidParameter(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArmorClass(t *testing.T) {
	ac, err := difficulty.ArmorClass(1, difficulty.BandEqual)
	require.NoError(t, err)
	assert.Equal(t, 13, ac)

	ac, err = difficulty.ArmorClass(20, difficulty.BandBoss)
	require.NoError(t, err)
	assert.Equal(t, 19, ac)

	ac, err = difficulty.ArmorClass(20, difficulty.BandHalf)
	require.NoError(t, err)
	assert.Equal(t, 17, ac)

	ac, err = difficulty.ArmorClass(7, difficulty.BandIgnore)
	require.NoError(t, err)
	assert.Equal(t, difficulty.IgnoredDefense, ac)
}

func TestLookup_Errors(t *testing.T) {
	_, err := difficulty.ArmorClass(0, difficulty.BandEqual)
	assert.True(t, dnderr.IsUnsupportedLevel(err))

	_, err = difficulty.ArmorClass(21, difficulty.BandEqual)
	assert.True(t, dnderr.IsUnsupportedLevel(err))

	_, err = difficulty.HitPoints(5, difficulty.Band("deadly"))
	assert.True(t, dnderr.IsInvalidParameter(err))

	_, err = difficulty.SaveBonus(5, difficulty.BandEqual, difficulty.Save("CON"))
	assert.True(t, dnderr.IsInvalidParameter(err))
}

func TestTables_AreMonotoneForBosses(t *testing.T) {
	prev := 0
	for level := 1; level <= difficulty.Levels; level++ {
		ac, err := difficulty.ArmorClass(level, difficulty.BandBoss)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ac, prev, "level %d", level)
		prev = ac

		hp, err := difficulty.HitPoints(level, difficulty.BandBoss)
		require.NoError(t, err)
		equal, err := difficulty.HitPoints(level, difficulty.BandEqual)
		require.NoError(t, err)
		assert.Greater(t, hp, equal, "boss hp at level %d", level)
	}
}

func TestSaveBonus(t *testing.T) {
	bonus, err := difficulty.SaveBonus(20, difficulty.BandBoss, difficulty.SaveWIS)
	require.NoError(t, err)
	assert.Equal(t, 12, bonus)

	bonus, err = difficulty.SaveBonus(1, difficulty.BandEqual, difficulty.SaveDEX)
	require.NoError(t, err)
	assert.Equal(t, 2, bonus)
}
