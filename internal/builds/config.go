package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
)

// LevelTable holds one value per character level, index 0 is level 1
type LevelTable [difficulty.Levels]int

// At returns the value for a level in 1-20. Callers validate the level first.
func (t LevelTable) At(level int) int {
	return t[level-1]
}

// IsZero reports whether the table was never filled in
func (t LevelTable) IsZero() bool {
	return t == LevelTable{}
}

// ModifierTables are the ability modifier progressions a build draws from
type ModifierTables struct {
	// Normal raises the main stat at 4 and 8
	Normal LevelTable `yaml:"normal" json:"normal"`
	// FeatAt4 spends the level 4 improvement on a feat
	FeatAt4 LevelTable `yaml:"feat_at_4" json:"feat_at_4"`
	// FeatAt8 spends the level 8 improvement on a feat
	FeatAt8 LevelTable `yaml:"feat_at_8" json:"feat_at_8"`
	// Secondary is a second stat that only grows late
	Secondary LevelTable `yaml:"secondary" json:"secondary"`
}

var (
	normalModifiers    = LevelTable{3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	featAt4Modifiers   = LevelTable{3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	featAt8Modifiers   = LevelTable{3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	secondaryModifiers = LevelTable{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5}

	// Primal Champion lifts strength to 24 at 20
	barbarianModifiers        = LevelTable{3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 7}
	barbarianFeatAt4Modifiers = LevelTable{3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 7}

	// fighters get an extra improvement at 6
	fighterModifiers        = LevelTable{3, 3, 3, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	fighterFeatAt4Modifiers = LevelTable{3, 3, 3, 3, 3, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
)

// DefaultModifiers returns the standard progressions
func DefaultModifiers() ModifierTables {
	return ModifierTables{
		Normal:    normalModifiers,
		FeatAt4:   featAt4Modifiers,
		FeatAt8:   featAt8Modifiers,
		Secondary: secondaryModifiers,
	}
}

func barbarianModifierTables() ModifierTables {
	t := DefaultModifiers()
	t.Normal = barbarianModifiers
	t.FeatAt4 = barbarianFeatAt4Modifiers
	return t
}

func fighterModifierTables() ModifierTables {
	t := DefaultModifiers()
	t.Normal = fighterModifiers
	t.FeatAt4 = fighterFeatAt4Modifiers
	return t
}

// orDefaults fills any table left empty from def
func (t ModifierTables) orDefaults(def ModifierTables) ModifierTables {
	if t.Normal.IsZero() {
		t.Normal = def.Normal
	}
	if t.FeatAt4.IsZero() {
		t.FeatAt4 = def.FeatAt4
	}
	if t.FeatAt8.IsZero() {
		t.FeatAt8 = def.FeatAt8
	}
	if t.Secondary.IsZero() {
		t.Secondary = def.Secondary
	}
	return t
}

func clampFraction(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
