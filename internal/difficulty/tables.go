// Package difficulty holds the per-level target defenses used to score attacks and saves.
package difficulty

import (
	"strings"

	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Band selects which per-level defense column is read
type Band string

const (
	BandEqual  Band = "equal"
	BandHalf   Band = "half"
	BandBoss   Band = "boss"
	BandIgnore Band = "ignore"
)

// Levels is the number of entries in every level-indexed table
const Levels = 20

// IgnoredDefense is the armor class used by the ignore band; every non-1 roll beats it
const IgnoredDefense = -10000

// Bands lists every band in display order
func Bands() []Band {
	return []Band{BandEqual, BandHalf, BandBoss, BandIgnore}
}

// ParseBand accepts the band names and their long aliases
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal", "on-level", "onlevel":
		return BandEqual, nil
	case "half", "half-level", "halflevel":
		return BandHalf, nil
	case "boss":
		return BandBoss, nil
	case "ignore", "ignored":
		return BandIgnore, nil
	default:
		return "", dnderr.InvalidParameterf("unknown difficulty band %q", s)
	}
}

// Valid reports whether b is one of the known bands
func (b Band) Valid() bool {
	switch b {
	case BandEqual, BandHalf, BandBoss, BandIgnore:
		return true
	}
	return false
}

// Save selects a save bonus table
type Save string

const (
	SaveDEX Save = "DEX"
	SaveWIS Save = "WIS"
)

// Valid reports whether s has a save table
func (s Save) Valid() bool {
	return s == SaveDEX || s == SaveWIS
}

type column [Levels]int

var (
	armorClass = map[Band]column{
		BandBoss:  {13, 14, 15, 15, 15, 16, 16, 17, 17, 17, 18, 18, 18, 18, 19, 19, 19, 19, 19, 19},
		BandHalf:  {13, 13, 13, 13, 13, 13, 13, 14, 14, 15, 15, 15, 15, 15, 15, 16, 16, 16, 16, 17},
		BandEqual: {13, 13, 13, 14, 15, 15, 15, 16, 16, 17, 17, 17, 18, 18, 18, 18, 19, 19, 19, 19},
	}

	dexSave = map[Band]column{
		BandBoss:  {2, 2, 2, 3, 2, 2, 3, 4, 2, 3, 4, 3, 6, 5, 5, 5, 6, 7, 6, 8},
		BandHalf:  {1, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 2, 2, 2, 2, 3},
		BandEqual: {2, 1, 2, 2, 2, 2, 3, 2, 2, 3, 4, 2, 3, 4, 3, 6, 5, 5, 5, 6},
	}

	wisSave = map[Band]column{
		BandBoss:  {1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 5, 7, 9, 6, 8, 8, 11, 11, 12},
		BandHalf:  {0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4},
		BandEqual: {0, 1, 1, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 5, 7, 9, 6, 8, 8},
	}

	hitPoints = map[Band]column{
		BandBoss:  {123, 138, 153, 168, 183, 198, 213, 228, 243, 258, 273, 288, 303, 318, 333, 348, 378, 423, 468, 513},
		BandHalf:  {60, 78, 78, 93, 93, 108, 108, 123, 123, 138, 138, 153, 153, 168, 168, 183, 183, 198, 198, 213},
		BandEqual: {78, 93, 108, 123, 138, 153, 168, 183, 198, 213, 228, 243, 258, 273, 288, 303, 318, 333, 348, 378},
	}
)

// ValidateLevel fails with an unsupported level error outside 1-20
func ValidateLevel(level int) error {
	if level < 1 || level > Levels {
		return dnderr.UnsupportedLevel(level)
	}
	return nil
}

// ArmorClass returns the target armor class at a level
func ArmorClass(level int, band Band) (int, error) {
	return lookup(armorClass, level, band)
}

// SaveBonus returns the target's save bonus for an ability at a level
func SaveBonus(level int, band Band, save Save) (int, error) {
	switch save {
	case SaveDEX:
		return lookup(dexSave, level, band)
	case SaveWIS:
		return lookup(wisSave, level, band)
	default:
		return 0, dnderr.InvalidParameterf("unknown save ability %q", save)
	}
}

// HitPoints returns the target's hit points at a level
func HitPoints(level int, band Band) (int, error) {
	return lookup(hitPoints, level, band)
}

func lookup(table map[Band]column, level int, band Band) (int, error) {
	if !band.Valid() {
		return 0, dnderr.InvalidParameterf("unknown difficulty band %q", band)
	}
	if err := ValidateLevel(level); err != nil {
		return 0, err
	}
	if band == BandIgnore {
		return IgnoredDefense, nil
	}
	return table[band][level-1], nil
}
