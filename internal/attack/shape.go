package attack

import (
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Shape describes the damage of a single attack. Bonuses are expected values,
// so a hunter's mark d6 on a longbow is HitBonus 3.5 rather than a dice count.
type Shape struct {
	Die   dice.Die
	Count int
	Flat  float64

	// HitBonus is added on a normal hit only
	HitBonus float64
	// CritBonus is added once on a crit, never doubled
	CritBonus float64
	// HitBonusOnCrit doubles HitBonus on a crit like weapon dice
	HitBonusOnCrit bool

	CritRange int

	// AddModifier adds the attack modifier to damage
	AddModifier bool
	// OffHand attacks never add the modifier to damage
	OffHand bool
	// Unproficient attacks already include proficiency in their modifier, as stat blocks do
	Unproficient bool
}

// Weapon is the common shape of a single-die weapon that adds its modifier
func Weapon(die dice.Die) Shape {
	return Shape{Die: die, Count: 1, AddModifier: true}
}

// Validate rejects non-positive dice
func (s Shape) Validate() error {
	if !s.Die.Valid() {
		return dnderr.InvalidDamageShapef("die size %d must be positive", int(s.Die))
	}
	if s.Count < 1 {
		return dnderr.InvalidDamageShapef("dice count %d must be positive", s.Count)
	}
	if s.CritRange < 0 {
		return dnderr.InvalidDamageShapef("crit range %d must not be negative", s.CritRange)
	}
	return nil
}

func (s Shape) damageModifier(modifier int) float64 {
	if !s.AddModifier || s.OffHand {
		return 0
	}
	return float64(modifier)
}

// HitDamage is the average damage of a normal hit
func (s Shape) HitDamage(modifier int) float64 {
	return dice.Average(s.Die, s.Count) + s.Flat + s.HitBonus + s.damageModifier(modifier)
}

// CritDamage is the average damage of a crit: weapon dice rolled twice, crit bonus once
func (s Shape) CritDamage(modifier int) float64 {
	dmg := 2*dice.Average(s.Die, s.Count) + s.Flat + s.CritBonus + s.damageModifier(modifier)
	if s.HitBonusOnCrit {
		dmg += 2 * s.HitBonus
	}
	return dmg
}
