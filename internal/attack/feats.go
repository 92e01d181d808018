package attack

import (
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

// Modifier is a feat or fighting style expressed as its effect on an attack
type Modifier struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Accuracy    int     `json:"accuracy"`
	FlatDamage  float64 `json:"flat_damage"`
}

var (
	// PowerAttack is Great Weapon Master's -5 to hit for +10 damage
	PowerAttack = Modifier{
		Key:         "great_weapon_master",
		Name:        "Great Weapon Master",
		Description: "Take -5 to attack rolls with heavy weapons to gain +10 damage.",
		Accuracy:    -5,
		FlatDamage:  10,
	}

	Dueling = Modifier{
		Key:         "dueling",
		Name:        "Dueling",
		Description: "+2 damage when wielding a melee weapon in one hand with no other weapons.",
		FlatDamage:  2,
	}

	Archery = Modifier{
		Key:         "archery",
		Name:        "Archery",
		Description: "You gain a +2 bonus to attack rolls you make with ranged weapons.",
		Accuracy:    2,
	}
)

// GreatWeaponFighting is the reroll bonus for count dice of the given size
func GreatWeaponFighting(die dice.Die, count int) Modifier {
	return Modifier{
		Key:         "great_weapon_fighting",
		Name:        "Great Weapon Fighting",
		Description: "Reroll 1-2 on damage dice with two-handed or versatile weapons.",
		FlatDamage:  dice.GreatWeaponBonus(die, count),
	}
}

// FightingStyles lists the styles the calculator models
func FightingStyles() []Modifier {
	return []Modifier{Archery, Dueling, GreatWeaponFighting(dice.D6, 2)}
}

// PolearmBonusAttack is the Polearm Master butt-end strike: one d4 attack
// carrying the weapon's flat bonuses.
func (r *Resolver) PolearmBonusAttack(level, modifier int, weapon Shape) (DamageOutput, error) {
	shape := weapon
	shape.Die = dice.D4
	shape.Count = 1
	return r.Attacks(level, 1, modifier, shape)
}
