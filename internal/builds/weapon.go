package builds

import (
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// ApplyWeapon sets the main weapon of a config from looked up dice. Fighters
// and paladins get it as their great weapon. Flat bonuses on the dice are not
// carried over, the builds add their own modifiers.
func ApplyWeapon(cfg Config, dmg dice.Damage) error {
	if !dmg.Die.Valid() || dmg.Count < 1 {
		return dnderr.InvalidDamageShapef("weapon dice %s are not usable", dmg)
	}

	single := func(name string, target *dice.Die) error {
		if dmg.Count != 1 {
			return dnderr.InvalidDamageShapef("%s takes a single die, got %s", name, dmg).
				WithMeta("archetype", string(cfg.Archetype()))
		}
		*target = dmg.Die
		return nil
	}

	switch c := cfg.(type) {
	case *RogueConfig:
		return single("weapon_die", &c.WeaponDie)
	case *RangerConfig:
		return single("weapon_die", &c.WeaponDie)
	case *WizardConfig:
		return single("weapon_die", &c.WeaponDie)
	case *BardConfig:
		return single("weapon_die", &c.WeaponDie)
	case *BarbarianConfig:
		c.WeaponDie, c.WeaponCount = dmg.Die, dmg.Count
	case *FighterConfig:
		c.GreatWeaponDie, c.GreatWeaponCount = dmg.Die, dmg.Count
	case *PaladinConfig:
		c.GreatWeaponDie, c.GreatWeaponCount = dmg.Die, dmg.Count
	default:
		if cfg == nil {
			return dnderr.InvalidParameterf("config is required")
		}
		return dnderr.Validationf("%s has no weapon to replace", cfg.Archetype()).
			WithMeta("archetype", string(cfg.Archetype()))
	}
	return nil
}
