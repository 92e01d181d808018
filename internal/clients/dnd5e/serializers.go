package dnd5e

import (
	"strings"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

func apiWeaponToWeapon(input *apiEntities.Weapon) (*Weapon, error) {
	if input == nil {
		return nil, dnderr.InvalidParameterf("weapon is nil")
	}
	if input.Damage == nil {
		return nil, dnderr.InvalidDamageShapef("weapon %s has no damage", input.Key)
	}

	dmg, err := dice.Parse(input.Damage.DamageDice)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidDamageShape, "unknown dice format "+input.Damage.DamageDice)
	}

	weapon := &Weapon{
		Key:        input.Key,
		Name:       input.Name,
		Category:   strings.ToLower(input.WeaponCategory),
		Range:      strings.ToLower(input.WeaponRange),
		Damage:     dmg,
		Properties: apiReferenceItemsToKeys(input.Properties),
	}
	if input.Damage.DamageType != nil {
		weapon.DamageType = input.Damage.DamageType.Key
	}

	if input.TwoHandedDamage != nil {
		twoHanded, err := dice.Parse(input.TwoHandedDamage.DamageDice)
		if err == nil {
			weapon.TwoHanded = &twoHanded
		}
	}
	return weapon, nil
}

func apiReferenceItemsToKeys(input []*apiEntities.ReferenceItem) []string {
	if input == nil {
		return nil
	}
	keys := make([]string, 0, len(input))
	for _, item := range input {
		if item != nil {
			keys = append(keys, item.Key)
		}
	}
	return keys
}
