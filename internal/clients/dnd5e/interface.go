package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
)

// Weapon is the part of an SRD weapon the damage engine cares about
type Weapon struct {
	Key      string
	Name     string
	Category string // simple or martial
	Range    string // melee or ranged
	Damage   dice.Damage
	// DamageType is the SRD key, e.g. "slashing"
	DamageType string
	// TwoHanded is the versatile damage, nil for weapons without it
	TwoHanded  *dice.Damage
	Properties []string
}

// HasProperty reports whether the weapon lists a property such as "finesse"
func (w *Weapon) HasProperty(key string) bool {
	for _, p := range w.Properties {
		if p == key {
			return true
		}
	}
	return false
}

type Client interface {
	GetWeapon(key string) (*Weapon, error)
	ListWeapons() ([]*Weapon, error)
}
