package dnd5e

import (
	"log"
	"sort"

	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

type catalog struct {
	weapons map[string]*Weapon
}

func srdWeapon(key, name, category, weaponRange, damage, damageType string, versatile string, properties ...string) *Weapon {
	dmg, err := dice.Parse(damage)
	if err != nil {
		panic("bad catalog dice for " + key)
	}
	w := &Weapon{
		Key:        key,
		Name:       name,
		Category:   category,
		Range:      weaponRange,
		Damage:     dmg,
		DamageType: damageType,
		Properties: properties,
	}
	if versatile != "" {
		v, err := dice.Parse(versatile)
		if err != nil {
			panic("bad catalog dice for " + key)
		}
		w.TwoHanded = &v
	}
	return w
}

// NewCatalog returns a Client over the SRD weapons the builds care about.
// It needs no network and is used when the API is unreachable.
func NewCatalog() Client {
	weapons := []*Weapon{
		srdWeapon("club", "Club", "simple", "melee", "1d4", "bludgeoning", "", "light", "monk"),
		srdWeapon("dagger", "Dagger", "simple", "melee", "1d4", "piercing", "", "finesse", "light", "thrown", "monk"),
		srdWeapon("quarterstaff", "Quarterstaff", "simple", "melee", "1d6", "bludgeoning", "1d8", "versatile", "monk"),
		srdWeapon("spear", "Spear", "simple", "melee", "1d6", "piercing", "1d8", "thrown", "versatile", "monk"),
		srdWeapon("shortbow", "Shortbow", "simple", "ranged", "1d6", "piercing", "", "ammunition", "two-handed"),
		srdWeapon("crossbow-light", "Crossbow, light", "simple", "ranged", "1d8", "piercing", "", "ammunition", "loading", "two-handed"),
		srdWeapon("battleaxe", "Battleaxe", "martial", "melee", "1d8", "slashing", "1d10", "versatile"),
		srdWeapon("glaive", "Glaive", "martial", "melee", "1d10", "slashing", "", "heavy", "reach", "two-handed"),
		srdWeapon("greataxe", "Greataxe", "martial", "melee", "1d12", "slashing", "", "heavy", "two-handed"),
		srdWeapon("greatsword", "Greatsword", "martial", "melee", "2d6", "slashing", "", "heavy", "two-handed"),
		srdWeapon("halberd", "Halberd", "martial", "melee", "1d10", "slashing", "", "heavy", "reach", "two-handed"),
		srdWeapon("longsword", "Longsword", "martial", "melee", "1d8", "slashing", "1d10", "versatile"),
		srdWeapon("maul", "Maul", "martial", "melee", "2d6", "bludgeoning", "", "heavy", "two-handed"),
		srdWeapon("rapier", "Rapier", "martial", "melee", "1d8", "piercing", "", "finesse"),
		srdWeapon("scimitar", "Scimitar", "martial", "melee", "1d6", "slashing", "", "finesse", "light"),
		srdWeapon("shortsword", "Shortsword", "martial", "melee", "1d6", "piercing", "", "finesse", "light", "monk"),
		srdWeapon("warhammer", "Warhammer", "martial", "melee", "1d8", "bludgeoning", "1d10", "versatile"),
		srdWeapon("crossbow-hand", "Crossbow, hand", "martial", "ranged", "1d6", "piercing", "", "ammunition", "light", "loading"),
		srdWeapon("crossbow-heavy", "Crossbow, heavy", "martial", "ranged", "1d10", "piercing", "", "ammunition", "heavy", "loading", "two-handed"),
		srdWeapon("longbow", "Longbow", "martial", "ranged", "1d8", "piercing", "", "ammunition", "heavy", "two-handed"),
	}

	c := &catalog{weapons: make(map[string]*Weapon, len(weapons))}
	for _, w := range weapons {
		c.weapons[w.Key] = w
	}
	return c
}

func (c *catalog) GetWeapon(key string) (*Weapon, error) {
	if key == "" {
		return nil, dnderr.InvalidParameterf("weapon key is required")
	}
	w, ok := c.weapons[key]
	if !ok {
		return nil, dnderr.NotFoundf("weapon %s not in catalog", key).WithMeta("key", key)
	}
	return w.clone(), nil
}

func (c *catalog) ListWeapons() ([]*Weapon, error) {
	out := make([]*Weapon, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (w *Weapon) clone() *Weapon {
	out := *w
	if w.TwoHanded != nil {
		th := *w.TwoHanded
		out.TwoHanded = &th
	}
	out.Properties = append([]string(nil), w.Properties...)
	return &out
}

type fallback struct {
	primary  Client
	fallback Client
}

// WithFallback tries primary first and answers from fallback when it fails.
// A primary NotFound is final and is not retried.
func WithFallback(primary, secondary Client) Client {
	return &fallback{primary: primary, fallback: secondary}
}

func (f *fallback) GetWeapon(key string) (*Weapon, error) {
	w, err := f.primary.GetWeapon(key)
	if err == nil || dnderr.IsNotFound(err) || dnderr.IsInvalidParameter(err) {
		return w, err
	}
	log.Printf("Weapon lookup for %s failed, using fallback: %v", key, err)
	return f.fallback.GetWeapon(key)
}

func (f *fallback) ListWeapons() ([]*Weapon, error) {
	weapons, err := f.primary.ListWeapons()
	if err == nil && len(weapons) > 0 {
		return weapons, nil
	}
	if err != nil {
		log.Printf("Weapon list failed, using fallback: %v", err)
	}
	return f.fallback.ListWeapons()
}
