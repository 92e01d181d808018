package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Die is the number of sides on a die
type Die int

const (
	D4  Die = 4
	D6  Die = 6
	D8  Die = 8
	D10 Die = 10
	D12 Die = 12
	D20 Die = 20
)

// Average returns the expected roll of a single die
func (d Die) Average() float64 {
	return float64(d+1) / 2
}

// Valid reports whether the die has at least one side
func (d Die) Valid() bool {
	return d > 0
}

func (d Die) String() string {
	return fmt.Sprintf("d%d", int(d))
}

// UnmarshalYAML accepts both 8 and "d8"
func (d *Die) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDie(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDie parses "d8", "D8" or "8"
func ParseDie(s string) (Die, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "d")
	sides, err := strconv.Atoi(trimmed)
	if err != nil || sides < 1 {
		return 0, fmt.Errorf("invalid die %q", s)
	}
	return Die(sides), nil
}

// Average returns the expected total of count dice of the given size
func Average(d Die, count int) float64 {
	return float64(count) * d.Average()
}

// Damage is a parsed dice expression such as 2d6+3
type Damage struct {
	Count int
	Die   Die
	Bonus int
}

// Average returns the expected total of the expression
func (dmg Damage) Average() float64 {
	return Average(dmg.Die, dmg.Count) + float64(dmg.Bonus)
}

func (dmg Damage) String() string {
	if dmg.Bonus == 0 {
		return fmt.Sprintf("%d%s", dmg.Count, dmg.Die)
	}
	return fmt.Sprintf("%d%s%+d", dmg.Count, dmg.Die, dmg.Bonus)
}

// Parse parses dice notation like "1d8", "2d6+3" or "1d4-1"
func Parse(notation string) (Damage, error) {
	s := strings.ReplaceAll(strings.ToLower(notation), " ", "")

	var bonus int
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		b, err := strconv.Atoi(s[i:])
		if err != nil {
			return Damage{}, errors.New("invalid dice string")
		}
		bonus = b
		s = s[:i]
	}

	parts := strings.Split(s, "d")
	if len(parts) != 2 {
		return Damage{}, errors.New("invalid dice string")
	}

	count := 1
	if parts[0] != "" {
		c, err := strconv.Atoi(parts[0])
		if err != nil {
			return Damage{}, errors.New("invalid dice string")
		}
		count = c
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Damage{}, errors.New("invalid dice string")
	}

	if count < 1 || sides < 1 {
		return Damage{}, errors.New("invalid dice string")
	}

	return Damage{Count: count, Die: Die(sides), Bonus: bonus}, nil
}

// GreatWeaponBonus is the average gain from rerolling 1s and 2s once on count dice.
// Per die that is (N-2)/N: d6 gains 2/3, d12 gains 5/6.
func GreatWeaponBonus(d Die, count int) float64 {
	if d <= 2 || count < 1 {
		return 0
	}
	return float64(count) * float64(d-2) / float64(d)
}

// CantripDice returns the number of damage dice a scaling cantrip rolls at a level
func CantripDice(level int) int {
	switch {
	case level >= 17:
		return 4
	case level >= 11:
		return 3
	case level >= 5:
		return 2
	default:
		return 1
	}
}
