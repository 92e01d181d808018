package accuracy

import (
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const sides = 20

// D20 computes exact probabilities by enumerating every d20 outcome.
// Advantage and disadvantage walk all 400 ordered pairs of two dice.
type D20 struct{}

// NewD20 creates the standard provider
func NewD20() *D20 {
	return &D20{}
}

// VsArmor returns hit and crit chances of one attack roll
func (p *D20) VsArmor(level int, band difficulty.Band, modifier, critRangeExtension int, state RollState) (Result, error) {
	if critRangeExtension < 0 {
		return Result{}, dnderr.InvalidParameterf("crit range extension %d is negative", critRangeExtension)
	}

	weights, total, err := keptWeights(state)
	if err != nil {
		return Result{}, err
	}

	ac, err := difficulty.ArmorClass(level, band)
	if err != nil {
		return Result{}, err
	}

	critFrom := sides - critRangeExtension
	var hits, crits int
	for roll := 1; roll <= sides; roll++ {
		switch {
		case roll == 1:
		case roll >= critFrom:
			crits += weights[roll]
		case roll+modifier >= ac:
			hits += weights[roll]
		}
	}

	return Result{
		Hit:  float64(hits) / float64(total),
		Crit: float64(crits) / float64(total),
	}, nil
}

// VsSave returns the chance the target rolls under DC 8+modifier
func (p *D20) VsSave(level int, band difficulty.Band, modifier int, state RollState, ability SaveAbility) (SaveResult, error) {
	weights, total, err := keptWeights(state)
	if err != nil {
		return SaveResult{}, err
	}

	bonus, err := difficulty.SaveBonus(level, band, ability)
	if err != nil {
		return SaveResult{}, err
	}
	if band == difficulty.BandIgnore {
		return SaveResult{Fail: 1}, nil
	}

	dc := 8 + modifier
	var fails int
	for roll := 1; roll <= sides; roll++ {
		if roll+bonus < dc {
			fails += weights[roll]
		}
	}

	return SaveResult{Fail: float64(fails) / float64(total)}, nil
}

// keptWeights counts, for each natural value, how many equally likely outcomes keep it
func keptWeights(state RollState) ([sides + 1]int, int, error) {
	var weights [sides + 1]int

	switch state {
	case Flat, FlatUnproficient:
		for roll := 1; roll <= sides; roll++ {
			weights[roll]++
		}
		return weights, sides, nil
	case Advantage, Disadvantage:
		for a := 1; a <= sides; a++ {
			for b := 1; b <= sides; b++ {
				kept := max(a, b)
				if state == Disadvantage {
					kept = min(a, b)
				}
				weights[kept]++
			}
		}
		return weights, sides * sides, nil
	default:
		return weights, 0, dnderr.InvalidParameterf("unknown roll state %q", state)
	}
}
