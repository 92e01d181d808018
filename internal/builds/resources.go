package builds

import (
	"slices"
)

// UptimeFraction is the share of combats a per-day feature covers, capped at 1
func UptimeFraction(uses, combats int) float64 {
	if combats <= 0 {
		return 0
	}
	return clampFraction(float64(uses) / float64(combats))
}

// AllocateSlots expands slot pools into one tier index per slot used.
// pools[i] is the number of slots at tier i. Slots are spent from the lowest
// tier up, or from the highest down, and the result holds at most limit uses.
func AllocateSlots(pools []int, highestFirst bool, limit int) []int {
	if limit <= 0 {
		return nil
	}

	var uses []int
	for tier, count := range pools {
		for range max(count, 0) {
			uses = append(uses, tier)
		}
	}
	if highestFirst {
		slices.Reverse(uses)
	}
	if len(uses) > limit {
		uses = uses[:limit]
	}
	return uses
}

// SplitCharges divides charges between two features over a number of rounds.
// The first feature takes what it can use and the second gets the rest.
func SplitCharges(charges, rounds int) (first, second int) {
	if charges <= 0 || rounds <= 0 {
		return 0, 0
	}
	first = min(charges, rounds)
	second = min(charges-first, rounds)
	return first, second
}

// ExpandSlots lists one slot level per round, richest first, padded with 0
// for rounds without a slot. pools[i] counts slots of level i+1.
func ExpandSlots(pools []int, rounds int) []int {
	if rounds <= 0 {
		return nil
	}
	out := make([]int, 0, rounds)
	for tier := len(pools) - 1; tier >= 0 && len(out) < rounds; tier-- {
		for n := 0; n < pools[tier] && len(out) < rounds; n++ {
			out = append(out, tier+1)
		}
	}
	for len(out) < rounds {
		out = append(out, 0)
	}
	return out
}

// paladinSlots are half-caster slots by level, index 0 is a 1st level slot
var paladinSlots = [...][]int{
	1: nil, 2: {2},
	3: {3}, 4: {3},
	5: {4, 2}, 6: {4, 2},
	7: {4, 3}, 8: {4, 3},
	9: {4, 3, 2}, 10: {4, 3, 2},
	11: {4, 3, 3}, 12: {4, 3, 3},
	13: {4, 3, 3, 1}, 14: {4, 3, 3, 1},
	15: {4, 3, 3, 2}, 16: {4, 3, 3, 2},
	17: {4, 3, 3, 3, 1}, 18: {4, 3, 3, 3, 1},
	19: {4, 3, 3, 3, 2}, 20: {4, 3, 3, 3, 2},
}

// fullCasterSlots are full-caster slots by level
var fullCasterSlots = [...][]int{
	1:  {2},
	2:  {3},
	3:  {4, 2},
	4:  {4, 3},
	5:  {4, 3, 2},
	6:  {4, 3, 3},
	7:  {4, 3, 3, 1},
	8:  {4, 3, 3, 2},
	9:  {4, 3, 3, 3, 1},
	10: {4, 3, 3, 3, 2},
	11: {4, 3, 3, 3, 2, 1},
	12: {4, 3, 3, 3, 2, 1},
	13: {4, 3, 3, 3, 2, 1, 1},
	14: {4, 3, 3, 3, 2, 1, 1},
	15: {4, 3, 3, 3, 2, 1, 1, 1},
	16: {4, 3, 3, 3, 2, 1, 1, 1},
	17: {4, 3, 3, 3, 2, 1, 1, 1, 1},
	18: {4, 3, 3, 3, 3, 1, 1, 1, 1},
	19: {4, 3, 3, 3, 3, 2, 1, 1, 1},
	20: {4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// PaladinSlots returns a copy of the paladin's slot pools at a level
func PaladinSlots(level int) []int {
	return slices.Clone(paladinSlots[level])
}

// FullCasterSlots returns a copy of a full caster's slot pools at a level
func FullCasterSlots(level int) []int {
	return slices.Clone(fullCasterSlots[level])
}
