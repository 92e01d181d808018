package accuracy

//go:generate mockgen -destination=mock/mock.go -package=mockaccuracy -source=provider.go

import (
	"strings"

	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// RollState governs how a d20 check is rolled
type RollState string

const (
	Flat             RollState = "flat"
	Advantage        RollState = "advantage"
	Disadvantage     RollState = "disadvantage"
	FlatUnproficient RollState = "flat-unproficient"
)

// ParseRollState parses a roll state name
func ParseRollState(s string) (RollState, error) {
	state := RollState(strings.ToLower(strings.TrimSpace(s)))
	if !state.Valid() {
		return "", dnderr.InvalidParameterf("unknown roll state %q", s)
	}
	return state, nil
}

// Valid reports whether s is a known roll state
func (s RollState) Valid() bool {
	switch s {
	case Flat, Advantage, Disadvantage, FlatUnproficient:
		return true
	}
	return false
}

// SaveAbility selects which save the target rolls
type SaveAbility = difficulty.Save

const (
	DEX = difficulty.SaveDEX
	WIS = difficulty.SaveWIS
)

// Result holds the mutually exclusive chances of a normal hit and a critical hit
type Result struct {
	Hit  float64 `json:"hit"`
	Crit float64 `json:"crit"`
}

// Land is the chance the attack connects at all
func (r Result) Land() float64 {
	return r.Hit + r.Crit
}

// SaveResult holds the chance the target fails its save
type SaveResult struct {
	Fail float64 `json:"fail"`
}

// Provider turns levels, defenses and modifiers into probabilities.
// Modifiers arrive with proficiency already folded in by the caller.
type Provider interface {
	VsArmor(level int, band difficulty.Band, modifier, critRangeExtension int, state RollState) (Result, error)
	VsSave(level int, band difficulty.Band, modifier int, state RollState, ability SaveAbility) (SaveResult, error)
}

// Env pairs a provider with the band it is evaluated against
type Env struct {
	Provider Provider
	Band     difficulty.Band
}

// DefaultEnv is the d20 provider against on-level targets
func DefaultEnv() Env {
	return Env{Provider: NewD20(), Band: difficulty.BandEqual}
}

// Validate checks that the env can be used for calculations
func (e Env) Validate() error {
	if e.Provider == nil {
		return dnderr.InvalidParameterf("accuracy provider is required")
	}
	if !e.Band.Valid() {
		return dnderr.InvalidParameterf("unknown difficulty band %q", e.Band)
	}
	return nil
}

// ProficiencyBonus returns the proficiency bonus for a character level
func ProficiencyBonus(level int) int {
	if level < 1 {
		return 2
	}
	return 2 + (level-1)/4
}
