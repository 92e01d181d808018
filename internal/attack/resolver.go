package attack

import (
	"math"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Mix is the fraction of rounds rolled with advantage and with disadvantage.
// The remainder is rolled flat.
type Mix struct {
	Advantage    float64 `yaml:"advantage" json:"advantage"`
	Disadvantage float64 `yaml:"disadvantage" json:"disadvantage"`
}

// Clamp keeps both fractions in [0,1] and their sum at most 1
func (m Mix) Clamp() Mix {
	out := Mix{Advantage: clamp01(m.Advantage), Disadvantage: clamp01(m.Disadvantage)}
	if sum := out.Advantage + out.Disadvantage; sum > 1 {
		out.Advantage /= sum
		out.Disadvantage /= sum
	}
	return out
}

// Flat is the fraction of rounds rolled without advantage or disadvantage
func (m Mix) Flat() float64 {
	return math.Max(0, 1-m.Advantage-m.Disadvantage)
}

type weightedState struct {
	weight float64
	state  accuracy.RollState
}

func (m Mix) states() []weightedState {
	all := []weightedState{
		{m.Flat(), accuracy.Flat},
		{m.Advantage, accuracy.Advantage},
		{m.Disadvantage, accuracy.Disadvantage},
	}
	out := all[:0]
	for _, ws := range all {
		if ws.weight > 0 {
			out = append(out, ws)
		}
	}
	return out
}

// Resolver turns attacks, saves and procs into expected damage.
// Every roll blends the flat, advantage and disadvantage results by the mix.
type Resolver struct {
	env accuracy.Env
	mix Mix
}

// NewResolver creates a resolver for an accuracy env and advantage mix
func NewResolver(env accuracy.Env, mix Mix) *Resolver {
	return &Resolver{env: env, mix: mix.Clamp()}
}

// WithMix returns a resolver sharing the env with a different mix
func (r *Resolver) WithMix(mix Mix) *Resolver {
	return NewResolver(r.env, mix)
}

// Mix returns the clamped mix the resolver blends by
func (r *Resolver) Mix() Mix {
	return r.mix
}

// Roll returns hit and crit chances for a single roll state.
// Proficiency is folded into modifier except for flat-unproficient rolls.
func (r *Resolver) Roll(level, modifier, critRange int, state accuracy.RollState) (accuracy.Result, error) {
	bonus := modifier
	if state != accuracy.FlatUnproficient {
		bonus += accuracy.ProficiencyBonus(level)
	}
	return r.env.Provider.VsArmor(level, r.env.Band, bonus, critRange, state)
}

func (r *Resolver) rollShape(level, modifier int, shape Shape, state accuracy.RollState) (accuracy.Result, error) {
	if shape.Unproficient {
		return r.env.Provider.VsArmor(level, r.env.Band, modifier, shape.CritRange, unproficient(state))
	}
	return r.Roll(level, modifier, shape.CritRange, state)
}

// unproficient keeps the state but marks flat rolls as stat-block rolls
func unproficient(state accuracy.RollState) accuracy.RollState {
	if state == accuracy.Flat {
		return accuracy.FlatUnproficient
	}
	return state
}

// Attacks is the expected damage of count identical attacks.
// Attacks are independent and each one is scored as P(hit)*hit + P(crit)*crit.
func (r *Resolver) Attacks(level, count, modifier int, shape Shape) (DamageOutput, error) {
	if count < 0 {
		return DamageOutput{}, dnderr.InvalidParameterf("attack count %d is negative", count)
	}
	if count == 0 {
		return DamageOnly(0), nil
	}
	if err := shape.Validate(); err != nil {
		return DamageOutput{}, err
	}

	hitDamage := shape.HitDamage(modifier)
	critDamage := shape.CritDamage(modifier)

	var perAttack, land float64
	for _, ws := range r.mix.states() {
		res, err := r.rollShape(level, modifier, shape, ws.state)
		if err != nil {
			return DamageOutput{}, err
		}
		perAttack += ws.weight * DamageWithCrits(1, hitDamage, critDamage, res)
		land += ws.weight * res.Land()
	}

	return NewOutput(float64(count)*perAttack, land), nil
}

// Cantrip scores attack-roll cantrips. The arithmetic is the same as Attacks.
func (r *Resolver) Cantrip(level, count, modifier int, shape Shape) (DamageOutput, error) {
	return r.Attacks(level, count, modifier, shape)
}

// ScalingCantrip is a single cantrip attack whose dice grow at 5, 11 and 17
func (r *Resolver) ScalingCantrip(level, modifier int, die dice.Die, extra float64) (DamageOutput, error) {
	return r.Cantrip(level, 1, modifier, Shape{Die: die, Count: dice.CantripDice(level), Flat: extra})
}

// SaveEffect is a scaling save-for-half effect against DC 8+modifier+proficiency.
// The target always rolls flat; the attacker's mix does not apply to saves.
func (r *Resolver) SaveEffect(level int, ability accuracy.SaveAbility, die dice.Die, extraFlat float64, modifier int) (DamageOutput, error) {
	if !die.Valid() {
		return DamageOutput{}, dnderr.InvalidDamageShapef("die size %d must be positive", int(die))
	}

	fail, err := r.SaveChance(level, ability, modifier)
	if err != nil {
		return DamageOutput{}, err
	}

	full := dice.Average(die, dice.CantripDice(level)) + extraFlat
	fraction := fail + 0.5*(1-fail)
	return NewOutput(full*fraction, fail), nil
}

// SaveChance is the chance the target fails a save against DC 8+modifier+proficiency
func (r *Resolver) SaveChance(level int, ability accuracy.SaveAbility, modifier int) (float64, error) {
	save, err := r.env.Provider.VsSave(level, r.env.Band, modifier+accuracy.ProficiencyBonus(level), accuracy.Flat, ability)
	if err != nil {
		return 0, err
	}
	return save.Fail, nil
}

// ReactiveProc is bonus damage that needs the primary attack to land and then
// triggers procRate of the time, such as booming blade's movement burst.
func (r *Resolver) ReactiveProc(level int, procRate float64, modifier int, die dice.Die) (DamageOutput, error) {
	if !die.Valid() {
		return DamageOutput{}, dnderr.InvalidDamageShapef("die size %d must be positive", int(die))
	}

	land, err := r.blend(level, modifier, 0, func(res accuracy.Result) float64 { return res.Land() })
	if err != nil {
		return DamageOutput{}, err
	}

	dmg := clamp01(procRate) * land * dice.Average(die, dice.CantripDice(level))
	return NewOutput(dmg, land), nil
}

// BoomingBlade is one weapon attack carrying the cantrip's on-hit thunder dice
// plus the movement proc.
func (r *Resolver) BoomingBlade(level int, procRate float64, modifier int, weapon Shape) (DamageOutput, error) {
	shape := weapon
	shape.HitBonus += dice.Average(dice.D8, dice.CantripDice(level)-1)
	shape.HitBonusOnCrit = true

	hit, err := r.Attacks(level, 1, modifier, shape)
	if err != nil {
		return DamageOutput{}, err
	}
	proc, err := r.ReactiveProc(level, procRate, modifier, dice.D8)
	if err != nil {
		return DamageOutput{}, err
	}

	return NewOutput(hit.DamageOr(0)+proc.DamageOr(0), hit.AccuracyOr(0)), nil
}

// ChanceToHitAtLeastOnce is 1-(1-p)^n for n attacks, blended by the mix
func (r *Resolver) ChanceToHitAtLeastOnce(level, modifier, n int) (float64, error) {
	if n <= 0 {
		return 0, nil
	}
	return r.blend(level, modifier, 0, func(res accuracy.Result) float64 {
		return 1 - math.Pow(1-res.Land(), float64(n))
	})
}

func (r *Resolver) blend(level, modifier, critRange int, fn func(accuracy.Result) float64) (float64, error) {
	var total float64
	for _, ws := range r.mix.states() {
		res, err := r.Roll(level, modifier, critRange, ws.state)
		if err != nil {
			return 0, err
		}
		total += ws.weight * fn(res)
	}
	return total, nil
}

// DamageWithCrits scores attacks given precomputed hit and crit damage
func DamageWithCrits(attacks float64, hitDamage, critDamage float64, res accuracy.Result) float64 {
	return attacks * (res.Hit*hitDamage + res.Crit*critDamage)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
