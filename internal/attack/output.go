package attack

// DamageOutput is the expected result of one build variant at one level.
// A nil Damage means the value cannot be computed for that combination.
// A nil Accuracy means no roll was involved.
type DamageOutput struct {
	Damage   *float64 `json:"damage"`
	Accuracy *float64 `json:"accuracy"`
}

// NewOutput returns an output with both damage and accuracy set
func NewOutput(damage, accuracy float64) DamageOutput {
	return DamageOutput{Damage: &damage, Accuracy: &accuracy}
}

// DamageOnly returns an output with no accuracy
func DamageOnly(damage float64) DamageOutput {
	return DamageOutput{Damage: &damage}
}

// DamageOr returns the damage, or def when it is not computable
func (o DamageOutput) DamageOr(def float64) float64 {
	if o.Damage == nil {
		return def
	}
	return *o.Damage
}

// AccuracyOr returns the accuracy, or def when none applies
func (o DamageOutput) AccuracyOr(def float64) float64 {
	if o.Accuracy == nil {
		return def
	}
	return *o.Accuracy
}

// Add sums the damage of several outputs and averages the accuracies that are present
func Add(outputs ...DamageOutput) DamageOutput {
	var damage, accuracy float64
	var rolled int
	for _, o := range outputs {
		damage += o.DamageOr(0)
		if o.Accuracy != nil {
			accuracy += *o.Accuracy
			rolled++
		}
	}
	if rolled == 0 {
		return DamageOnly(damage)
	}
	return NewOutput(damage, accuracy/float64(rolled))
}

// Scale multiplies the damage by factor and keeps the accuracy
func (o DamageOutput) Scale(factor float64) DamageOutput {
	if o.Damage == nil {
		return o
	}
	damage := *o.Damage * factor
	out := DamageOutput{Damage: &damage}
	if o.Accuracy != nil {
		acc := *o.Accuracy
		out.Accuracy = &acc
	}
	return out
}
