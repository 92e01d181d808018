package builds

// describeCommon labels the keys every archetype shares
func describeCommon(key string) string {
	switch key {
	case "advantage":
		return "Fraction of rounds with advantage"
	case "disadvantage":
		return "Fraction of rounds with disadvantage"
	case "modifiers":
		return "Ability modifier progression"
	default:
		return ""
	}
}

// describe looks a key up in an archetype's labels and falls back to the shared ones
func describe(labels map[string]string, key string) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return describeCommon(key)
}

// commonFields lists an archetype's own common keys ahead of the shared ones
func commonFields(keys ...string) []string {
	return append(keys, commonKeys...)
}
