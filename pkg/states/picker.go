package states

import "math/rand/v2"

// Picker returns a uniformly distributed integer in [0, n)
type Picker interface {
	IntN(n int) int
}

// randPicker draws from the global math/rand/v2 source
type randPicker struct{}

func (randPicker) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultPicker is the picker used when the service is not given one
var DefaultPicker Picker = randPicker{}

// PickFact selects one fact uniformly at random. It returns false for an empty list
func PickFact(p Picker, facts []string) (string, bool) {
	if len(facts) == 0 {
		return "", false
	}
	if p == nil {
		p = DefaultPicker
	}

	i := p.IntN(len(facts))
	if i < 0 || i >= len(facts) {
		return "", false
	}
	return facts[i], true
}
