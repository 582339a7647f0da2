package states

import "errors"

// Errors returned by overlay stores. The service turns them into
// classified errors that carry the state's display name.
var (
	ErrNoFacts         = errors.New("no fun facts stored for state")
	ErrIndexOutOfRange = errors.New("fun fact index out of range")
	ErrEmptyFacts      = errors.New("at least one fun fact is required")
)

// CheckIndex verifies that index addresses an existing fact
func CheckIndex(facts []string, index int) error {
	if len(facts) == 0 {
		return ErrNoFacts
	}
	if index < 0 || index >= len(facts) {
		return ErrIndexOutOfRange
	}
	return nil
}

// AppendFacts returns a new list with more appended after facts
func AppendFacts(facts, more []string) ([]string, error) {
	if len(more) == 0 {
		return nil, ErrEmptyFacts
	}

	out := make([]string, 0, len(facts)+len(more))
	out = append(out, facts...)
	return append(out, more...), nil
}

// ReplaceAt returns a copy of facts with the element at index set to value
func ReplaceAt(facts []string, index int, value string) ([]string, error) {
	if err := CheckIndex(facts, index); err != nil {
		return nil, err
	}

	out := make([]string, len(facts))
	copy(out, facts)
	out[index] = value
	return out, nil
}

// RemoveAt unsets the slot at index and then compacts the list
func RemoveAt(facts []string, index int) ([]string, error) {
	if err := CheckIndex(facts, index); err != nil {
		return nil, err
	}
	return Compact(Tombstone(facts, index)), nil
}

// Tombstone returns the facts as slots with the slot at index unset
func Tombstone(facts []string, index int) []*string {
	slots := make([]*string, len(facts))
	for i := range facts {
		fact := facts[i]
		slots[i] = &fact
	}
	if index >= 0 && index < len(slots) {
		slots[index] = nil
	}
	return slots
}

// Compact drops every unset slot, keeping the survivors in order
func Compact(slots []*string) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}
