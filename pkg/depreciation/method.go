package depreciation

import (
	"fmt"
	"strings"
)

// Method selects how annual depreciation is derived.
type Method string

const (
	// StraightLine expenses (cost - salvage) / usefulLife every year.
	StraightLine Method = "straight-line"

	// DoubleDeclining expenses 2 x bookValue / usefulLife, recomputed from the
	// shrinking book value each year.
	DoubleDeclining Method = "double-declining"
)

// DefaultMethod is applied to new assets that do not name a method.
const DefaultMethod = StraightLine

// IsValid checks if the method is supported.
func (m Method) IsValid() bool {
	switch m {
	case StraightLine, DoubleDeclining:
		return true
	default:
		return false
	}
}

// String returns the string representation of the method.
func (m Method) String() string {
	return string(m)
}

// ParseMethod resolves user input into a Method. Matching ignores case and
// accepts a few common spellings; an empty string yields DefaultMethod.
func ParseMethod(value string) (Method, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	switch normalized {
	case "":
		return DefaultMethod, nil
	case "straight-line", "straightline", "linear", "sl":
		return StraightLine, nil
	case "double-declining", "double-declining-balance", "doubledeclining", "ddb", "declining":
		return DoubleDeclining, nil
	}
	return "", fmt.Errorf("unknown depreciation method %q: expected %s or %s", value, StraightLine, DoubleDeclining)
}
