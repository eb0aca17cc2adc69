package template

import (
	"fmt"
	"strings"
)

// Rules holds the per-step constraints a template can declare. String
// rules apply only to string answers and numeric rules only to numeric
// answers; a rule set with no applicable constraints always passes.
type Rules struct {
	MinLength *int     `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`
	Min       *int     `yaml:"min,omitempty"`
	Max       *int     `yaml:"max,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Choices   []string `yaml:"choices,omitempty"`

	// ParseRolls marks the step as accepting dice macro output
	ParseRolls bool `yaml:"parse_rolls,omitempty"`
}

// Validate checks a value against the rules. It returns ok and the
// first failure message; it never mutates state and never panics.
func (r Rules) Validate(value any) (bool, string) {
	switch v := value.(type) {
	case string:
		if r.MinLength != nil && len(v) < *r.MinLength {
			return false, fmt.Sprintf("Minimum length is %d", *r.MinLength)
		}
		if r.MaxLength != nil && len(v) > *r.MaxLength {
			return false, fmt.Sprintf("Maximum length is %d", *r.MaxLength)
		}
		if r.Choices != nil && !contains(r.Choices, v) {
			return false, fmt.Sprintf("Must be one of: %s", strings.Join(r.Choices, ", "))
		}
		return true, ""
	case int:
		return r.validateNumber(float64(v))
	case float64:
		return r.validateNumber(v)
	default:
		return true, ""
	}
}

func (r Rules) validateNumber(v float64) (bool, string) {
	if r.Min != nil && v < float64(*r.Min) {
		return false, fmt.Sprintf("Minimum value is %d", *r.Min)
	}
	if r.Max != nil && v > float64(*r.Max) {
		return false, fmt.Sprintf("Maximum value is %d", *r.Max)
	}
	return true, ""
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
