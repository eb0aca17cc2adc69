package template

// StepType is the closed set of step kinds a template may use
type StepType string

const (
	// StepText collects a free-text answer
	StepText StepType = "text"

	// StepAbility collects an integer ability score
	StepAbility StepType = "ability"

	// StepChoice collects one answer from a fixed list
	StepChoice StepType = "choice"

	// StepConfirmation collects a yes/no answer
	StepConfirmation StepType = "confirmation"

	// StepReview is a display-only waypoint that consumes no answer
	StepReview StepType = "review"
)

// Valid reports whether the type is one of the recognized kinds
func (t StepType) Valid() bool {
	switch t {
	case StepText, StepAbility, StepChoice, StepConfirmation, StepReview:
		return true
	default:
		return false
	}
}

// Step is a single prompt/validation/field unit inside a template.
// Steps are built once at load time and never mutated afterwards.
type Step struct {
	ID            string   `yaml:"id"`
	Prompt        string   `yaml:"prompt"`
	Type          StepType `yaml:"type"`
	Field         string   `yaml:"field,omitempty"`
	Help          string   `yaml:"help,omitempty"`
	MacrosEnabled bool     `yaml:"macros_enabled,omitempty"`
	Validation    Rules    `yaml:"validation,omitempty"`
	Choices       []string `yaml:"choices,omitempty"`
}
