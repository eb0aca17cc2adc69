// Package template implements declarative, versioned character creation
// templates: an ordered sequence of typed steps with per-step validation
// rules, loaded from YAML files.
package template

import (
	"fmt"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// Template is a named, versioned ordered definition of creation steps
type Template struct {
	Name        string         `yaml:"name"`
	Version     string         `yaml:"version"`
	Description string         `yaml:"description,omitempty"`
	Steps       []Step         `yaml:"steps"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}

// Parse builds a Template from a YAML document. Structural problems
// (missing name or version, no steps, duplicate step IDs) fail here,
// before the template is usable; softer semantic checks live in Validate.
func Parse(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to parse template")
	}

	if tmpl.Name == "" {
		return nil, dnderr.InvalidArgument("template must have 'name' field")
	}
	if tmpl.Version == "" {
		return nil, dnderr.InvalidArgument("template must have 'version' field")
	}
	if len(tmpl.Steps) == 0 {
		return nil, dnderr.InvalidArgument("template must have at least one step")
	}

	seen := make(map[string]bool, len(tmpl.Steps))
	for i := range tmpl.Steps {
		// Unspecified step type means plain text
		if tmpl.Steps[i].Type == "" {
			tmpl.Steps[i].Type = StepText
		}

		if seen[tmpl.Steps[i].ID] {
			return nil, dnderr.InvalidArgument("template steps must have unique IDs")
		}
		seen[tmpl.Steps[i].ID] = true
	}

	return &tmpl, nil
}

// Validate runs the semantic self-check, stopping at the first violation
func (t *Template) Validate() error {
	if t.Name == "" {
		return dnderr.Validation("Template name cannot be empty")
	}
	if t.Version == "" {
		return dnderr.Validation("Template version cannot be empty")
	}
	if len(t.Steps) == 0 {
		return dnderr.Validation("Template must have at least one step")
	}

	for i := range t.Steps {
		step := &t.Steps[i]
		if step.ID == "" {
			return dnderr.Validation("All steps must have unique IDs")
		}
		if step.Prompt == "" {
			return dnderr.Validationf("Step '%s' must have a prompt", step.ID)
		}
		if !step.Type.Valid() {
			return dnderr.Validationf("Step '%s' has invalid type '%s'", step.ID, step.Type)
		}
	}

	return nil
}

// Step returns the step at a zero-based index, or nil when out of bounds
func (t *Template) Step(index int) *Step {
	if index < 0 || index >= len(t.Steps) {
		return nil
	}
	return &t.Steps[index]
}

// StepByID returns the step with the given id, or nil when absent
func (t *Template) StepByID(id string) *Step {
	for i := range t.Steps {
		if t.Steps[i].ID == id {
			return &t.Steps[i]
		}
	}
	return nil
}

// StepCount returns the total number of steps
func (t *Template) StepCount() int {
	return len(t.Steps)
}

// Marshal renders the template back to YAML
func (t *Template) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return data, nil
}
