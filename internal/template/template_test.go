package template_test

import (
	"testing"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicTemplate = `
name: Basic Character
version: "1.0"
description: A quick character walkthrough
steps:
  - id: name
    prompt: What is your character's name?
    type: text
    field: name
    validation:
      min_length: 2
      max_length: 30
  - id: strength
    prompt: Enter strength (3-20)
    type: ability
    field: str
    macros_enabled: true
    validation:
      min: 3
      max: 20
metadata:
  author: toolkit
`

func TestParse(t *testing.T) {
	tmpl, err := template.Parse([]byte(basicTemplate))
	require.NoError(t, err)

	assert.Equal(t, "Basic Character", tmpl.Name)
	assert.Equal(t, "1.0", tmpl.Version)
	assert.Equal(t, 2, tmpl.StepCount())
	assert.Equal(t, "toolkit", tmpl.Metadata["author"])

	step := tmpl.Step(0)
	require.NotNil(t, step)
	assert.Equal(t, "name", step.ID)
	assert.Equal(t, template.StepText, step.Type)
	require.NotNil(t, step.Validation.MinLength)
	assert.Equal(t, 2, *step.Validation.MinLength)

	step = tmpl.Step(1)
	require.NotNil(t, step)
	assert.Equal(t, template.StepAbility, step.Type)
	assert.True(t, step.MacrosEnabled)
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing name",
			doc:     "version: \"1.0\"\nsteps:\n  - id: a\n    prompt: p\n",
			wantErr: "template must have 'name' field",
		},
		{
			name:    "missing version",
			doc:     "name: t\nsteps:\n  - id: a\n    prompt: p\n",
			wantErr: "template must have 'version' field",
		},
		{
			name:    "no steps",
			doc:     "name: t\nversion: \"1.0\"\n",
			wantErr: "template must have at least one step",
		},
		{
			name:    "duplicate step ids",
			doc:     "name: t\nversion: \"1.0\"\nsteps:\n  - id: a\n    prompt: p\n  - id: a\n    prompt: q\n",
			wantErr: "template steps must have unique IDs",
		},
		{
			name:    "not yaml at all",
			doc:     "\t{{{",
			wantErr: "failed to parse template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := template.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}
}

func TestParse_DefaultsTypeToText(t *testing.T) {
	tmpl, err := template.Parse([]byte("name: t\nversion: \"1\"\nsteps:\n  - id: a\n    prompt: p\n"))
	require.NoError(t, err)
	assert.Equal(t, template.StepText, tmpl.Step(0).Type)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*template.Template)
		wantErr string
	}{
		{
			name:   "valid template",
			mutate: func(t *template.Template) {},
		},
		{
			name:    "empty name",
			mutate:  func(t *template.Template) { t.Name = "" },
			wantErr: "Template name cannot be empty",
		},
		{
			name:    "empty version",
			mutate:  func(t *template.Template) { t.Version = "" },
			wantErr: "Template version cannot be empty",
		},
		{
			name:    "no steps",
			mutate:  func(t *template.Template) { t.Steps = nil },
			wantErr: "Template must have at least one step",
		},
		{
			name:    "step without id",
			mutate:  func(t *template.Template) { t.Steps[0].ID = "" },
			wantErr: "All steps must have unique IDs",
		},
		{
			name:    "step without prompt",
			mutate:  func(t *template.Template) { t.Steps[1].Prompt = "" },
			wantErr: "Step 'strength' must have a prompt",
		},
		{
			name:    "invalid step type",
			mutate:  func(t *template.Template) { t.Steps[1].Type = "magic" },
			wantErr: "Step 'strength' has invalid type 'magic'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.Parse([]byte(basicTemplate))
			require.NoError(t, err)

			tt.mutate(tmpl)
			err = tmpl.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestStepLookups(t *testing.T) {
	tmpl, err := template.Parse([]byte(basicTemplate))
	require.NoError(t, err)

	assert.Nil(t, tmpl.Step(-1))
	assert.Nil(t, tmpl.Step(2))
	assert.NotNil(t, tmpl.Step(1))

	step := tmpl.StepByID("strength")
	require.NotNil(t, step)
	assert.Equal(t, "str", step.Field)

	assert.Nil(t, tmpl.StepByID("missing"))
}

func TestRulesValidate(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name    string
		rules   template.Rules
		value   any
		wantOK  bool
		wantMsg string
	}{
		{
			name:    "string below min length",
			rules:   template.Rules{MinLength: intPtr(3)},
			value:   "ab",
			wantMsg: "Minimum length is 3",
		},
		{
			name:   "string at min length",
			rules:  template.Rules{MinLength: intPtr(3)},
			value:  "abc",
			wantOK: true,
		},
		{
			name:    "string above max length",
			rules:   template.Rules{MaxLength: intPtr(4)},
			value:   "abcde",
			wantMsg: "Maximum length is 4",
		},
		{
			name:    "string not in choices",
			rules:   template.Rules{Choices: []string{"a", "b", "c"}},
			value:   "d",
			wantMsg: "Must be one of: a, b, c",
		},
		{
			name:   "string in choices",
			rules:  template.Rules{Choices: []string{"a", "b", "c"}},
			value:  "b",
			wantOK: true,
		},
		{
			name:    "min length checked before choices",
			rules:   template.Rules{MinLength: intPtr(2), Choices: []string{"a"}},
			value:   "x",
			wantMsg: "Minimum length is 2",
		},
		{
			name:    "int below min",
			rules:   template.Rules{Min: intPtr(3)},
			value:   2,
			wantMsg: "Minimum value is 3",
		},
		{
			name:    "int above max",
			rules:   template.Rules{Max: intPtr(20)},
			value:   21,
			wantMsg: "Maximum value is 20",
		},
		{
			name:   "int in range",
			rules:  template.Rules{Min: intPtr(3), Max: intPtr(20)},
			value:  14,
			wantOK: true,
		},
		{
			name:   "numeric rules ignore strings",
			rules:  template.Rules{Min: intPtr(3)},
			value:  "hi",
			wantOK: true,
		},
		{
			name:   "unconstrained value passes",
			rules:  template.Rules{},
			value:  42,
			wantOK: true,
		},
		{
			name:   "other types pass by default",
			rules:  template.Rules{Min: intPtr(3)},
			value:  true,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.rules.Validate(tt.value)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
