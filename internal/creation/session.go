// Package creation drives interactive, template-based player creation.
// A Session walks a character through a template's steps one input at a
// time, producing a Character that can be saved into a game.
package creation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
	"github.com/KirkDiggler/roleplay-toolkit/internal/macro"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters"
	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
	"github.com/KirkDiggler/roleplay-toolkit/internal/uuid"
)

// Session is a single in-progress template creation run. It is not safe
// for concurrent use; a REPL drives one session at a time.
type Session struct {
	template  *template.Template
	macros    *macro.Processor
	gen       uuid.Generator
	char      *character.Character
	stepIndex int
	answers   map[string]any
	cancelled bool
}

// SessionConfig holds Session dependencies
type SessionConfig struct {
	Template *template.Template

	// Roller defaults to a random roller when nil; tests inject a
	// deterministic one
	Roller dice.Roller

	// UUIDGenerator defaults to random UUIDs when nil
	UUIDGenerator uuid.Generator
}

// NewSession starts a creation run at the template's first step
func NewSession(cfg *SessionConfig) *Session {
	s := &Session{
		template: cfg.Template,
		macros:   macro.NewProcessor(&macro.ProcessorConfig{Roller: cfg.Roller}),
		gen:      cfg.UUIDGenerator,
		answers:  make(map[string]any),
	}
	if s.gen == nil {
		s.gen = uuid.NewGoogleUUIDGenerator()
	}
	return s
}

// WelcomeMessage describes the template and shows the first prompt
func (s *Session) WelcomeMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Starting player creation using template '%s'.\n", s.template.Name)
	fmt.Fprintf(&b, "Description: %s\n", s.template.Description)
	fmt.Fprintf(&b, "Total steps: %d\n", s.template.StepCount())
	b.WriteString("Type 'help' for available commands.\n\n")

	if step := s.CurrentStep(); step != nil {
		b.WriteString(step.Prompt)
		if step.Help != "" {
			fmt.Fprintf(&b, "\n(%s)", step.Help)
		}
	}

	return b.String()
}

// CurrentStep returns the step awaiting input, or nil when past the end
func (s *Session) CurrentStep() *template.Step {
	return s.template.Step(s.stepIndex)
}

// InProgress reports whether the session still expects input
func (s *Session) InProgress() bool {
	return !s.cancelled && s.stepIndex < s.template.StepCount()
}

// Complete reports whether every step has been answered
func (s *Session) Complete() bool {
	return !s.cancelled && s.stepIndex >= s.template.StepCount()
}

// Character returns the character built so far, nil before the first answer
func (s *Session) Character() *character.Character {
	return s.char
}

// Handle processes one line of user input and returns the response to show
func (s *Session) Handle(input string) string {
	input = strings.TrimSpace(input)

	if input == "" {
		return "Enter a command or type 'help' for available commands"
	}

	switch strings.ToLower(input) {
	case "help":
		return s.handleHelp()
	case "status":
		return s.handleStatus()
	case "back":
		return s.handleBack()
	case "cancel":
		return s.handleCancel()
	case "show":
		return s.handleShow()
	}

	return s.handleStepInput(input)
}

func (s *Session) handleStepInput(input string) string {
	step := s.CurrentStep()

	if step == nil {
		return "Template creation complete!"
	}

	// Review steps display and consume no answer
	if step.Type == template.StepReview {
		s.stepIndex++
		return s.advance()
	}

	if step.Type == template.StepConfirmation {
		switch strings.ToLower(input) {
		case "yes":
			s.answers[step.ID] = true
		case "no":
			s.answers[step.ID] = false
		default:
			return "Please answer 'yes' or 'no'"
		}
		s.stepIndex++
		return s.advance()
	}

	return s.processAnswer(step, input)
}

func (s *Session) processAnswer(step *template.Step, input string) string {
	if step.MacrosEnabled {
		result, err := s.macros.Process(input)
		switch {
		case err == nil:
			s.answers[step.ID] = result.Value
			s.apply(step, result.Value)
			s.stepIndex++
			return fmt.Sprintf("%s\n\n%s", result.Message, s.advance())
		case !errors.Is(err, macro.ErrNoMacro):
			return fmt.Sprintf("Error: %s\nPlease try again.", err.Error())
		}
		// Not a macro; treat as a literal answer
	}

	value, errMsg := s.parseAnswer(step, input)
	if errMsg != "" {
		return fmt.Sprintf("Invalid input: %s", errMsg)
	}

	s.answers[step.ID] = value
	s.apply(step, value)
	s.stepIndex++
	return s.advance()
}

// parseAnswer validates a literal answer against the step's type and rules.
// The returned error message is empty on success.
func (s *Session) parseAnswer(step *template.Step, input string) (any, string) {
	switch step.Type {
	case template.StepText:
		if ok, errMsg := step.Validation.Validate(input); !ok {
			return nil, errMsg
		}
		return input, ""

	case template.StepAbility:
		value, err := strconv.Atoi(input)
		if err != nil {
			return nil, "Please enter a valid number"
		}
		if ok, errMsg := step.Validation.Validate(value); !ok {
			return nil, errMsg
		}
		return value, ""

	case template.StepChoice:
		if len(step.Choices) > 0 {
			for _, choice := range step.Choices {
				if input == choice {
					return input, ""
				}
			}
			return nil, fmt.Sprintf("Must be one of: %s", strings.Join(step.Choices, ", "))
		}
		return input, ""

	default:
		return nil, fmt.Sprintf("Unknown step type: %s", step.Type)
	}
}

// apply writes a validated answer onto the character, creating it lazily
func (s *Session) apply(step *template.Step, value any) {
	if s.char == nil {
		s.char = character.New(character.PlaceholderName)
	}

	if step.Field == "" {
		return
	}

	if step.Type == template.StepAbility {
		if score, ok := value.(int); ok {
			if err := s.char.SetAbility(step.Field, score); err == nil {
				return
			}
		}
		// Fall through for fields that aren't one of the six abilities
	}

	s.char.SetField(step.Field, value)
}

// advance returns the next step's prompt, or the completion message
func (s *Session) advance() string {
	step := s.CurrentStep()
	if step == nil {
		return s.completionMessage()
	}

	msg := step.Prompt
	if step.Help != "" {
		msg += fmt.Sprintf("\n(%s)", step.Help)
	}
	return msg
}

func (s *Session) completionMessage() string {
	if s.char != nil {
		return fmt.Sprintf("Player creation complete! '%s' is ready.\n"+
			"Use 'save' to save the character, or 'cancel' to discard.", s.char.Name)
	}
	return "Template creation complete!"
}

func (s *Session) handleBack() string {
	if s.stepIndex > 0 {
		s.stepIndex--
		return s.advance()
	}
	return "Already at first step"
}

func (s *Session) handleCancel() string {
	s.char = nil
	s.answers = make(map[string]any)
	s.cancelled = true
	return "Player creation cancelled."
}

func (s *Session) handleStatus() string {
	if s.char == nil {
		return "No player created yet"
	}

	lines := []string{fmt.Sprintf("Player: %s", s.char.Name)}

	limit := s.stepIndex + 1
	if limit > s.template.StepCount() {
		limit = s.template.StepCount()
	}
	for i := 0; i < limit; i++ {
		step := s.template.Step(i)
		if step == nil {
			continue
		}
		if answer, ok := s.answers[step.ID]; ok {
			lines = append(lines, fmt.Sprintf("  %s: %v", step.ID, answer))
		}
	}

	return strings.Join(lines, "\n")
}

func (s *Session) handleHelp() string {
	return strings.Join([]string{
		"Template Player Creation Commands:",
		"  <answer>        - Answer the current step",
		"  @roll d20       - Roll dice (if enabled for this step)",
		"  @roll-top 3 4d6 - Roll 4d6, keep top 3",
		"  @sum 10+5       - Calculate sum",
		"  status          - Show current player status",
		"  show            - Show current step details",
		"  back            - Go to previous step",
		"  cancel          - Cancel without saving",
		"  help            - Show this help message",
	}, "\n")
}

func (s *Session) handleShow() string {
	step := s.CurrentStep()
	if step == nil {
		return "No more steps"
	}

	lines := []string{
		fmt.Sprintf("Step %d of %d", s.stepIndex+1, s.template.StepCount()),
		fmt.Sprintf("ID: %s", step.ID),
		fmt.Sprintf("Type: %s", step.Type),
		fmt.Sprintf("Prompt: %s", step.Prompt),
	}

	if step.Help != "" {
		lines = append(lines, fmt.Sprintf("Help: %s", step.Help))
	}
	if len(step.Choices) > 0 {
		lines = append(lines, fmt.Sprintf("Choices: %s", strings.Join(step.Choices, ", ")))
	}
	if step.MacrosEnabled {
		lines = append(lines, "Macros enabled: @roll, @roll-top, @sum")
	}

	return strings.Join(lines, "\n")
}

// SavePlayer persists the built character into the given repository.
// New characters may not shadow an existing name.
func (s *Session) SavePlayer(ctx context.Context, repo characters.Repository) (string, error) {
	if s.char == nil || s.char.Name == "" {
		return "", dnderr.InvalidArgument("Cannot save: no player created")
	}

	exists, err := repo.Exists(ctx, s.char.Name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", dnderr.AlreadyExistsf("Player '%s' already exists in this game", s.char.Name)
	}

	if s.char.ID == "" {
		s.char.ID = s.gen.New()
	}

	if err := repo.Save(ctx, s.char); err != nil {
		return "", err
	}

	name := s.char.Name
	s.char = nil
	return fmt.Sprintf("Saved player %s.", name), nil
}
