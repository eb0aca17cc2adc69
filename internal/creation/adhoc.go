package creation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters"
	"github.com/KirkDiggler/roleplay-toolkit/internal/uuid"
)

// wizardCommands are inputs never treated as a player name
var wizardCommands = []string{"name", "set", "roll", "status", "save", "help", "exit"}

// Wizard is the freeform, command-driven alternative to template creation:
// name the character, roll or set scores, save.
type Wizard struct {
	repo         characters.Repository
	roller       dice.Roller
	gen          uuid.Generator
	char         *character.Character
	rolledScores []int
	awaitingName bool
	exited       bool
}

// WizardConfig holds Wizard dependencies
type WizardConfig struct {
	Repository characters.Repository

	// Roller defaults to a random roller when nil
	Roller dice.Roller

	// UUIDGenerator defaults to random UUIDs when nil
	UUIDGenerator uuid.Generator
}

// NewWizard starts an ad-hoc creation run waiting for a player name
func NewWizard(cfg *WizardConfig) *Wizard {
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return &Wizard{
		repo:         cfg.Repository,
		roller:       roller,
		gen:          gen,
		awaitingName: true,
	}
}

// Exited reports whether the user left the wizard
func (w *Wizard) Exited() bool {
	return w.exited
}

// Handle processes one line of user input and returns the response to show
func (w *Wizard) Handle(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "Enter a command or type 'help' for available commands"
	}

	// The first non-command input is taken as the player name
	if w.awaitingName && !w.looksLikeCommand(input) {
		return w.setName(ctx, input)
	}

	cmd, args, _ := strings.Cut(input, " ")
	cmd = strings.ToLower(cmd)
	args = strings.TrimSpace(args)

	switch cmd {
	case "name":
		if args == "" {
			return "Usage: name <player_name>"
		}
		return w.setName(ctx, args)
	case "set":
		return w.setAbility(args)
	case "roll":
		return w.rollAbilities()
	case "status":
		return w.status()
	case "save":
		return w.save(ctx)
	case "help":
		return w.help()
	case "exit":
		w.char = nil
		w.exited = true
		return "Exited player creation mode without saving"
	default:
		return fmt.Sprintf("Unknown command: '%s'. Type 'help' for available commands", cmd)
	}
}

func (w *Wizard) looksLikeCommand(input string) bool {
	lower := strings.ToLower(input)
	for _, cmd := range wizardCommands {
		if strings.HasPrefix(lower, cmd) {
			return true
		}
	}
	return false
}

func (w *Wizard) setName(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Player name cannot be empty"
	}

	exists, err := w.repo.Exists(ctx, name)
	if err != nil {
		return fmt.Sprintf("Error: %s", err.Error())
	}
	if exists {
		return fmt.Sprintf("Player '%s' already exists in this game", name)
	}

	w.char = character.New(name)
	w.awaitingName = false
	return fmt.Sprintf("Created player '%s'", name)
}

func (w *Wizard) setAbility(args string) string {
	ability, valueStr, ok := strings.Cut(args, " ")
	if !ok {
		return "Usage: set <ability> <value>"
	}

	if w.char == nil {
		return "Cannot set ability: no active player"
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return fmt.Sprintf("Invalid value: '%s' is not a number", strings.TrimSpace(valueStr))
	}

	if err := w.char.SetAbility(ability, value); err != nil {
		return err.Error()
	}

	resolved, _ := character.ResolveAbility(ability)
	return fmt.Sprintf("Set %s %s to %d.", w.char.Name, resolved, value)
}

// rollAbilities rolls six scores (4d6 drop lowest) without assigning them
func (w *Wizard) rollAbilities() string {
	if w.char == nil {
		return "Cannot roll abilities: no active player"
	}

	scores := make([]int, 0, len(character.Abilities))
	for range character.Abilities {
		result, err := w.roller.Roll(4, 6, 0)
		if err != nil {
			return fmt.Sprintf("Error: %s", err.Error())
		}

		rolls := append([]int(nil), result.Rolls...)
		sort.Ints(rolls)
		score := 0
		for _, roll := range rolls[1:] {
			score += roll
		}
		scores = append(scores, score)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	w.rolledScores = scores

	parts := make([]string, len(scores))
	for i, score := range scores {
		parts[i] = strconv.Itoa(score)
	}

	return fmt.Sprintf("Rolled abilities: %s\n(Use 'set <ability> <value>' to assign these scores)",
		strings.Join(parts, ", "))
}

func (w *Wizard) status() string {
	if w.char == nil {
		return "No active player in creation mode"
	}

	lines := []string{fmt.Sprintf("Player: %s", w.char.Name)}
	for _, ability := range character.Abilities {
		info, _ := character.Info(ability)
		lines = append(lines, fmt.Sprintf("  %s: %d", info.Display, w.char.Stats[ability]))
	}

	if w.char.Race != "" {
		lines = append(lines, fmt.Sprintf("Race: %s", w.char.Race))
	}
	if w.char.Class != "" {
		lines = append(lines, fmt.Sprintf("Class: %s", w.char.Class))
	}

	return strings.Join(lines, "\n")
}

func (w *Wizard) save(ctx context.Context) string {
	if w.char == nil {
		return "Cannot save: no active player"
	}

	if w.char.ID == "" {
		w.char.ID = w.gen.New()
	}

	if err := w.repo.Save(ctx, w.char); err != nil {
		return fmt.Sprintf("Failed to save player: %s", err.Error())
	}

	name := w.char.Name
	w.char = nil
	w.awaitingName = true
	return fmt.Sprintf("Saved player %s.", name)
}

func (w *Wizard) help() string {
	return strings.Join([]string{
		"Player Creation Commands:",
		"  name <name>        - Set player name",
		"  set <ability> <#>  - Set ability score",
		"                       Abilities: str, dex, con, int, wis, cha",
		"  roll               - Roll random abilities (4d6 drop lowest)",
		"  status             - Show current player status",
		"  save               - Save player to game",
		"  help               - Show this help message",
		"  exit               - Exit player creation without saving",
	}, "\n")
}
