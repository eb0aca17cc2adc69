package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/KirkDiggler/roleplay-toolkit/internal/dice/mock"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/games"
	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
)

const toolkitTemplate = `
name: Quick Hero
version: "1.0"
description: Minimal test template
steps:
  - id: name
    prompt: "What is your character's name?"
    type: text
    field: name
    validation:
      min_length: 2
`

func newTestToolkit(t *testing.T, roller *mockdice.ManualMockRoller) (*Toolkit, *Registry) {
	t.Helper()

	templatesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "quick.yaml"), []byte(toolkitTemplate), 0o644))

	gm, err := games.NewManager(&games.ManagerConfig{SavesDir: t.TempDir()})
	require.NoError(t, err)

	cfg := &ToolkitConfig{
		Games:     gm,
		Templates: template.NewLoader(&template.LoaderConfig{Dir: templatesDir}),
	}
	if roller != nil {
		cfg.Roller = roller
	}

	tk := NewToolkit(cfg)
	r := NewRegistry()
	tk.RegisterAll(r)
	return tk, r
}

func TestRoll(t *testing.T) {
	ctx := context.Background()
	roller := mockdice.NewManualMockRoller()
	_, r := newTestToolkit(t, roller)

	roller.SetRolls([]int{15})
	result := r.Process(ctx, "roll d20")
	assert.Equal(t, "Rolled d20: 15", result.Message)

	roller.SetRolls([]int{4, 5})
	result = r.Process(ctx, "roll 2d6")
	assert.Equal(t, "Rolled 2d6: [4, 5] = 9", result.Message)
}

func TestRoll_Advantage(t *testing.T) {
	ctx := context.Background()
	roller := mockdice.NewManualMockRoller()
	_, r := newTestToolkit(t, roller)

	// Two sets; the higher one wins
	roller.SetRolls([]int{8, 15})
	result := r.Process(ctx, "roll d20 advantage")
	assert.Equal(t, "Rolled d20 (advantage): 15, 8 => 15", result.Message)

	roller.SetRolls([]int{8, 15})
	result = r.Process(ctx, "roll d20 disadvantage")
	assert.Equal(t, "Rolled d20 (disadvantage): 8, 15 => 8", result.Message)
}

func TestRoll_Errors(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, "roll")
	assert.Equal(t, rollUsage, result.Message)

	result = r.Process(ctx, "roll banana")
	assert.Equal(t, "Invalid dice notation 'banana'. Use format like '2d6' or 'd20'", result.Message)

	result = r.Process(ctx, "roll 200d6")
	assert.Equal(t, "Too many dice! Maximum is 100 dice per roll.", result.Message)

	result = r.Process(ctx, "roll d20 sideways")
	assert.Contains(t, result.Message, "Invalid modifier 'sideways'")
}

func TestJourneyWorkflow(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, `journey "Epic Quest" 3 3`)
	assert.Equal(t, "Started journey: 'Epic Quest' (3 steps, 3 difficulty)", result.Message)

	result = r.Process(ctx, "status")
	assert.Contains(t, result.Message, "Active Journeys:")
	assert.Contains(t, result.Message, "Epic Quest (0/3)")

	result = r.Process(ctx, "progress 2")
	assert.Equal(t, "Progress on 'Epic Quest': 2/3", result.Message)

	result = r.Process(ctx, "progress")
	assert.Equal(t, "Journey 'Epic Quest' completed! (3/3)", result.Message)

	result = r.Process(ctx, "status")
	assert.NotContains(t, result.Message, "Active Journeys:")
}

func TestJourneyStacking(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	r.Process(ctx, `journey "Bottom Quest" 5 1`)
	r.Process(ctx, `journey "Top Quest" 2 2`)

	result := r.Process(ctx, "progress")
	assert.Contains(t, result.Message, "Top Quest")

	result = r.Process(ctx, "stop")
	assert.Equal(t, "Stopped journey: 'Top Quest' (was 1/2)", result.Message)

	result = r.Process(ctx, "progress")
	assert.Contains(t, result.Message, "Bottom Quest")
}

func TestJourneyErrors(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, "progress")
	assert.Equal(t, "No active journeys", result.Message)

	result = r.Process(ctx, "stop")
	assert.Equal(t, "No active journeys", result.Message)

	result = r.Process(ctx, `journey "Bad Quest" 0 1`)
	assert.Contains(t, result.Message, "positive number")

	result = r.Process(ctx, `journey "Bad Quest" 5 -1`)
	assert.Contains(t, result.Message, "positive number")
}

func TestGameCommands(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, "game create camp1")
	assert.Equal(t, "Game 'camp1' created successfully", result.Message)

	result = r.Process(ctx, "game create camp1")
	assert.Equal(t, "Game 'camp1' already exists", result.Message)

	r.Process(ctx, "game create camp2")

	result = r.Process(ctx, "game list")
	assert.Contains(t, result.Message, "Games (2):")
	assert.Contains(t, result.Message, "* camp2")
	assert.Contains(t, result.Message, "  camp1")

	result = r.Process(ctx, "game load camp1")
	assert.Equal(t, "Loaded game 'camp1'", result.Message)

	result = r.Process(ctx, "game current")
	assert.Equal(t, "Current game: camp1", result.Message)

	result = r.Process(ctx, "game info")
	assert.Contains(t, result.Message, "Game: camp1")

	result = r.Process(ctx, "game delete camp2")
	assert.Equal(t, "Game 'camp2' deleted", result.Message)

	result = r.Process(ctx, "game delete missing")
	assert.Equal(t, "Game 'missing' not found", result.Message)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	// Persistence commands need a game
	result := r.Process(ctx, "save")
	assert.Contains(t, result.Message, "No game loaded")

	r.Process(ctx, "game create camp1")

	result = r.Process(ctx, "saves")
	assert.Equal(t, "No saved games found", result.Message)

	r.Process(ctx, `journey "First Journey" 5 1`)
	r.Process(ctx, `journey "Second Journey" 3 2`)
	r.Process(ctx, "progress 2")

	result = r.Process(ctx, "save roundtrip_test")
	assert.Equal(t, "Game saved as 'roundtrip_test'", result.Message)

	// Mutate, then restore
	r.Process(ctx, "stop all")
	result = r.Process(ctx, "status")
	assert.Contains(t, result.Message, "No active journeys")

	result = r.Process(ctx, "load roundtrip_test")
	assert.Equal(t, "Game loaded from 'roundtrip_test' (2 journeys)", result.Message)

	result = r.Process(ctx, "status")
	assert.Contains(t, result.Message, "First Journey (0/5)")
	assert.Contains(t, result.Message, "Second Journey (2/3)")

	result = r.Process(ctx, "saves")
	assert.Contains(t, result.Message, "Available saves:")
	assert.Contains(t, result.Message, "roundtrip_test (2 journeys)")
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)
	r.Process(ctx, "game create camp1")

	result := r.Process(ctx, "load")
	assert.Equal(t, "Usage: load <save_name>", result.Message)

	result = r.Process(ctx, "load missing")
	assert.Equal(t, "Snapshot 'missing' not found", result.Message)
}

func TestTemplatesCommands(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, "templates")
	assert.Contains(t, result.Message, "Templates (1):")
	assert.Contains(t, result.Message, "quick - Minimal test template (1 steps)")

	result = r.Process(ctx, "template show quick")
	assert.Contains(t, result.Message, "Template: Quick Hero (version 1.0)")
	assert.Contains(t, result.Message, "1. name [text] - What is your character's name?")

	result = r.Process(ctx, "template show missing")
	assert.Equal(t, "Template 'missing' not found", result.Message)

	result = r.Process(ctx, "template export quick")
	assert.Contains(t, result.Message, "name: Quick Hero")
	assert.Contains(t, result.Message, "min_length: 2")

	result = r.Process(ctx, "template export missing")
	assert.Equal(t, "Template 'missing' not found", result.Message)

	result = r.Process(ctx, "template reload")
	assert.Equal(t, "Reloaded 1 templates", result.Message)
}

func TestPlayerCreation_Template(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)
	r.Process(ctx, "game create camp1")

	result := r.Process(ctx, "player create quick")
	require.NotNil(t, result.Mode)
	assert.Contains(t, result.Message, "Starting player creation using template 'Quick Hero'.")

	mode := result.Mode
	resp := mode.HandleInput(ctx, "Aragorn")
	assert.Contains(t, resp, "Player creation complete! 'Aragorn' is ready.")

	resp = mode.HandleInput(ctx, "save")
	assert.Equal(t, "Saved player Aragorn.", resp)
	assert.True(t, mode.Done())

	result = r.Process(ctx, "players")
	assert.Contains(t, result.Message, "Players (1):")
	assert.Contains(t, result.Message, "Aragorn (no race) (no class)")
}

func TestPlayerCreation_AdHoc(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)
	r.Process(ctx, "game create camp1")

	result := r.Process(ctx, "player create")
	require.NotNil(t, result.Mode)
	assert.Contains(t, result.Message, "Entering player creation mode.")

	mode := result.Mode
	assert.Equal(t, "Created player 'Gimli'", mode.HandleInput(ctx, "Gimli"))
	assert.Equal(t, "Set Gimli constitution to 17.", mode.HandleInput(ctx, "set con 17"))
	assert.Equal(t, "Saved player Gimli.", mode.HandleInput(ctx, "save"))
	assert.True(t, mode.Done())

	result = r.Process(ctx, "player show Gimli")
	assert.Contains(t, result.Message, "Gimli (no race) (no class)")
	assert.Contains(t, result.Message, "  Constitution: 17")

	result = r.Process(ctx, "player delete Gimli")
	assert.Equal(t, "Deleted player Gimli.", result.Message)

	result = r.Process(ctx, "players")
	assert.Equal(t, "No players in this game", result.Message)
}

func TestPlayerCreation_RequiresGame(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)

	result := r.Process(ctx, "player create")
	assert.Contains(t, result.Message, "No game loaded")
	assert.Nil(t, result.Mode)
}

func TestJournalCommands(t *testing.T) {
	ctx := context.Background()
	_, r := newTestToolkit(t, nil)
	r.Process(ctx, "game create camp1")

	result := r.Process(ctx, "journal show")
	assert.Equal(t, "Journal is empty", result.Message)

	result = r.Process(ctx, "journal add combat Fought a goblin in the caves")
	assert.Equal(t, "Journal entry added (combat)", result.Message)

	r.Process(ctx, "journal add quest Accepted the contract")

	result = r.Process(ctx, "journal show")
	assert.Contains(t, result.Message, "Journal (2 of 2 entries):")
	assert.Contains(t, result.Message, "combat: Fought a goblin in the caves")
	assert.Contains(t, result.Message, "quest: Accepted the contract")

	result = r.Process(ctx, "journal show 1")
	assert.Contains(t, result.Message, "Journal (1 of 2 entries):")
	assert.NotContains(t, result.Message, "combat:")

	result = r.Process(ctx, "journal clear")
	assert.Equal(t, "Journal cleared", result.Message)

	result = r.Process(ctx, "journal show")
	assert.Equal(t, "Journal is empty", result.Message)
}
