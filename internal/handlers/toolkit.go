package handlers

import (
	"path/filepath"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/journey"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/games"
	journalrepo "github.com/KirkDiggler/roleplay-toolkit/internal/repositories/journal"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/state"
	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
)

// RepoFactory returns the character repository for a game. The default
// stores YAML files under the game's players directory; main swaps in a
// Redis-backed one when configured.
type RepoFactory func(game string) (characters.Repository, error)

// Toolkit owns the shared state behind every REPL command
type Toolkit struct {
	games    *games.Manager
	journeys *journey.Manager
	loader   *template.Loader
	roller   dice.Roller
	repoFor  RepoFactory
}

// ToolkitConfig holds Toolkit dependencies
type ToolkitConfig struct {
	Games     *games.Manager
	Templates *template.Loader

	// Roller defaults to a random roller when nil
	Roller dice.Roller

	// CharacterRepo defaults to per-game YAML files when nil
	CharacterRepo RepoFactory
}

// NewToolkit wires the command layer over its stores
func NewToolkit(cfg *ToolkitConfig) *Toolkit {
	t := &Toolkit{
		games:    cfg.Games,
		journeys: journey.NewManager(),
		loader:   cfg.Templates,
		roller:   cfg.Roller,
		repoFor:  cfg.CharacterRepo,
	}

	if t.roller == nil {
		t.roller = dice.NewRandomRoller()
	}
	if t.repoFor == nil {
		t.repoFor = t.fileRepoFor
	}

	return t
}

// RegisterAll binds every toolkit command onto a registry
func (t *Toolkit) RegisterAll(r *Registry) {
	r.Register("roll", t.handleRoll)
	r.Register("status", t.handleStatus)
	r.Register("journey", t.handleJourney)
	r.Register("progress", t.handleProgress)
	r.Register("stop", t.handleStop)
	r.Register("save", t.handleSave)
	r.Register("load", t.handleLoad)
	r.Register("saves", t.handleSaves)
	r.Register("game", t.handleGame)
	r.Register("player", t.handlePlayer)
	r.Register("players", t.handlePlayers)
	r.Register("templates", t.handleTemplates)
	r.Register("template", t.handleTemplate)
	r.Register("journal", t.handleJournal)
}

func (t *Toolkit) fileRepoFor(game string) (characters.Repository, error) {
	path, err := t.games.Path(game)
	if err != nil {
		return nil, err
	}
	return characters.NewFile(&characters.FileConfig{Dir: filepath.Join(path, "players")})
}

// currentGame returns the loaded game's name, or a user-facing error
func (t *Toolkit) currentGame() (string, error) {
	name := t.games.Current()
	if name == "" {
		return "", dnderr.NotFound("No game loaded. Use 'game create <name>' or 'game load <name>' first.")
	}
	return name, nil
}

func (t *Toolkit) currentRepo() (characters.Repository, error) {
	name, err := t.currentGame()
	if err != nil {
		return nil, err
	}
	return t.repoFor(name)
}

func (t *Toolkit) currentStateStore() (*state.Store, error) {
	name, err := t.currentGame()
	if err != nil {
		return nil, err
	}
	path, err := t.games.Path(name)
	if err != nil {
		return nil, err
	}
	return state.NewStore(&state.StoreConfig{Dir: path}), nil
}

func (t *Toolkit) currentJournal() (*journalrepo.Store, error) {
	name, err := t.currentGame()
	if err != nil {
		return nil, err
	}
	path, err := t.games.Path(name)
	if err != nil {
		return nil, err
	}
	return journalrepo.NewStore(&journalrepo.StoreConfig{
		Path: filepath.Join(path, "journal.yaml"),
	})
}
