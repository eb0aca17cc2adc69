package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/creation"
	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/character"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters"
)

const playerUsage = "Usage: player <create|list|show|delete> [args]"

func (t *Toolkit) handlePlayer(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: playerUsage}, nil
	}

	switch strings.ToLower(cmd.Args[0]) {
	case "create":
		return t.startCreation(cmd.Arg(1))
	case "list":
		return t.handlePlayers(ctx, cmd)
	case "show":
		return t.showPlayer(ctx, cmd.Arg(1))
	case "delete":
		return t.deletePlayer(ctx, cmd.Arg(1))
	default:
		return &Result{Message: playerUsage}, nil
	}
}

// startCreation enters ad-hoc creation, or template creation when a
// template name is given
func (t *Toolkit) startCreation(templateName string) (*Result, error) {
	repo, err := t.currentRepo()
	if err != nil {
		return nil, err
	}

	if templateName == "" {
		wizard := creation.NewWizard(&creation.WizardConfig{
			Repository: repo,
			Roller:     t.roller,
		})
		return &Result{
			Message: "Entering player creation mode.\n" +
				"Enter a name for the new player, or type 'help' for commands.",
			Mode: &wizardMode{wizard: wizard},
		}, nil
	}

	tmpl := t.loader.Get(templateName)
	if tmpl == nil {
		return nil, dnderr.NotFoundf("Template '%s' not found", templateName)
	}

	session := creation.NewSession(&creation.SessionConfig{
		Template: tmpl,
		Roller:   t.roller,
	})
	return &Result{
		Message: session.WelcomeMessage(),
		Mode:    &sessionMode{session: session, repo: repo},
	}, nil
}

func (t *Toolkit) handlePlayers(ctx context.Context, cmd *Command) (*Result, error) {
	repo, err := t.currentRepo()
	if err != nil {
		return nil, err
	}

	chars, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return &Result{Message: "No players in this game"}, nil
	}

	lines := []string{fmt.Sprintf("Players (%d):", len(chars))}
	for _, char := range chars {
		lines = append(lines, "  "+char.String())
	}
	return &Result{Message: strings.Join(lines, "\n")}, nil
}

func (t *Toolkit) showPlayer(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return &Result{Message: "Usage: player show <name>"}, nil
	}

	repo, err := t.currentRepo()
	if err != nil {
		return nil, err
	}

	char, err := repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	lines := []string{char.String()}
	for _, ability := range character.Abilities {
		info, _ := character.Info(ability)
		lines = append(lines, fmt.Sprintf("  %s: %d", info.Display, char.Stats[ability]))
	}
	for field, value := range char.Extra {
		lines = append(lines, fmt.Sprintf("  %s: %v", field, value))
	}

	return &Result{Message: strings.Join(lines, "\n")}, nil
}

func (t *Toolkit) deletePlayer(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return &Result{Message: "Usage: player delete <name>"}, nil
	}

	repo, err := t.currentRepo()
	if err != nil {
		return nil, err
	}

	if err := repo.Delete(ctx, name); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Deleted player %s.", name)}, nil
}

// sessionMode adapts a template creation session to the REPL's Mode
// interface, adding the 'save' step the completion message promises
type sessionMode struct {
	session *creation.Session
	repo    characters.Repository
	done    bool
}

func (m *sessionMode) HandleInput(ctx context.Context, input string) string {
	if m.session.Complete() && strings.EqualFold(strings.TrimSpace(input), "save") {
		msg, err := m.session.SavePlayer(ctx, m.repo)
		if err != nil {
			return fmt.Sprintf("Error: %s", err.Error())
		}
		m.done = true
		return msg
	}

	resp := m.session.Handle(input)
	if !m.session.InProgress() && !m.session.Complete() {
		// Cancelled
		m.done = true
	}
	return resp
}

func (m *sessionMode) Done() bool {
	return m.done
}

// wizardMode adapts the ad-hoc creation wizard to the REPL's Mode interface
type wizardMode struct {
	wizard *creation.Wizard
	done   bool
}

func (m *wizardMode) HandleInput(ctx context.Context, input string) string {
	resp := m.wizard.Handle(ctx, input)
	if m.wizard.Exited() || strings.HasPrefix(resp, "Saved player") {
		m.done = true
	}
	return resp
}

func (m *wizardMode) Done() bool {
	return m.done
}
