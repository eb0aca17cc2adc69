package handlers

import (
	"context"
	"fmt"
	"strings"
)

const gameUsage = "Usage: game <create|list|load|delete|info|current> [name]"

func (t *Toolkit) handleGame(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: gameUsage}, nil
	}

	sub := strings.ToLower(cmd.Args[0])
	name := cmd.Arg(1)

	switch sub {
	case "create":
		if name == "" {
			return &Result{Message: "Usage: game create <name>"}, nil
		}
		if err := t.games.Create(name); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("Game '%s' created successfully", name)}, nil

	case "list":
		games := t.games.List()
		if len(games) == 0 {
			return &Result{Message: "No games found"}, nil
		}
		lines := []string{fmt.Sprintf("Games (%d):", len(games))}
		for _, g := range games {
			marker := "  "
			if g == t.games.Current() {
				marker = "* "
			}
			lines = append(lines, marker+g)
		}
		return &Result{Message: strings.Join(lines, "\n")}, nil

	case "load":
		if name == "" {
			return &Result{Message: "Usage: game load <name>"}, nil
		}
		if err := t.games.Load(name); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("Loaded game '%s'", name)}, nil

	case "delete":
		if name == "" {
			return &Result{Message: "Usage: game delete <name>"}, nil
		}
		if err := t.games.Delete(name); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("Game '%s' deleted", name)}, nil

	case "info":
		if name == "" {
			var err error
			name, err = t.currentGame()
			if err != nil {
				return nil, err
			}
		}
		meta, err := t.games.Info(name)
		if err != nil {
			return nil, err
		}
		return &Result{Message: strings.Join([]string{
			fmt.Sprintf("Game: %s", meta.Name),
			fmt.Sprintf("  Created: %s", meta.CreatedAt.Format("2006-01-02 15:04")),
			fmt.Sprintf("  Last modified: %s", meta.LastModified.Format("2006-01-02 15:04")),
			fmt.Sprintf("  Sessions: %d", meta.TotalSessions),
		}, "\n")}, nil

	case "current":
		if current := t.games.Current(); current != "" {
			return &Result{Message: fmt.Sprintf("Current game: %s", current)}, nil
		}
		return &Result{Message: "No game loaded"}, nil

	default:
		return &Result{Message: gameUsage}, nil
	}
}
