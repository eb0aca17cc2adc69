package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/domain/journey"
)

func (t *Toolkit) handleSave(ctx context.Context, cmd *Command) (*Result, error) {
	name := "quicksave"
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
	}

	store, err := t.currentStateStore()
	if err != nil {
		return nil, err
	}

	if _, err := store.Save(name, t.journeys.Snapshot()); err != nil {
		return nil, err
	}

	return &Result{Message: fmt.Sprintf("Game saved as '%s'", name)}, nil
}

func (t *Toolkit) handleLoad(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: "Usage: load <save_name>"}, nil
	}
	name := cmd.Args[0]

	store, err := t.currentStateStore()
	if err != nil {
		return nil, err
	}

	snap, err := store.Load(name)
	if err != nil {
		return nil, err
	}

	t.journeys = journey.Restore(snap)

	return &Result{Message: fmt.Sprintf("Game loaded from '%s' (%s)",
		name, journeyCount(t.journeys.Count()))}, nil
}

func (t *Toolkit) handleSaves(ctx context.Context, cmd *Command) (*Result, error) {
	store, err := t.currentStateStore()
	if err != nil {
		return nil, err
	}

	names, err := store.List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return &Result{Message: "No saved games found"}, nil
	}

	lines := []string{"Available saves:"}
	for _, name := range names {
		snap, err := store.Load(name)
		if err != nil {
			lines = append(lines, fmt.Sprintf("  %s (unreadable)", name))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s (%s)", name, journeyCount(len(snap.Journeys))))
	}

	return &Result{Message: strings.Join(lines, "\n")}, nil
}

func journeyCount(n int) string {
	switch n {
	case 0:
		return "no active journeys"
	case 1:
		return "1 journey"
	default:
		return fmt.Sprintf("%d journeys", n)
	}
}
