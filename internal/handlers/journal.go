package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const journalUsage = "Usage: journal <add|show|clear> [args]"

func (t *Toolkit) handleJournal(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: journalUsage}, nil
	}

	store, err := t.currentJournal()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cmd.Args[0]) {
	case "add":
		if len(cmd.Args) < 3 {
			return &Result{Message: "Usage: journal add <event_type> <description>"}, nil
		}
		eventType := cmd.Args[1]
		description := strings.Join(cmd.Args[2:], " ")

		entry, err := store.Append(eventType, description, nil)
		if err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("Journal entry added (%s)", entry.EventType)}, nil

	case "show":
		n := 10
		if arg := cmd.Arg(1); arg != "" {
			parsed, err := strconv.Atoi(arg)
			if err != nil || parsed <= 0 {
				return &Result{Message: "Usage: journal show [count]"}, nil
			}
			n = parsed
		}

		entries := store.Last(n)
		if len(entries) == 0 {
			return &Result{Message: "Journal is empty"}, nil
		}

		lines := []string{fmt.Sprintf("Journal (%d of %d entries):", len(entries), store.Count())}
		for _, entry := range entries {
			lines = append(lines, fmt.Sprintf("  [%s] %s: %s",
				entry.Timestamp.Format("2006-01-02 15:04"), entry.EventType, entry.Description))
		}
		return &Result{Message: strings.Join(lines, "\n")}, nil

	case "clear":
		if err := store.Clear(); err != nil {
			return nil, err
		}
		return &Result{Message: "Journal cleared"}, nil

	default:
		return &Result{Message: journalUsage}, nil
	}
}
