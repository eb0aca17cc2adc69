package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const journeyUsage = `Usage: journey "<name>" <total_steps> <difficulty>`

func (t *Toolkit) handleJourney(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) != 3 {
		return &Result{Message: journeyUsage}, nil
	}

	name := cmd.Args[0]
	totalSteps, err := strconv.Atoi(cmd.Args[1])
	if err != nil {
		return &Result{Message: "Total steps must be a positive number"}, nil
	}
	difficulty, err := strconv.Atoi(cmd.Args[2])
	if err != nil {
		return &Result{Message: "Difficulty must be a positive number or zero"}, nil
	}

	started, err := t.journeys.Start(name, totalSteps, difficulty)
	if err != nil {
		return nil, err
	}

	return &Result{Message: fmt.Sprintf("Started journey: '%s' (%d steps, %d difficulty)",
		started.Name, started.TotalSteps, started.Difficulty)}, nil
}

func (t *Toolkit) handleProgress(ctx context.Context, cmd *Command) (*Result, error) {
	steps := 1
	if len(cmd.Args) > 0 {
		parsed, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return &Result{Message: "Usage: progress [steps]"}, nil
		}
		steps = parsed
	}

	message, err := t.journeys.Advance(steps)
	if err != nil {
		return nil, err
	}

	return &Result{Message: message}, nil
}

func (t *Toolkit) handleStop(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		stopped, err := t.journeys.StopCurrent()
		if err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("Stopped journey: '%s' (was %d/%d)",
			stopped.Name, stopped.Progress, stopped.TotalSteps)}, nil
	}

	if strings.EqualFold(cmd.Args[0], "all") {
		stopped := t.journeys.StopAll()
		if len(stopped) == 0 {
			return &Result{Message: "No active journeys"}, nil
		}
		return &Result{Message: fmt.Sprintf("Stopped %d journeys", len(stopped))}, nil
	}

	name := cmd.Args[0]
	stopped := t.journeys.StopByName(name)
	if stopped == nil {
		return &Result{Message: fmt.Sprintf("No journey named '%s'", name)}, nil
	}
	return &Result{Message: fmt.Sprintf("Stopped journey: '%s' (was %d/%d)",
		stopped.Name, stopped.Progress, stopped.TotalSteps)}, nil
}

func (t *Toolkit) handleStatus(ctx context.Context, cmd *Command) (*Result, error) {
	var lines []string

	if game := t.games.Current(); game != "" {
		lines = append(lines, fmt.Sprintf("Current game: %s", game))
	}

	if !t.journeys.HasActive() {
		lines = append(lines, "No active journeys")
	} else {
		lines = append(lines, "Active Journeys:")
		for _, j := range t.journeys.All() {
			lines = append(lines, fmt.Sprintf("  %s (%d/%d)", j.Name, j.Progress, j.TotalSteps))
		}
	}

	return &Result{Message: strings.Join(lines, "\n")}, nil
}
