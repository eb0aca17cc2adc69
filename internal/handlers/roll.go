package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
)

const rollUsage = "Usage: roll <dice> [advantage|disadvantage] (e.g., 'roll 2d6', 'roll d20 advantage')"

func (t *Toolkit) handleRoll(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: rollUsage}, nil
	}

	notation := strings.ToLower(cmd.Args[0])

	mode := ""
	if len(cmd.Args) > 1 {
		switch strings.ToLower(cmd.Args[1]) {
		case "advantage", "adv", "a":
			mode = "advantage"
		case "disadvantage", "disadv", "d":
			mode = "disadvantage"
		default:
			return &Result{Message: fmt.Sprintf("Invalid modifier '%s'. "+
				"Use 'advantage', 'adv', 'a' or 'disadvantage', 'disadv', 'd'", cmd.Args[1])}, nil
		}
	}

	count, sides, bonus, err := dice.ParseNotation(notation)
	if err != nil {
		return &Result{Message: fmt.Sprintf("Invalid dice notation '%s'. Use format like '2d6' or 'd20'", notation)}, nil
	}
	if count > dice.MaxDice {
		return &Result{Message: fmt.Sprintf("Too many dice! Maximum is %d dice per roll.", dice.MaxDice)}, nil
	}

	var result *dice.RollResult
	switch mode {
	case "advantage":
		result, err = t.roller.RollWithAdvantage(count, sides, bonus)
	case "disadvantage":
		result, err = t.roller.RollWithDisadvantage(count, sides, bonus)
	default:
		result, err = t.roller.Roll(count, sides, bonus)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Message: formatRollMessage(notation, mode, result)}, nil
}

func formatRollMessage(notation, mode string, r *dice.RollResult) string {
	if mode != "" {
		if r.Count == 1 {
			return fmt.Sprintf("Rolled %s (%s): %d, %d => %d",
				notation, mode, r.Total, r.OtherTotal, r.Total)
		}
		return fmt.Sprintf("Rolled %s (%s): %s = %d, %d => %d",
			notation, mode, formatRolls(r.Rolls), r.Total, r.OtherTotal, r.Total)
	}

	if r.Count == 1 {
		return fmt.Sprintf("Rolled %s: %d", notation, r.Total)
	}
	return fmt.Sprintf("Rolled %s: %s = %d", notation, formatRolls(r.Rolls), r.Total)
}

// formatRolls renders a roll set like "[4, 5]"
func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, roll := range rolls {
		parts[i] = fmt.Sprintf("%d", roll)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
