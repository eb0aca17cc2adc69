// Package macro implements the embedded micro-language accepted inside
// template creation answers: @roll, @roll-top, and @sum expressions that
// evaluate to a number.
package macro

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// ErrNoMacro signals that the input is not a macro at all. It is not a
// failure: the caller should treat the input as a literal answer.
var ErrNoMacro = errors.New("no macro detected")

// Patterns are anchored prefixes, tried most-specific first so
// "@roll-top" never falls into the plain "@roll" grammar.
var (
	rollTopPattern = regexp.MustCompile(`(?i)^@roll-top\s+(\d+)\s+(\d+)d(\d+)(?:\+(\d+))?(?:-(\d+))?`)
	rollPattern    = regexp.MustCompile(`(?i)^@roll\s+(\d+)?d(\d+)(?:\+(\d+))?(?:-(\d+))?`)
	sumPattern     = regexp.MustCompile(`(?i)^@sum\s+([\d\s+-]+)`)
)

// Request is a parsed macro awaiting execution
type Request interface {
	isRequest()
}

// RollTopRequest rolls NumDice, keeps the Keep highest, and adds Modifier
type RollTopRequest struct {
	Keep     int
	NumDice  int
	DiceSize int
	Modifier int
}

// RollRequest rolls and sums NumDice dice, then adds Modifier
type RollRequest struct {
	NumDice  int
	DiceSize int
	Modifier int
}

// SumRequest evaluates a plain integer +/- expression
type SumRequest struct {
	Expression string
}

func (RollTopRequest) isRequest() {}
func (RollRequest) isRequest()    {}
func (SumRequest) isRequest()     {}

// Result is the outcome of a successful macro execution
type Result struct {
	Value   int
	Message string
}

// Processor parses and executes macros. Dice entropy comes from the
// injected roller so tests can be deterministic.
type Processor struct {
	roller dice.Roller
}

// ProcessorConfig holds Processor dependencies
type ProcessorConfig struct {
	Roller dice.Roller
}

// NewProcessor creates a macro processor, defaulting to a random roller
func NewProcessor(cfg *ProcessorConfig) *Processor {
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &Processor{roller: roller}
}

// atoi converts a submatch, treating the empty optional groups as zero
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Parse matches the trimmed input against the macro grammars in priority
// order. ok is false when no grammar matches.
func (p *Processor) Parse(input string) (Request, bool) {
	input = strings.TrimSpace(input)

	if m := rollTopPattern.FindStringSubmatch(input); m != nil {
		return RollTopRequest{
			Keep:     atoi(m[1]),
			NumDice:  atoi(m[2]),
			DiceSize: atoi(m[3]),
			Modifier: atoi(m[4]) - atoi(m[5]),
		}, true
	}

	if m := rollPattern.FindStringSubmatch(input); m != nil {
		numDice := 1
		if m[1] != "" {
			numDice = atoi(m[1])
		}
		return RollRequest{
			NumDice:  numDice,
			DiceSize: atoi(m[2]),
			Modifier: atoi(m[3]) - atoi(m[4]),
		}, true
	}

	if m := sumPattern.FindStringSubmatch(input); m != nil {
		return SumRequest{Expression: strings.TrimSpace(m[1])}, true
	}

	return nil, false
}

// Execute runs a parsed macro. Failures come back as validation errors
// carrying the human-readable message; they are always recoverable.
func (p *Processor) Execute(req Request) (*Result, error) {
	switch r := req.(type) {
	case RollTopRequest:
		return p.executeRollTop(r)
	case RollRequest:
		return p.executeRoll(r)
	case SumRequest:
		return executeSum(r)
	default:
		return nil, dnderr.Internalf("unknown macro request type %T", req)
	}
}

// Process parses and executes in one call. ErrNoMacro means the input
// should be treated as a literal answer.
func (p *Processor) Process(input string) (*Result, error) {
	req, ok := p.Parse(input)
	if !ok {
		return nil, ErrNoMacro
	}
	return p.Execute(req)
}

func (p *Processor) executeRollTop(req RollTopRequest) (*Result, error) {
	if req.Keep <= 0 || req.Keep > req.NumDice {
		return nil, dnderr.Validationf("Must keep between 1 and %d dice", req.NumDice)
	}
	if req.NumDice > dice.MaxDice {
		return nil, dnderr.Validationf("Cannot roll more than %d dice", dice.MaxDice)
	}

	rolled, err := p.roller.Roll(req.NumDice, req.DiceSize, 0)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "roll failed")
	}

	kept := append([]int(nil), rolled.Rolls...)
	sort.Sort(sort.Reverse(sort.IntSlice(kept)))
	kept = kept[:req.Keep]

	keptSum := 0
	for _, roll := range kept {
		keptSum += roll
	}
	total := keptSum + req.Modifier

	message := fmt.Sprintf("Rolled %dd%d (keep top %d): %s → %s = %d%s",
		req.NumDice, req.DiceSize, req.Keep,
		formatRolls(rolled.Rolls), formatRolls(kept), keptSum, formatModifierAndTotal(req.Modifier, total))

	return &Result{Value: total, Message: message}, nil
}

func (p *Processor) executeRoll(req RollRequest) (*Result, error) {
	if req.NumDice > dice.MaxDice {
		return nil, dnderr.Validationf("Cannot roll more than %d dice", dice.MaxDice)
	}
	if req.DiceSize > 1000 {
		return nil, dnderr.Validation("Dice size must be <= 1000")
	}

	rolled, err := p.roller.Roll(req.NumDice, req.DiceSize, 0)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "roll failed")
	}

	total := rolled.RawTotal + req.Modifier

	// A single die reads better bare than as a one-element set
	var message string
	if req.NumDice == 1 {
		message = fmt.Sprintf("Rolled 1d%d: %d%s",
			req.DiceSize, rolled.Rolls[0], formatModifierAndTotal(req.Modifier, total))
	} else {
		message = fmt.Sprintf("Rolled %dd%d: %s = %d%s",
			req.NumDice, req.DiceSize, formatRolls(rolled.Rolls), rolled.RawTotal,
			formatModifierAndTotal(req.Modifier, total))
	}

	return &Result{Value: total, Message: message}, nil
}

func executeSum(req SumRequest) (*Result, error) {
	total, err := evalSum(req.Expression)
	if err != nil {
		return nil, dnderr.Validationf("Cannot calculate sum: %q", req.Expression)
	}

	return &Result{
		Value:   total,
		Message: fmt.Sprintf("Sum: %s = %d", req.Expression, total),
	}, nil
}

// evalSum evaluates an integer expression restricted to addition and
// subtraction. No names, no calls, nothing else.
func evalSum(expr string) (int, error) {
	tokens := strings.Fields(joinOperators(expr))
	if len(tokens) == 0 {
		return 0, errors.New("empty expression")
	}

	total := 0
	sign := 1
	expectNumber := true

	for _, token := range tokens {
		switch token {
		case "+":
			if !expectNumber {
				sign = 1
				expectNumber = true
			}
			// A sign while expecting a number is unary, keep the sign as-is
		case "-":
			if expectNumber {
				sign = -sign
			} else {
				sign = -1
				expectNumber = true
			}
		default:
			if !expectNumber {
				return 0, errors.New("expected operator")
			}
			n, err := strconv.Atoi(token)
			if err != nil {
				return 0, err
			}
			total += sign * n
			expectNumber = false
		}
	}

	if expectNumber {
		return 0, errors.New("trailing operator")
	}

	return total, nil
}

// joinOperators pads +/- with spaces so "10+5-2" tokenizes cleanly
func joinOperators(expr string) string {
	expr = strings.ReplaceAll(expr, "+", " + ")
	expr = strings.ReplaceAll(expr, "-", " - ")
	return expr
}

func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, roll := range rolls {
		parts[i] = strconv.Itoa(roll)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatModifierAndTotal renders " + n = total", " - n = total", or
// nothing when the modifier is zero
func formatModifierAndTotal(modifier, total int) string {
	if modifier > 0 {
		return fmt.Sprintf(" + %d = %d", modifier, total)
	}
	if modifier < 0 {
		return fmt.Sprintf(" - %d = %d", -modifier, total)
	}
	return ""
}
