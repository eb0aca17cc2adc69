// Package handlers implements the REPL command layer: a registry that
// parses input lines into commands and the handlers for every toolkit
// command (dice, games, journeys, players, templates, journal).
package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is one parsed input line
type Command struct {
	Name string
	Args []string
	Raw  string
}

// Arg returns the argument at index i, or "" when absent
func (c *Command) Arg(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Result is the outcome of executing a command
type Result struct {
	Message string
	Exit    bool

	// Mode, when set, switches the REPL into an input-capturing mode
	// (template or ad-hoc player creation)
	Mode Mode
}

// Mode captures raw input lines until it reports done, at which point the
// REPL returns to normal command dispatch
type Mode interface {
	HandleInput(ctx context.Context, input string) string
	Done() bool
}

// HandlerFunc executes one command. Returned errors surface to the user
// as the error's message.
type HandlerFunc func(ctx context.Context, cmd *Command) (*Result, error)

// Registry parses input lines and dispatches them to named handlers
type Registry struct {
	commands map[string]HandlerFunc
}

// NewRegistry creates a registry with the built-in help and quit commands
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]HandlerFunc)}
	r.Register("help", r.handleHelp)
	r.Register("quit", handleQuit)
	r.Register("exit", handleQuit)
	return r
}

// Register binds a handler to a command name, case-insensitively
func (r *Registry) Register(name string, fn HandlerFunc) {
	r.commands[strings.ToLower(name)] = fn
}

// Names returns all registered command names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse splits an input line into a command. Quoted arguments are kept
// together; an unclosed quote falls back to whitespace splitting. Returns
// nil for blank input.
func (r *Registry) Parse(input string) *Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	tokens, err := splitQuoted(input)
	if err != nil {
		tokens = strings.Fields(input)
	}
	if len(tokens) == 0 {
		return nil
	}

	return &Command{
		Name: strings.ToLower(tokens[0]),
		Args: tokens[1:],
		Raw:  input,
	}
}

// Process parses and executes one input line
func (r *Registry) Process(ctx context.Context, input string) *Result {
	cmd := r.Parse(input)
	if cmd == nil {
		return &Result{}
	}

	fn, ok := r.commands[cmd.Name]
	if !ok {
		return &Result{Message: fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", cmd.Name)}
	}

	result, err := fn(ctx, cmd)
	if err != nil {
		return &Result{Message: err.Error()}
	}
	return result
}

func (r *Registry) handleHelp(ctx context.Context, cmd *Command) (*Result, error) {
	lines := []string{"Available commands:"}
	for _, name := range r.Names() {
		lines = append(lines, "  "+name)
	}
	return &Result{Message: strings.Join(lines, "\n")}, nil
}

func handleQuit(ctx context.Context, cmd *Command) (*Result, error) {
	return &Result{Message: "Goodbye!", Exit: true}, nil
}

// splitQuoted tokenizes on whitespace, treating single- or double-quoted
// spans as one token. It errs on an unclosed quote.
func splitQuoted(input string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	var quote rune
	inToken := false

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote in input")
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
