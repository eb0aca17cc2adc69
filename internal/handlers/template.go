package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
)

const templateUsage = "Usage: template <show|export|reload|validate> [args]"

func (t *Toolkit) handleTemplates(ctx context.Context, cmd *Command) (*Result, error) {
	names := t.loader.Names()
	if len(names) == 0 {
		return &Result{Message: "No templates found"}, nil
	}

	lines := []string{fmt.Sprintf("Templates (%d):", len(names))}
	for _, name := range names {
		info := t.loader.Info(name)
		lines = append(lines, fmt.Sprintf("  %s - %s (%d steps)", name, info.Description, info.Steps))
	}
	return &Result{Message: strings.Join(lines, "\n")}, nil
}

func (t *Toolkit) handleTemplate(ctx context.Context, cmd *Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return &Result{Message: templateUsage}, nil
	}

	switch strings.ToLower(cmd.Args[0]) {
	case "show":
		name := cmd.Arg(1)
		if name == "" {
			return &Result{Message: "Usage: template show <name>"}, nil
		}
		tmpl := t.loader.Get(name)
		if tmpl == nil {
			return &Result{Message: fmt.Sprintf("Template '%s' not found", name)}, nil
		}

		lines := []string{
			fmt.Sprintf("Template: %s (version %s)", tmpl.Name, tmpl.Version),
			fmt.Sprintf("Description: %s", tmpl.Description),
			fmt.Sprintf("Steps (%d):", tmpl.StepCount()),
		}
		for i, step := range tmpl.Steps {
			lines = append(lines, fmt.Sprintf("  %d. %s [%s] - %s", i+1, step.ID, step.Type, step.Prompt))
		}
		return &Result{Message: strings.Join(lines, "\n")}, nil

	case "export":
		name := cmd.Arg(1)
		if name == "" {
			return &Result{Message: "Usage: template export <name>"}, nil
		}
		tmpl := t.loader.Get(name)
		if tmpl == nil {
			return &Result{Message: fmt.Sprintf("Template '%s' not found", name)}, nil
		}

		data, err := tmpl.Marshal()
		if err != nil {
			return nil, err
		}
		return &Result{Message: string(data)}, nil

	case "reload":
		return &Result{Message: t.loader.Reload()}, nil

	case "validate":
		path := cmd.Arg(1)
		if path == "" {
			return &Result{Message: "Usage: template validate <file>"}, nil
		}
		if err := template.ValidateFile(path); err != nil {
			return &Result{Message: fmt.Sprintf("Template is invalid: %s", err.Error())}, nil
		}
		return &Result{Message: "Template is valid"}, nil

	default:
		return &Result{Message: templateUsage}, nil
	}
}
