// Package setup runs a tree's first-run wizard and persists the answers.
package setup

import (
	"errors"
	"fmt"

	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/userconfig"
)

// Deps contains the collaborators of the wizard.
type Deps struct {
	Prompter prompt.Prompter
	Load     func(configDirectory string) (userconfig.Config, error)
	Save     func(configDirectory string, cfg userconfig.Config) error
	Printf   func(format string, args ...any) (int, error)
}

// DefaultDeps returns terminal prompts and the on-disk user config.
func DefaultDeps() Deps {
	return Deps{
		Prompter: prompt.New(),
		Load:     userconfig.Load,
		Save:     userconfig.Save,
		Printf:   fmt.Printf,
	}
}

// Run asks every step of s and saves the answers. Previous answers, when a
// readable config exists, become the defaults; keys not named by a step are
// kept.
func Run(s *commandtree.Setup, deps Deps) (userconfig.Config, error) {
	if s == nil {
		return nil, errors.New("setup: tree has no setup section")
	}

	existing, err := deps.Load(s.ConfigDirectory)
	if err != nil {
		log.Debug("setup: starting from empty config: %v", err)
		existing = userconfig.Config{}
	}

	answers := make(userconfig.Config, len(existing)+len(s.Steps))
	for k, v := range existing {
		answers[k] = v
	}

	for _, step := range s.Steps {
		v, err := ask(deps.Prompter, step, existing[step.Name])
		if err != nil {
			return nil, err
		}
		answers[step.Name] = v
	}

	if err := deps.Save(s.ConfigDirectory, answers); err != nil {
		return nil, fmt.Errorf("save user config: %w", err)
	}

	path := userconfig.Path(s.ConfigDirectory)
	log.Info("setup: saved %d answers to %s", len(s.Steps), path)
	if deps.Printf != nil {
		_, _ = deps.Printf("Saved configuration to %s\n", path)
	}
	return answers, nil
}

func ask(p prompt.Prompter, step commandtree.SetupStep, previous any) (any, error) {
	message := step.Arg.Describe()
	if message == "" {
		message = step.Name
	}

	switch a := step.Arg.(type) {
	case commandtree.TextArg:
		def := ""
		if a.Default != nil {
			def = *a.Default
		}
		if s, ok := previous.(string); ok {
			def = s
		}
		return p.Text(message, def, a.Required)

	case commandtree.SelectArg:
		def := a.Default
		if s, ok := previous.(string); ok {
			def = s
		}
		return p.Select(message, prompt.Choices(a.Choices...), def)

	case commandtree.MultiSelectArg:
		defs := a.Default
		if list, ok := stringList(previous); ok {
			defs = list
		}
		picked, err := p.MultiSelect(message, prompt.Choices(a.Choices...), defs)
		if err != nil {
			return nil, err
		}
		if picked == nil {
			picked = []string{}
		}
		return picked, nil

	case commandtree.ConfirmArg:
		return p.Confirm(message, boolDefault(a.Default, previous))

	case commandtree.BooleanArg:
		return p.Confirm(message, boolDefault(a.Default, previous))

	default:
		return nil, fmt.Errorf("setup step %q: unsupported argument kind %T", step.Name, step.Arg)
	}
}

func boolDefault(def *bool, previous any) bool {
	if b, ok := previous.(bool); ok {
		return b
	}
	return def != nil && *def
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
