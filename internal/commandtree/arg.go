package commandtree

import (
	"fmt"
	"strings"
)

// Arg is the closed set of argument kinds a leaf can declare.
type Arg interface {
	Kind() ArgKind
	Describe() string
	isArg()
}

// ArgKind names an argument kind as written in the tree file.
type ArgKind string

const (
	KindText        ArgKind = "input"
	KindSelect      ArgKind = "select"
	KindMultiSelect ArgKind = "checkbox"
	KindConfirm     ArgKind = "confirm"
	KindBoolean     ArgKind = "boolean"
	KindFile        ArgKind = "regexp"
)

var kindAliases = map[string]ArgKind{
	"input":       KindText,
	"text":        KindText,
	"select":      KindSelect,
	"checkbox":    KindMultiSelect,
	"multiselect": KindMultiSelect,
	"confirm":     KindConfirm,
	"boolean":     KindBoolean,
	"bool":        KindBoolean,
	"regexp":      KindFile,
	"file":        KindFile,
}

// ParseKind maps a type name (or alias) to its ArgKind.
func ParseKind(s string) (ArgKind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// TextArg prompts for free text.
type TextArg struct {
	Description string
	Default     *string
	Required    bool
}

// SelectArg prompts for exactly one of Choices.
type SelectArg struct {
	Description string
	Choices     []string
	Default     string
}

// MultiSelectArg prompts for any subset of Choices.
type MultiSelectArg struct {
	Description string
	Choices     []string
	Default     []string
}

// ConfirmArg gates the command: a negative answer aborts the run.
type ConfirmArg struct {
	Description string
	Default     *bool
}

// BooleanArg asks yes/no and contributes "true" or "false".
type BooleanArg struct {
	Description string
	Default     *bool
}

// FileArg picks one filesystem entry below the working directory.
type FileArg struct {
	Description        string
	Glob               string
	Ignore             []string
	IncludeDirectories bool
}

func (TextArg) Kind() ArgKind        { return KindText }
func (SelectArg) Kind() ArgKind      { return KindSelect }
func (MultiSelectArg) Kind() ArgKind { return KindMultiSelect }
func (ConfirmArg) Kind() ArgKind     { return KindConfirm }
func (BooleanArg) Kind() ArgKind     { return KindBoolean }
func (FileArg) Kind() ArgKind        { return KindFile }

func (a TextArg) Describe() string        { return a.Description }
func (a SelectArg) Describe() string      { return a.Description }
func (a MultiSelectArg) Describe() string { return a.Description }
func (a ConfirmArg) Describe() string     { return a.Description }
func (a BooleanArg) Describe() string     { return a.Description }
func (a FileArg) Describe() string        { return a.Description }

func (TextArg) isArg()        {}
func (SelectArg) isArg()      {}
func (MultiSelectArg) isArg() {}
func (ConfirmArg) isArg()     {}
func (BooleanArg) isArg()     {}
func (FileArg) isArg()        {}

// NamedArg pairs an argument with the placeholder name it fills.
type NamedArg struct {
	Name string
	Arg  Arg
}

// ArgList keeps arguments in declaration order.
type ArgList []NamedArg

// Names returns the argument names in order.
func (l ArgList) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// rawArg is the wire shape shared by args and setup steps.
type rawArg struct {
	Name               string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type               string   `json:"type" yaml:"type"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required           bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Default            any      `json:"default,omitempty" yaml:"default,omitempty"`
	Choices            []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Glob               string   `json:"glob,omitempty" yaml:"glob,omitempty"`
	Ignore             []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	IncludeDirectories bool     `json:"includeDirectories,omitempty" yaml:"includeDirectories,omitempty"`
}

func (r rawArg) toArg() (Arg, error) {
	kind, ok := ParseKind(r.Type)
	if !ok {
		return nil, fmt.Errorf("unknown argument type %q", r.Type)
	}

	switch kind {
	case KindText:
		a := TextArg{Description: r.Description, Required: r.Required}
		if r.Default != nil {
			s, err := defaultString(r.Default)
			if err != nil {
				return nil, err
			}
			a.Default = &s
		}
		return a, nil
	case KindSelect:
		a := SelectArg{Description: r.Description, Choices: r.Choices}
		if r.Default != nil {
			s, err := defaultString(r.Default)
			if err != nil {
				return nil, err
			}
			a.Default = s
		}
		return a, nil
	case KindMultiSelect:
		a := MultiSelectArg{Description: r.Description, Choices: r.Choices}
		if r.Default != nil {
			list, err := defaultStrings(r.Default)
			if err != nil {
				return nil, err
			}
			a.Default = list
		}
		return a, nil
	case KindConfirm:
		b, err := defaultBool(r.Default)
		if err != nil {
			return nil, err
		}
		return ConfirmArg{Description: r.Description, Default: b}, nil
	case KindBoolean:
		b, err := defaultBool(r.Default)
		if err != nil {
			return nil, err
		}
		return BooleanArg{Description: r.Description, Default: b}, nil
	default:
		return FileArg{
			Description:        r.Description,
			Glob:               r.Glob,
			Ignore:             r.Ignore,
			IncludeDirectories: r.IncludeDirectories,
		}, nil
	}
}

func defaultString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool, int, int64, float64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("default must be a string, got %T", v)
	}
}

func defaultStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := defaultString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{t}, nil
	default:
		return nil, fmt.Errorf("default must be a list of strings, got %T", v)
	}
}

func defaultBool(v any) (*bool, error) {
	if v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("default must be a boolean, got %T", v)
	}
	return &b, nil
}
