package commandtree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes an args object while keeping key order.
func (l *ArgList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("args must be an object keyed by argument name")
	}

	var out ArgList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected args key %v", keyTok)
		}

		var raw rawArg
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("arg %q: %w", name, err)
		}
		arg, err := raw.toArg()
		if err != nil {
			return fmt.Errorf("arg %q: %w", name, err)
		}
		out = append(out, NamedArg{Name: name, Arg: arg})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON encodes the list as an object in declaration order.
func (l ArgList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fromArg(a.Arg))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes an args mapping while keeping key order.
func (l *ArgList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: args must be a mapping keyed by argument name", value.Line)
	}

	out := make(ArgList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value

		var raw rawArg
		if err := value.Content[i+1].Decode(&raw); err != nil {
			return fmt.Errorf("arg %q: %w", name, err)
		}
		arg, err := raw.toArg()
		if err != nil {
			return fmt.Errorf("line %d: arg %q: %w", value.Content[i].Line, name, err)
		}
		out = append(out, NamedArg{Name: name, Arg: arg})
	}

	*l = out
	return nil
}

// MarshalYAML encodes the list as a mapping in declaration order.
func (l ArgList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range l {
		var val yaml.Node
		if err := val.Encode(fromArg(a.Arg)); err != nil {
			return nil, fmt.Errorf("arg %q: %w", a.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Name},
			&val,
		)
	}
	return node, nil
}

func (s *SetupStep) UnmarshalJSON(data []byte) error {
	var raw rawArg
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.fromRaw(raw)
}

func (s *SetupStep) UnmarshalYAML(value *yaml.Node) error {
	var raw rawArg
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return s.fromRaw(raw)
}

func (s SetupStep) MarshalJSON() ([]byte, error) {
	raw := fromArg(s.Arg)
	raw.Name = s.Name
	return json.Marshal(raw)
}

func (s SetupStep) MarshalYAML() (any, error) {
	raw := fromArg(s.Arg)
	raw.Name = s.Name
	return raw, nil
}

func (s *SetupStep) fromRaw(raw rawArg) error {
	if raw.Name == "" {
		return fmt.Errorf("setup step is missing a name")
	}
	arg, err := raw.toArg()
	if err != nil {
		return fmt.Errorf("setup step %q: %w", raw.Name, err)
	}
	if _, ok := arg.(FileArg); ok {
		return fmt.Errorf("setup step %q: file arguments are not supported in setup", raw.Name)
	}
	s.Name = raw.Name
	s.Arg = arg
	return nil
}

type wireSetup struct {
	ConfigDirectory   string      `json:"configDirectory" yaml:"configDirectory"`
	ConfigFileDirname string      `json:"configFileDirname" yaml:"configFileDirname"`
	Steps             []SetupStep `json:"steps" yaml:"steps"`
}

func (w wireSetup) setup() Setup {
	dir := w.ConfigDirectory
	if dir == "" {
		dir = w.ConfigFileDirname
	}
	return Setup{ConfigDirectory: dir, Steps: w.Steps}
}

func (s *Setup) UnmarshalJSON(data []byte) error {
	var w wireSetup
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = w.setup()
	return nil
}

func (s *Setup) UnmarshalYAML(value *yaml.Node) error {
	var w wireSetup
	if err := value.Decode(&w); err != nil {
		return err
	}
	*s = w.setup()
	return nil
}

func fromArg(arg Arg) rawArg {
	switch a := arg.(type) {
	case TextArg:
		r := rawArg{Type: string(KindText), Description: a.Description, Required: a.Required}
		if a.Default != nil {
			r.Default = *a.Default
		}
		return r
	case SelectArg:
		r := rawArg{Type: string(KindSelect), Description: a.Description, Choices: a.Choices}
		if a.Default != "" {
			r.Default = a.Default
		}
		return r
	case MultiSelectArg:
		r := rawArg{Type: string(KindMultiSelect), Description: a.Description, Choices: a.Choices}
		if len(a.Default) > 0 {
			r.Default = a.Default
		}
		return r
	case ConfirmArg:
		r := rawArg{Type: string(KindConfirm), Description: a.Description}
		if a.Default != nil {
			r.Default = *a.Default
		}
		return r
	case BooleanArg:
		r := rawArg{Type: string(KindBoolean), Description: a.Description}
		if a.Default != nil {
			r.Default = *a.Default
		}
		return r
	case FileArg:
		return rawArg{
			Type:               string(KindFile),
			Description:        a.Description,
			Glob:               a.Glob,
			Ignore:             a.Ignore,
			IncludeDirectories: a.IncludeDirectories,
		}
	default:
		return rawArg{}
	}
}
