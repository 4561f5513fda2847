package commandtree

// Config is a parsed command tree file.
type Config struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Commands    []*Node `json:"commands" yaml:"commands"`
	Setup       *Setup  `json:"setup,omitempty" yaml:"setup,omitempty"`
}

// Node is either a group (Commands set) or a leaf (Command set), never both.
type Node struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Dirname     string        `json:"dirname,omitempty" yaml:"dirname,omitempty"`
	Children    []*Node       `json:"commands,omitempty" yaml:"commands,omitempty"`
	Command     string        `json:"command,omitempty" yaml:"command,omitempty"`
	Args        ArgList       `json:"args,omitempty" yaml:"args,omitempty"`
	OnReady     *ReadyTrigger `json:"onReady,omitempty" yaml:"onReady,omitempty"`
	Interactive bool          `json:"interactive,omitempty" yaml:"interactive,omitempty"`
}

// IsGroup reports whether the node holds children.
func (n *Node) IsGroup() bool {
	return n != nil && n.Children != nil
}

// IsLeaf reports whether the node carries a runnable command template.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Children == nil && n.Command != ""
}

// ReadyTrigger watches child output for Pattern and answers with StdinInput.
// A Pattern written as /expr/flags is a regular expression; anything else is
// matched as a substring.
type ReadyTrigger struct {
	Pattern    string `json:"pattern" yaml:"pattern"`
	StdinInput string `json:"stdinInput" yaml:"stdinInput"`
}

// Setup describes the first-run wizard that produces the user config file.
type Setup struct {
	ConfigDirectory string      `json:"configDirectory" yaml:"configDirectory"`
	Steps           []SetupStep `json:"steps" yaml:"steps"`
}

// SetupStep is one wizard question; Name is the persisted key.
type SetupStep struct {
	Name string
	Arg  Arg
}
