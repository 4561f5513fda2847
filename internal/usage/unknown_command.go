package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when a path matches nothing in the tree.
func UnknownCommand(path string, suggestions ...string) *Error {
	msg := fmt.Sprintf("crun: '%s' is not a command in this tree. See 'crun --help'.", path)
	if len(suggestions) == 1 {
		msg += fmt.Sprintf("\n\nThe most similar command is\n\t%s", suggestions[0])
	} else if len(suggestions) > 1 {
		msg += "\n\nThe most similar commands are\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}
