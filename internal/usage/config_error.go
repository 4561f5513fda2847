package usage

import "fmt"

// ConfigError reports a missing or unreadable user config and points at setup.
func ConfigError(cause error) *Error {
	return &Error{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("crun: %v\nRun 'crun <tree> --setup' to create it.", cause),
		Cause:   cause,
	}
}
