package usage

import "fmt"

// InvalidFlag is returned when a flag is not recognized.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("crun: invalid flag '%s'. See 'crun --help'.", flag),
	}
}

// InvalidFlagValue is returned when a flag carries an unusable value.
func InvalidFlagValue(flag, value, expected string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("crun: invalid value '%s' for %s (expected %s)", value, flag, expected),
	}
}
