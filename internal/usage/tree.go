package usage

import "fmt"

// InvalidTree wraps a command tree that failed to load or validate.
func InvalidTree(path string, cause error) *Error {
	return &Error{
		Kind:    ErrInvalidTree,
		Message: fmt.Sprintf("crun: cannot use command tree '%s': %v", path, cause),
		Cause:   cause,
	}
}

// NoSetup is returned when setup is requested for a tree that declares none.
func NoSetup(treeName string) *Error {
	return &Error{
		Kind:    ErrNoSetup,
		Message: fmt.Sprintf("crun: '%s' has no setup section", treeName),
	}
}

// InvalidManifest wraps a package manifest that could not be converted.
func InvalidManifest(path string, cause error) *Error {
	return &Error{
		Kind:    ErrInvalidManifest,
		Message: fmt.Sprintf("crun: cannot generate a tree from '%s': %v", path, cause),
		Cause:   cause,
	}
}

// UnsupportedShell is returned for an unknown --completions value.
func UnsupportedShell(shell string, supported []string) *Error {
	return &Error{
		Kind:    ErrUnsupportedShell,
		Message: fmt.Sprintf("crun: unsupported shell '%s' (supported: %v)", shell, supported),
	}
}
