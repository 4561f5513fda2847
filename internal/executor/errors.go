package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted is returned when an interrupt arrived while the child ran.
	ErrInterrupted = errors.New("interrupted")
	// ErrEmptyCommand is the cause of a SpawnError for a blank command line.
	ErrEmptyCommand = errors.New("empty command line")
)

// SpawnError reports a child process that could not be started.
type SpawnError struct {
	Program string
	Cause   error
}

func (e *SpawnError) Error() string {
	if e.Program == "" {
		return fmt.Sprintf("failed to start command: %v", e.Cause)
	}
	return fmt.Sprintf("failed to start %s: %v", e.Program, e.Cause)
}

func (e *SpawnError) Unwrap() error {
	return e.Cause
}

// NonZeroExitError reports a child that exited with a non-zero status.
type NonZeroExitError struct {
	Program string
	Code    int
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Program, e.Code)
}
