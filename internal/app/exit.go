package app

import (
	"context"
	"errors"

	"github.com/footprint-tools/crun/internal/executor"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/usage"
)

// Exit codes that do not come from a child process.
const (
	ExitSpawnFailed = 127
	ExitInterrupted = 130
)

// ExitCode maps an error returned by Run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var usageErr *usage.Error
	if errors.As(err, &usageErr) {
		return usageErr.GetExitCode()
	}

	var exitErr *executor.NonZeroExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var spawnErr *executor.SpawnError
	if errors.As(err, &spawnErr) {
		return ExitSpawnFailed
	}

	if errors.Is(err, executor.ErrInterrupted) ||
		errors.Is(err, prompt.ErrCancelled) ||
		errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	return 1
}

// ShouldReport reports whether err is printed on stderr. Child exit codes
// and interrupts are passed through silently.
func ShouldReport(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *executor.NonZeroExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return ExitCode(err) != ExitInterrupted
}
