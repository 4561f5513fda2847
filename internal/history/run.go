package history

import (
	"time"

	"github.com/google/uuid"
)

// Status is the final state of a recorded run.
type Status string

const (
	StatusSucceeded   Status = "succeeded"
	StatusFailed      Status = "failed"
	StatusSpawnFailed Status = "spawn_failed"
	StatusInterrupted Status = "interrupted"
	StatusAborted     Status = "aborted"
)

// Run is one invocation of a leaf command.
type Run struct {
	ID               uuid.UUID
	Tree             string
	Path             string
	CommandLine      string
	WorkingDirectory string
	StartedAt        time.Time
	Duration         time.Duration
	ExitCode         int
	Status           Status
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Tree  string
	Limit int
}

// Recorder is the write side used by the app.
type Recorder interface {
	Record(run Run) error
}

// NopRecorder drops every run.
type NopRecorder struct{}

func (NopRecorder) Record(Run) error { return nil }
