package stage

import (
	"context"
	"log/slog"

	"shortreel/internal/project"
)

// Handler describes the contract the workflow needs from each render stage.
//
// Prepare verifies that the stage's inputs exist. Execute produces the stage's
// artifact, or returns the existing one untouched when it is already on disk.
type Handler interface {
	Name() string
	Prepare(context.Context, *project.State) error
	Execute(context.Context, *project.State) (Result, error)
	HealthCheck(context.Context) Health
}

// LoggerAware handlers accept a stage-scoped logger before they run.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}

// Result reports what a stage produced.
type Result struct {
	Output  string
	Skipped bool // artifact already existed; no encode work was done
	Detail  string
}

// Produced is a Result for freshly written output.
func Produced(output string) Result {
	return Result{Output: output}
}

// Existing is a Result for output that was already on disk.
func Existing(output string) Result {
	return Result{Output: output, Skipped: true, Detail: "artifact already exists"}
}
