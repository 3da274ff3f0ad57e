package history

import "time"

// Status is the outcome of one stage run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusReview    Status = "review"
)

// Run is one recorded stage execution.
type Run struct {
	ID        int64
	RunID     string
	Project   string
	Stage     string
	Status    Status
	Output    string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// ListOptions filters List results.
type ListOptions struct {
	Project string
	RunID   string
	Limit   int
}
