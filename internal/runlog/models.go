package runlog

import "time"

// Status tracks a run through its lifecycle.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// SourceType records how the input video was obtained.
type SourceType string

const (
	SourceFile SourceType = "file"
	SourceURL  SourceType = "url"
)

// Run is one dubbing run recorded in the ledger.
type Run struct {
	ID              string
	Source          string
	SourceType      SourceType
	SourceLanguage  string
	TargetLanguage  string
	Status          Status
	FailedStage     string
	ErrorClass      string
	ErrorMessage    string
	OutputPath      string
	DurationSeconds float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Finished reports whether the run reached a terminal status.
func (r *Run) Finished() bool {
	return r != nil && (r.Status == StatusCompleted || r.Status == StatusFailed)
}
