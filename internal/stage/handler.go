package stage

import (
	"context"
	"log/slog"
)

// Handler describes the contract the pipeline runner needs from each stage.
type Handler interface {
	Prepare(context.Context, *Job) error
	Execute(context.Context, *Job) error
	HealthCheck(context.Context) Health
}

// LoggerAware lets the runner hand a stage-scoped logger to handlers that
// want one.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}
