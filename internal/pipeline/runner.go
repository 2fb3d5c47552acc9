package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vodub/internal/config"
	"vodub/internal/logging"
	"vodub/internal/notifications"
	"vodub/internal/runlog"
	"vodub/internal/services"
	"vodub/internal/stage"
)

// Stage pairs a handler with the name used in logs and the run ledger.
type Stage struct {
	Name    string
	Handler stage.Handler
}

// Runner drives a job through the stage sequence. Stages run in order and
// the first failure stops the run; later stages never execute.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *runlog.Store
	notifier notifications.Service
	stages   []Stage
}

// NewRunner assembles a runner. The store and notifier may be nil; ledger
// writes and notifications are then skipped.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *runlog.Store, notifier notifications.Service, stages []Stage) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		notifier: notifier,
		stages:   stages,
	}
}

// Run executes the full pipeline for one job. It creates the workspace,
// records the run in the ledger, and tears the workspace down on every exit
// path unless the job asked to keep it.
func (r *Runner) Run(ctx context.Context, job *stage.Job) error {
	if job == nil {
		return services.Wrap(services.ErrInput, "pipeline", "run", "no job provided", nil)
	}

	start := time.Now()
	ctx = services.WithRunID(ctx, job.RunID)
	runLogger := logging.WithContext(ctx, r.logger)

	workspace, wsErr := NewWorkspace(r.cfg, job.RunID, job.KeepWorkDir)
	if wsErr != nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "workspace", "could not create workspace", wsErr)
	}
	job.WorkDir = workspace.Dir
	defer func() {
		if workspace.Keep() {
			runLogger.Info("keeping work directory", logging.String("dir", workspace.Dir))
		}
		if closeErr := workspace.Close(); closeErr != nil {
			runLogger.Warn("workspace cleanup failed", logging.Error(closeErr))
		}
	}()

	r.beginLedger(ctx, job, runLogger)
	r.notifyStarted(ctx, job, runLogger)

	runLogger.Info(
		"run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("source", job.Source()),
		logging.String("target_language", job.TargetLanguage),
	)

	for _, st := range r.stages {
		if err := r.runStage(ctx, st, job); err != nil {
			r.finishFailed(ctx, job, st.Name, err, time.Since(start), runLogger)
			return err
		}
	}

	duration := time.Since(start)
	r.finishCompleted(ctx, job, duration, runLogger)
	runLogger.Info(
		"run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", job.FinalFile),
		logging.Duration("duration", duration.Round(time.Second)),
	)
	return nil
}

// HealthCheck reports the readiness of every configured stage.
func (r *Runner) HealthCheck(ctx context.Context) []stage.Health {
	results := make([]stage.Health, 0, len(r.stages))
	for _, st := range r.stages {
		results = append(results, st.Handler.HealthCheck(ctx))
	}
	return results
}

func (r *Runner) runStage(ctx context.Context, st Stage, job *stage.Job) error {
	if st.Handler == nil {
		return services.Wrap(services.ErrConfiguration, st.Name, "run", "stage handler unavailable", nil)
	}

	stageCtx := logging.WithStage(ctx, st.Name)
	stageLogger := logging.WithContext(stageCtx, r.logger)
	if aware, ok := st.Handler.(stage.LoggerAware); ok {
		aware.SetLogger(stageLogger)
	}

	stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
	stageStart := time.Now()

	if err := st.Handler.Prepare(stageCtx, job); err != nil {
		return logStageFailure(stageLogger, err)
	}
	if err := st.Handler.Execute(stageCtx, job); err != nil {
		return logStageFailure(stageLogger, err)
	}

	stageLogger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(stageStart).Round(time.Millisecond)),
	)
	return nil
}

func logStageFailure(logger *slog.Logger, err error) error {
	logger.Error(
		"stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("error_class", services.ClassLabel(err)),
		logging.Error(err),
	)
	return err
}

func (r *Runner) beginLedger(ctx context.Context, job *stage.Job, logger *slog.Logger) {
	if r.store == nil {
		return
	}
	sourceType := runlog.SourceFile
	if job.Remote() {
		sourceType = runlog.SourceURL
	}
	record := &runlog.Run{
		ID:             job.RunID,
		Source:         job.Source(),
		SourceType:     sourceType,
		SourceLanguage: job.SourceLanguage,
		TargetLanguage: job.TargetLanguage,
	}
	if err := r.store.Begin(ctx, record); err != nil {
		logger.Warn("could not record run start", logging.Error(err))
	}
}

func (r *Runner) finishCompleted(ctx context.Context, job *stage.Job, duration time.Duration, logger *slog.Logger) {
	if r.store != nil {
		if err := r.store.MarkCompleted(ctx, job.RunID, job.FinalFile, duration); err != nil {
			logger.Warn("could not record run completion", logging.Error(err))
		}
	}
	if r.notifier != nil {
		if err := r.notifier.NotifyRunCompleted(ctx, job.Source(), job.FinalFile, duration); err != nil {
			logger.Debug("completion notification failed", logging.Error(err))
		}
	}
}

func (r *Runner) finishFailed(ctx context.Context, job *stage.Job, stageName string, stageErr error, duration time.Duration, logger *slog.Logger) {
	if r.store != nil {
		message := ""
		if stageErr != nil {
			message = stageErr.Error()
		}
		if err := r.store.MarkFailed(ctx, job.RunID, stageName, services.ClassLabel(stageErr), message, duration); err != nil {
			logger.Warn("could not record run failure", logging.Error(err))
		}
	}
	if r.notifier != nil && stageErr != nil {
		label := fmt.Errorf("%s: %w", stageName, stageErr)
		if err := r.notifier.NotifyRunFailed(ctx, job.Source(), label); err != nil {
			logger.Debug("failure notification failed", logging.Error(err))
		}
	}
}

func (r *Runner) notifyStarted(ctx context.Context, job *stage.Job, logger *slog.Logger) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyRunStarted(ctx, job.Source(), job.TargetLanguage); err != nil {
		logger.Debug("start notification failed", logging.Error(err))
	}
}
