package muxing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vodub/internal/config"
	"vodub/internal/fileutil"
	"vodub/internal/logging"
	"vodub/internal/media/ffprobe"
	"vodub/internal/services"
	"vodub/internal/stage"
	"vodub/internal/transcript"
)

// Muxer replaces the original audio track with the dub, stream-copying the
// video, and moves the result into place atomically.
type Muxer struct {
	cfg           *config.Config
	logger        *slog.Logger
	probe         func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New builds a muxer using the configured ffmpeg binary.
func New(cfg *config.Config, logger *slog.Logger) *Muxer {
	return NewWithDependencies(cfg, logger, ffprobe.Inspect)
}

// NewWithDependencies allows injecting the probe (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)) *Muxer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "muxing"))
	}
	return &Muxer{cfg: cfg, logger: stageLogger, probe: probe}
}

// SetLogger installs the runner's stage-scoped logger.
func (m *Muxer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WithCommandRunner sets a custom ffmpeg runner (for testing).
func (m *Muxer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	m.commandRunner = runner
}

func (m *Muxer) Prepare(ctx context.Context, job *stage.Job) error {
	if strings.TrimSpace(job.VideoFile) == "" {
		return services.Wrap(services.ErrMux, "mux", "prepare", "no working video to mux", nil)
	}
	if strings.TrimSpace(job.DubbedAudio) == "" {
		return services.Wrap(services.ErrMux, "mux", "prepare", "no dub track from the synthesis stage", nil)
	}
	if strings.TrimSpace(job.OutputPath) == "" {
		return services.Wrap(services.ErrInput, "mux", "prepare", "no output path provided", nil)
	}
	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrMux, "mux", "prepare", "could not create output directory", err)
		}
	}
	return nil
}

func (m *Muxer) Execute(ctx context.Context, job *stage.Job) error {
	logger := logging.WithContext(ctx, m.logger)

	videoDuration, err := m.duration(ctx, job.VideoFile)
	if err != nil {
		return services.Wrap(services.ErrMux, "mux", "probe video", "could not measure the working video", err)
	}
	audioDuration, err := m.duration(ctx, job.DubbedAudio)
	if err != nil {
		return services.Wrap(services.ErrMux, "mux", "probe audio", "could not measure the dub track", err)
	}

	if diff, limit := durationDiff(videoDuration, audioDuration), m.tolerance(videoDuration); diff > limit {
		return services.Wrap(services.ErrMux, "mux", "check durations",
			fmt.Sprintf("dub track diverges %.1fs from the video (limit %.1fs)", diff, limit), nil)
	}

	temp := filepath.Join(job.WorkDir, "muxed"+filepath.Ext(job.OutputPath))
	logger.Info(
		"muxing dub track",
		logging.String("video", job.VideoFile),
		logging.String("audio", job.DubbedAudio),
		logging.String("output", job.OutputPath),
	)
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", job.VideoFile,
		"-i", job.DubbedAudio,
		"-c:v", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		temp,
	}
	if err := m.run(ctx, m.cfg.FFmpegBinary(), args...); err != nil {
		return services.Wrap(services.ErrMux, "mux", "run ffmpeg", "audio replacement failed", err)
	}

	if err := finalize(temp, job.OutputPath); err != nil {
		return services.Wrap(services.ErrMux, "mux", "move output", "could not move the output into place", err)
	}

	if srt := installSidecar(job); srt != "" {
		logger.Info("transcript sidecar written", logging.String("file", srt))
	}

	job.FinalFile = job.OutputPath
	logger.Info("output written", logging.String("file", job.OutputPath))
	return nil
}

// installSidecar writes the transcript SRT next to the output so it survives
// workspace cleanup. It renders from the job transcript rather than copying
// the working sidecar: translation fills in the dub text after transcription
// wrote that file. Failures are not fatal; the dub itself is already in
// place.
func installSidecar(job *stage.Job) string {
	if job.Transcript == nil {
		return ""
	}
	base := strings.TrimSuffix(job.OutputPath, filepath.Ext(job.OutputPath))
	dest := base + ".srt"
	if err := transcript.WriteSRT(job.Transcript, dest); err != nil {
		return ""
	}
	return dest
}

func (m *Muxer) HealthCheck(ctx context.Context) stage.Health {
	const name = "muxing"
	if m.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if _, err := exec.LookPath(m.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg not found: %v", err))
	}
	return stage.Healthy(name)
}

func (m *Muxer) duration(ctx context.Context, path string) (float64, error) {
	result, err := m.probe(ctx, m.cfg.FFprobeBinary(), path)
	if err != nil {
		return 0, err
	}
	seconds := result.DurationSeconds()
	if seconds <= 0 {
		return 0, fmt.Errorf("ffprobe reported no usable duration for %s", path)
	}
	return seconds, nil
}

// tolerance allows the larger of the configured absolute and percentage
// bounds, so short clips are not failed over a fixed window meant for long
// ones.
func (m *Muxer) tolerance(videoDuration float64) float64 {
	absolute := m.cfg.Mux.DurationToleranceSeconds
	relative := videoDuration * m.cfg.Mux.DurationTolerancePercent / 100
	return math.Max(absolute, relative)
}

func durationDiff(a, b float64) float64 {
	return math.Abs(a - b)
}

// finalize moves the muxed file into place, falling back to a copy when the
// output lives on a different filesystem than the workspace.
func finalize(temp, dest string) error {
	if err := os.Rename(temp, dest); err == nil {
		return nil
	}
	if err := fileutil.CopyFile(temp, dest); err != nil {
		return fmt.Errorf("copy output: %w", err)
	}
	return os.Remove(temp)
}

func (m *Muxer) run(ctx context.Context, name string, args ...string) error {
	if m.commandRunner != nil {
		return m.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
