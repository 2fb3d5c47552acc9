package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vodub/internal/config"
	"vodub/internal/fileutil"
	"vodub/internal/logging"
	"vodub/internal/media/ffprobe"
	"vodub/internal/services"
	"vodub/internal/services/ytdlp"
	"vodub/internal/stage"
)

// Downloader fetches a remote video into the workspace.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// Acquirer places the input video into the run workspace, copying a local
// file or downloading a URL, then probes it to confirm it carries both a
// video and an audio stream.
type Acquirer struct {
	cfg        *config.Config
	logger     *slog.Logger
	downloader Downloader
	probe      func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// New builds an acquirer with the default yt-dlp client.
func New(cfg *config.Config, logger *slog.Logger) *Acquirer {
	client := ytdlp.NewClient(ytdlp.Config{
		Binary:  cfg.Download.Binary,
		Format:  cfg.Download.Format,
		Timeout: cfg.DownloadTimeout(),
	})
	return NewWithDependencies(cfg, logger, client, ffprobe.Inspect)
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, downloader Downloader, probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)) *Acquirer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "acquire"))
	}
	return &Acquirer{cfg: cfg, logger: stageLogger, downloader: downloader, probe: probe}
}

// SetLogger installs the runner's stage-scoped logger.
func (a *Acquirer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

func (a *Acquirer) Prepare(ctx context.Context, job *stage.Job) error {
	if job.Remote() {
		return nil
	}
	path := strings.TrimSpace(job.InputPath)
	if path == "" {
		return services.Wrap(services.ErrInput, "acquire", "validate input", "no video path or url provided", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrInput, "acquire", "validate input", fmt.Sprintf("video file %q does not exist", path), nil)
		}
		return services.Wrap(services.ErrInput, "acquire", "validate input", "could not stat video file", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrInput, "acquire", "validate input", fmt.Sprintf("%q is a directory", path), nil)
	}
	return nil
}

func (a *Acquirer) Execute(ctx context.Context, job *stage.Job) error {
	logger := logging.WithContext(ctx, a.logger)

	dest := filepath.Join(job.WorkDir, workingName(job))
	if job.Remote() {
		logger.Info("downloading remote video", logging.String("url", job.InputURL))
		if err := a.downloader.Download(ctx, job.InputURL, dest); err != nil {
			return services.Wrap(services.ErrDownload, "acquire", "download video", "yt-dlp failed", err)
		}
	} else {
		logger.Info("copying local video", logging.String("path", job.InputPath))
		if err := fileutil.CopyFileVerified(job.InputPath, dest); err != nil {
			return services.Wrap(services.ErrInput, "acquire", "copy video", "could not copy video into workspace", err)
		}
	}

	result, err := a.probe(ctx, a.cfg.FFprobeBinary(), dest)
	if err != nil {
		return services.Wrap(services.ErrInput, "acquire", "probe video", "ffprobe could not read the video", err)
	}
	if result.VideoStreamCount() == 0 {
		return services.Wrap(services.ErrInput, "acquire", "probe video", "input has no video stream", nil)
	}
	if result.AudioStreamCount() == 0 {
		return services.Wrap(services.ErrInput, "acquire", "probe video", "input has no audio stream", nil)
	}

	job.VideoFile = dest
	logger.Info(
		"video acquired",
		logging.String("file", dest),
		logging.Float64("duration_seconds", result.DurationSeconds()),
		logging.Int("audio_streams", result.AudioStreamCount()),
	)
	return nil
}

func (a *Acquirer) HealthCheck(ctx context.Context) stage.Health {
	const name = "acquire"
	if a.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if _, err := exec.LookPath(a.cfg.FFprobeBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffprobe not found: %v", err))
	}
	if _, err := exec.LookPath(a.cfg.Download.Binary); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("yt-dlp not found: %v", err))
	}
	return stage.Healthy(name)
}

// workingName keeps the original extension for local files so ffmpeg picks
// the right demuxer; downloads always land as mp4.
func workingName(job *stage.Job) string {
	if job.Remote() {
		return "source.mp4"
	}
	ext := filepath.Ext(job.InputPath)
	if ext == "" {
		ext = ".mp4"
	}
	return "source" + ext
}
