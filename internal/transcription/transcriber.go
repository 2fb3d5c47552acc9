package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"vodub/internal/config"
	"vodub/internal/logging"
	"vodub/internal/media/ffprobe"
	"vodub/internal/services"
	"vodub/internal/services/whisper"
	"vodub/internal/stage"
	"vodub/internal/transcript"
)

// Client is the transcription surface the stage needs from the whisper
// service.
type Client interface {
	ExtractAudio(ctx context.Context, source string, audioIndex int, dest string) error
	Transcribe(ctx context.Context, source, outputDir, language string) (*transcript.Transcript, error)
	Model() string
}

// Transcriber extracts the audio track and runs whisper over it, producing
// the ordered segment transcript the later stages consume.
type Transcriber struct {
	cfg    *config.Config
	logger *slog.Logger
	client Client
	probe  func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// New builds a transcriber with the default whisper client.
func New(cfg *config.Config, logger *slog.Logger) *Transcriber {
	client := whisper.NewService(whisper.Config{
		Binary:      cfg.Whisper.Binary,
		Model:       cfg.Whisper.Model,
		CUDAEnabled: cfg.Whisper.CUDAEnabled,
	}, cfg.FFmpegBinary())
	return NewWithDependencies(cfg, logger, client, ffprobe.Inspect)
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, client Client, probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "transcription"))
	}
	return &Transcriber{cfg: cfg, logger: stageLogger, client: client, probe: probe}
}

// SetLogger installs the runner's stage-scoped logger.
func (t *Transcriber) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

func (t *Transcriber) Prepare(ctx context.Context, job *stage.Job) error {
	if strings.TrimSpace(job.VideoFile) == "" {
		return services.Wrap(services.ErrTranscription, "transcription", "prepare", "no working video from the acquire stage", nil)
	}
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, job *stage.Job) error {
	logger := logging.WithContext(ctx, t.logger)

	result, err := t.probe(ctx, t.cfg.FFprobeBinary(), job.VideoFile)
	if err != nil {
		return services.Wrap(services.ErrTranscription, "transcription", "probe video", "ffprobe could not read the working video", err)
	}
	audioIndex := result.FirstAudioIndex()
	if audioIndex < 0 {
		return services.Wrap(services.ErrTranscription, "transcription", "probe video", "working video has no audio stream", nil)
	}

	audioFile := filepath.Join(job.WorkDir, "audio.wav")
	logger.Info(
		"extracting audio",
		logging.Int("stream_index", audioIndex),
		logging.String("dest", audioFile),
	)
	if err := t.client.ExtractAudio(ctx, job.VideoFile, audioIndex, audioFile); err != nil {
		return services.Wrap(services.ErrTranscription, "transcription", "extract audio", "ffmpeg audio extraction failed", err)
	}

	hint := strings.TrimSpace(job.SourceLanguage)
	logger.Info(
		"running whisper",
		logging.String("model", t.client.Model()),
		logging.String("language_hint", hint),
	)
	tr, err := t.client.Transcribe(ctx, audioFile, job.WorkDir, hint)
	if err != nil {
		return services.Wrap(services.ErrTranscription, "transcription", "run whisper", "transcription failed", err)
	}
	if err := tr.Validate(); err != nil {
		return services.Wrap(services.ErrTranscription, "transcription", "validate transcript", "whisper output unusable", err)
	}

	srtPath := filepath.Join(job.WorkDir, "transcript.srt")
	if err := transcript.WriteSRT(tr, srtPath); err != nil {
		return services.Wrap(services.ErrTranscription, "transcription", "write srt", "could not write transcript sidecar", err)
	}

	job.AudioFile = audioFile
	job.Transcript = tr
	job.TranscriptSRT = srtPath
	if job.SourceLanguage == "" {
		job.SourceLanguage = tr.SourceLanguage
	}

	logger.Info(
		"transcription complete",
		logging.Int("segments", len(tr.Segments)),
		logging.String("source_language", job.SourceLanguage),
	)
	return nil
}

func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	const name = "transcription"
	if t.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if _, err := exec.LookPath(t.cfg.Whisper.Binary); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("uvx not found: %v", err))
	}
	if _, err := exec.LookPath(t.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg not found: %v", err))
	}
	return stage.Healthy(name)
}
