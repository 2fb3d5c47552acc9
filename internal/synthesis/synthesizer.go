package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vodub/internal/config"
	"vodub/internal/language"
	"vodub/internal/logging"
	"vodub/internal/media/ffprobe"
	"vodub/internal/services"
	"vodub/internal/services/xtts"
	"vodub/internal/stage"
)

// TTSClient renders one text segment to a WAV file in the cloned voice.
type TTSClient interface {
	Synthesize(ctx context.Context, text, language, speakerWav, dest string) error
	Model() string
}

// Synthesizer renders each translated segment with XTTS and assembles the
// pieces into one track aligned to the original timestamps.
type Synthesizer struct {
	cfg           *config.Config
	logger        *slog.Logger
	tts           TTSClient
	probe         func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New builds a synthesizer with the default Coqui TTS client. voice names a
// built-in speaker used when the job carries no reference sample.
func New(cfg *config.Config, logger *slog.Logger, voice string) *Synthesizer {
	client := xtts.NewService(xtts.Config{
		Binary:             cfg.TTS.Binary,
		Model:              cfg.TTS.Model,
		Voice:              voice,
		AllowUnsafeWeights: cfg.TTS.AllowUnsafeWeights,
	})
	return NewWithDependencies(cfg, logger, client, ffprobe.Inspect)
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, tts TTSClient, probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)) *Synthesizer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "synthesis"))
	}
	return &Synthesizer{cfg: cfg, logger: stageLogger, tts: tts, probe: probe}
}

// SetLogger installs the runner's stage-scoped logger.
func (s *Synthesizer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// WithCommandRunner sets a custom ffmpeg runner (for testing).
func (s *Synthesizer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Prepare validates the reference voice sample and the target language
// before any segment renders.
func (s *Synthesizer) Prepare(ctx context.Context, job *stage.Job) error {
	if job.Transcript == nil || len(job.Transcript.Segments) == 0 {
		return services.Wrap(services.ErrSynthesis, "synthesis", "prepare", "no transcript to synthesize", nil)
	}

	target := language.ToISO2(job.TargetLanguage)
	if !language.XTTSSupported(target) {
		return services.Wrap(services.ErrSynthesis, "synthesis", "check language",
			fmt.Sprintf("XTTS cannot synthesize %q", job.TargetLanguage), nil)
	}

	speakerWav := strings.TrimSpace(job.SpeakerWav)
	if speakerWav == "" {
		if strings.TrimSpace(job.Voice) != "" {
			return nil
		}
		return services.Wrap(services.ErrSynthesis, "synthesis", "check reference", "no speaker wav or named voice provided", nil)
	}
	if _, err := os.Stat(speakerWav); err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "check reference",
			fmt.Sprintf("speaker wav %q unreadable", speakerWav), err)
	}

	result, err := s.probe(ctx, s.cfg.FFprobeBinary(), speakerWav)
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "check reference", "ffprobe could not read the speaker wav", err)
	}
	minSeconds := s.cfg.TTS.MinReferenceSeconds
	if duration := result.DurationSeconds(); duration < minSeconds {
		return services.Wrap(services.ErrSynthesis, "synthesis", "check reference",
			fmt.Sprintf("speaker wav is %.1fs, need at least %.0fs of clean speech", duration, minSeconds), nil)
	}
	return nil
}

func (s *Synthesizer) Execute(ctx context.Context, job *stage.Job) error {
	logger := logging.WithContext(ctx, s.logger)

	probed, err := s.probe(ctx, s.cfg.FFprobeBinary(), job.VideoFile)
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "probe video", "could not measure the working video", err)
	}

	plan, err := BuildPlan(job.Transcript, probed.DurationSeconds())
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "build plan", "could not lay out the dub timeline", err)
	}

	segDir := filepath.Join(job.WorkDir, "segments")
	if err := os.MkdirAll(segDir, 0o755); err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "create segment dir", "could not create segment directory", err)
	}

	target := language.ToISO2(job.TargetLanguage)
	logger.Info(
		"synthesizing segments",
		logging.Int("segments", len(plan.Items)),
		logging.String("model", s.tts.Model()),
		logging.String("language", language.DisplayName(target)),
	)

	pieces := make([]string, 0, len(plan.Items)+2)
	if plan.LeadInSeconds > 0.05 {
		silence := filepath.Join(segDir, "lead-in.wav")
		if err := s.writeSilence(ctx, plan.LeadInSeconds, silence); err != nil {
			return services.Wrap(services.ErrSynthesis, "synthesis", "render silence", "could not render the lead-in gap", err)
		}
		pieces = append(pieces, silence)
	}

	for _, item := range plan.Items {
		raw := filepath.Join(segDir, fmt.Sprintf("segment-%04d.raw.wav", item.Index))
		if err := s.tts.Synthesize(ctx, item.Text, target, job.SpeakerWav, raw); err != nil {
			return services.Wrap(services.ErrSynthesis, "synthesis", "render segment",
				fmt.Sprintf("segment %d failed to render", item.Index), err)
		}

		probed, err := s.probe(ctx, s.cfg.FFprobeBinary(), raw)
		if err != nil {
			return services.Wrap(services.ErrSynthesis, "synthesis", "probe segment",
				fmt.Sprintf("could not measure segment %d", item.Index), err)
		}

		fitted := filepath.Join(segDir, fmt.Sprintf("segment-%04d.wav", item.Index))
		if err := s.fitSegment(ctx, raw, fitted, probed.DurationSeconds(), item.SlotSeconds); err != nil {
			return services.Wrap(services.ErrSynthesis, "synthesis", "fit segment",
				fmt.Sprintf("could not fit segment %d into its slot", item.Index), err)
		}
		pieces = append(pieces, fitted)
	}

	if plan.TailSeconds > 0.05 {
		silence := filepath.Join(segDir, "tail.wav")
		if err := s.writeSilence(ctx, plan.TailSeconds, silence); err != nil {
			return services.Wrap(services.ErrSynthesis, "synthesis", "render silence", "could not render the tail gap", err)
		}
		pieces = append(pieces, silence)
	}

	dubbed := filepath.Join(job.WorkDir, "dubbed.wav")
	if err := s.concat(ctx, pieces, dubbed); err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesis", "assemble track", "could not assemble the dub track", err)
	}

	job.DubbedAudio = dubbed
	logger.Info("dub track assembled", logging.String("file", dubbed))
	return nil
}

func (s *Synthesizer) HealthCheck(ctx context.Context) stage.Health {
	const name = "synthesis"
	if s.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if _, err := exec.LookPath(s.cfg.TTS.Binary); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("tts not found: %v", err))
	}
	if _, err := exec.LookPath(s.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg not found: %v", err))
	}
	return stage.Healthy(name)
}

// fitSegment normalizes one rendered segment to the shared sample format and
// fits it into its timeline slot: long renders get compressed with atempo up
// to the configured cap, short ones get silence appended.
func (s *Synthesizer) fitSegment(ctx context.Context, src, dest string, rendered, slot float64) error {
	filters := []string{}
	if tempo := FitTempo(rendered, slot, s.cfg.TTS.MaxTempo); tempo > 1 {
		filters = append(filters, fmt.Sprintf("atempo=%.4f", tempo))
	} else if slot > rendered {
		filters = append(filters, fmt.Sprintf("apad=whole_dur=%.3f", slot))
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", src}
	if len(filters) > 0 {
		args = append(args, "-filter:a", strings.Join(filters, ","))
	}
	args = append(args,
		"-ar", fmt.Sprintf("%d", s.cfg.TTS.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dest,
	)
	return s.run(ctx, s.cfg.FFmpegBinary(), args...)
}

func (s *Synthesizer) writeSilence(ctx context.Context, seconds float64, dest string) error {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=mono:sample_rate=%d", s.cfg.TTS.SampleRate),
		"-t", fmt.Sprintf("%.3f", seconds),
		"-c:a", "pcm_s16le",
		dest,
	}
	return s.run(ctx, s.cfg.FFmpegBinary(), args...)
}

func (s *Synthesizer) concat(ctx context.Context, pieces []string, dest string) error {
	if len(pieces) == 0 {
		return fmt.Errorf("no audio pieces to assemble")
	}

	listPath := dest + ".list.txt"
	var builder strings.Builder
	for _, piece := range pieces {
		abs, err := filepath.Abs(piece)
		if err != nil {
			return fmt.Errorf("resolve piece path: %w", err)
		}
		fmt.Fprintf(&builder, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c:a", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", s.cfg.TTS.SampleRate),
		"-ac", "1",
		dest,
	}
	return s.run(ctx, s.cfg.FFmpegBinary(), args...)
}

func (s *Synthesizer) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
