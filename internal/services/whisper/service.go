package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "vodub/internal/language"
	"vodub/internal/transcript"
)

// Service provides whisper transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service with the given configuration.
func NewService(cfg Config, ffmpegBinary string) *Service {
	if cfg.Binary == "" {
		cfg.Binary = UVXCommand
	}
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// ExtractAudio extracts the given audio stream from a source file into a
// mono 16kHz WAV. This method uses the service's command runner if configured.
func (s *Service) ExtractAudio(ctx context.Context, source string, audioIndex int, dest string) error {
	if s.commandRunner != nil {
		args := buildExtractArgs(source, audioIndex, dest)
		return s.commandRunner(ctx, s.ffmpegBinary, args...)
	}
	return ExtractAudio(ctx, s.ffmpegBinary, source, audioIndex, dest)
}

// Transcribe runs whisper over a WAV file and returns the parsed transcript.
// outputDir is where whisper writes its JSON output; language is an optional
// source-language hint, empty for auto-detection.
func (s *Service) Transcribe(ctx context.Context, source, outputDir, language string) (*transcript.Transcript, error) {
	if source == "" {
		return nil, fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(source, outputDir, language)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	return LoadTranscript(jsonPath)
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, language string) []string {
	model := s.cfg.Model
	if model == "" {
		model = DefaultModel
	}

	args := []string{
		"whisperx",
		source,
		"--model", model,
		"--batch_size", batchSize,
		"--output_dir", outputDir,
		"--output_format", outputFormat,
		"--segment_resolution", "sentence",
	}

	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", cudaDevice)
	} else {
		args = append(args, "--device", cpuDevice, "--compute_type", cpuComputeType)
	}

	return args
}

// jsonSegment is one transcribed segment in the whisper JSON output.
type jsonSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// payload is the JSON structure whisper writes.
type payload struct {
	Language string        `json:"language"`
	Segments []jsonSegment `json:"segments"`
}

// LoadTranscript parses a whisper JSON file into the pipeline transcript model.
func LoadTranscript(jsonPath string) (*transcript.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	var decoded payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}

	result := &transcript.Transcript{
		SourceLanguage: langpkg.ToISO2(decoded.Language),
	}
	for _, seg := range decoded.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, transcript.Segment{
			Index: len(result.Segments),
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
		})
	}
	return result, nil
}
