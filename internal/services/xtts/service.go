package xtts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	langpkg "vodub/internal/language"
	"vodub/internal/fileutil"
)

// Service synthesizes speech through the Coqui TTS command line tool,
// cloning voice characteristics from a reference sample.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, env []string, args ...string) error
}

// NewService creates an XTTS service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// receives the extra environment entries the service would inject.
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, env []string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Synthesize renders text into dest as a WAV file in the target language,
// cloning the voice from speakerWav.
func (s *Service) Synthesize(ctx context.Context, text, language, speakerWav, dest string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("synthesize: text required")
	}
	lang := langpkg.ToISO2(language)
	if lang == "" {
		return fmt.Errorf("synthesize: unrecognized language %q", language)
	}
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("synthesize: destination path required")
	}

	args := s.buildArgs(text, lang, speakerWav, dest)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return fmt.Errorf("tts: %w", err)
	}

	if err := fileutil.EnsureNonEmptyFile(dest); err != nil {
		return fmt.Errorf("tts produced no audio: %w", err)
	}
	return nil
}

func (s *Service) buildArgs(text, language, speakerWav, dest string) []string {
	args := []string{
		"--model_name", s.cfg.Model,
		"--text", text,
		"--language_idx", language,
		"--out_path", dest,
	}
	if strings.TrimSpace(speakerWav) != "" {
		args = append(args, "--speaker_wav", speakerWav)
	} else if strings.TrimSpace(s.cfg.Voice) != "" {
		args = append(args, "--speaker_idx", s.cfg.Voice)
	}
	return args
}

// extraEnv returns the environment entries injected into the synthesis
// process. The weights override is deliberately explicit configuration
// rather than an ambient lookup.
func (s *Service) extraEnv() []string {
	if !s.cfg.AllowUnsafeWeights {
		return nil
	}
	if os.Getenv(weightsEnv) != "" {
		return nil
	}
	return []string{weightsEnv + "=1"}
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	env := s.extraEnv()
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, env, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
