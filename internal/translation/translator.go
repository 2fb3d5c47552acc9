package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vodub/internal/config"
	"vodub/internal/language"
	"vodub/internal/logging"
	"vodub/internal/services"
	"vodub/internal/services/translate"
	"vodub/internal/stage"
)

// Client is the translation surface the stage needs.
type Client interface {
	Configured() bool
	Translate(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)
}

// Translator rewrites each transcript segment into the target language,
// preserving count and order. When the source language already matches the
// target the stage is a copy-through.
type Translator struct {
	cfg    *config.Config
	logger *slog.Logger
	client Client
}

// New builds a translator with the default chat-completions client.
func New(cfg *config.Config, logger *slog.Logger) *Translator {
	client := translate.NewClient(translate.Config{
		APIKey:         cfg.Translate.APIKey,
		BaseURL:        cfg.Translate.BaseURL,
		Model:          cfg.Translate.Model,
		TimeoutSeconds: cfg.Translate.TimeoutSeconds,
	})
	return NewWithDependencies(cfg, logger, client)
}

// NewWithDependencies allows injecting the client (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, client Client) *Translator {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String(logging.FieldComponent, "translation"))
	}
	return &Translator{cfg: cfg, logger: stageLogger, client: client}
}

// SetLogger installs the runner's stage-scoped logger.
func (t *Translator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

func (t *Translator) Prepare(ctx context.Context, job *stage.Job) error {
	if job.Transcript == nil || len(job.Transcript.Segments) == 0 {
		return services.Wrap(services.ErrTranslation, "translation", "prepare", "no transcript from the transcription stage", nil)
	}
	return nil
}

func (t *Translator) Execute(ctx context.Context, job *stage.Job) error {
	logger := logging.WithContext(ctx, t.logger)

	source := language.ToISO2(job.SourceLanguage)
	target := language.ToISO2(job.TargetLanguage)
	if target == "" {
		return services.Wrap(services.ErrInput, "translation", "resolve language", fmt.Sprintf("unknown target language %q", job.TargetLanguage), nil)
	}

	if source != "" && source == target {
		logger.Info(
			"source already matches target, skipping translation",
			logging.String("language", language.DisplayName(target)),
		)
		return nil
	}

	if t.client == nil || !t.client.Configured() {
		return services.Wrap(services.ErrConfiguration, "translation", "check client",
			"translation API key not configured; set translate.api_key or VODUB_TRANSLATE_API_KEY", nil)
	}

	texts := job.Transcript.SourceTexts()
	logger.Info(
		"translating transcript",
		logging.Int("segments", len(texts)),
		logging.String("source_language", displayOrUnknown(source)),
		logging.String("target_language", language.DisplayName(target)),
	)

	translated, err := t.client.Translate(ctx, texts, source, target)
	if err != nil {
		return services.Wrap(services.ErrTranslation, "translation", "translate segments", "translation request failed", err)
	}
	if err := job.Transcript.ApplyTranslations(translated); err != nil {
		return services.Wrap(services.ErrTranslation, "translation", "apply translations", "model broke segment alignment", err)
	}

	logger.Info("translation complete", logging.Int("segments", len(translated)))
	return nil
}

func (t *Translator) HealthCheck(ctx context.Context) stage.Health {
	const name = "translation"
	if t.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if t.client == nil || !t.client.Configured() {
		return stage.Unhealthy(name, "translation API key not configured")
	}
	return stage.Healthy(name)
}

func displayOrUnknown(code string) string {
	if strings.TrimSpace(code) == "" {
		return "auto-detected"
	}
	return language.DisplayName(code)
}
