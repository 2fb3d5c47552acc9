package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vodub/internal/acquire"
	"vodub/internal/config"
	"vodub/internal/deps"
	"vodub/internal/language"
	"vodub/internal/logging"
	"vodub/internal/muxing"
	"vodub/internal/notifications"
	"vodub/internal/pipeline"
	"vodub/internal/preflight"
	"vodub/internal/runlog"
	"vodub/internal/services"
	"vodub/internal/stage"
	"vodub/internal/synthesis"
	"vodub/internal/transcription"
	"vodub/internal/translation"
)

type dubOptions struct {
	video          string
	url            string
	out            string
	targetLanguage string
	speakerWav     string
	sourceLanguage string
	whisperModel   string
	ttsModel       string
	voice          string
	keepWorkDir    bool
}

func (o *dubOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.video, "video", "", "Local input video path")
	flags.StringVar(&o.url, "url", "", "Remote video URL to download")
	flags.StringVar(&o.out, "out", "", "Output video path")
	flags.StringVar(&o.targetLanguage, "language", "", "Target dub language code")
	flags.StringVar(&o.speakerWav, "speaker-wav", "", "Reference voice sample for cloning")
	flags.StringVar(&o.sourceLanguage, "source-language", "", "Source language hint for transcription")
	flags.StringVar(&o.whisperModel, "whisper-model", "", "Whisper model override")
	flags.StringVar(&o.ttsModel, "tts-model", "", "TTS model override")
	flags.StringVar(&o.voice, "voice", "", "Named speaker for multi-speaker TTS models")
	flags.BoolVar(&o.keepWorkDir, "keep-workdir", false, "Keep the run work directory for inspection")
}

// empty reports whether no dub parameters were provided at all, in which
// case the root command prints help instead of a validation error.
func (o *dubOptions) empty() bool {
	return strings.TrimSpace(o.video) == "" &&
		strings.TrimSpace(o.url) == "" &&
		strings.TrimSpace(o.out) == "" &&
		strings.TrimSpace(o.targetLanguage) == "" &&
		strings.TrimSpace(o.speakerWav) == "" &&
		strings.TrimSpace(o.voice) == ""
}

func (o *dubOptions) validate() error {
	video := strings.TrimSpace(o.video)
	url := strings.TrimSpace(o.url)
	switch {
	case video == "" && url == "":
		return inputError("one of --video or --url is required")
	case video != "" && url != "":
		return inputError("--video and --url are mutually exclusive")
	}
	if strings.TrimSpace(o.out) == "" {
		return inputError("--out is required")
	}
	target := strings.TrimSpace(o.targetLanguage)
	if target == "" {
		return inputError("--language is required")
	}
	if language.ToISO2(target) == "" {
		return inputError(fmt.Sprintf("unknown target language %q", target))
	}
	if !language.XTTSSupported(language.ToISO2(target)) {
		return inputError(fmt.Sprintf("dubbing into %q is not supported by the speech model", target))
	}
	if strings.TrimSpace(o.speakerWav) == "" && strings.TrimSpace(o.voice) == "" {
		return inputError("--speaker-wav is required (or --voice for multi-speaker models)")
	}
	return nil
}

func inputError(message string) error {
	return services.Wrap(services.ErrInput, "", "", message, nil)
}

func runDub(cmd *cobra.Command, cmdCtx *commandContext, opts *dubOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "build logger", "", err)
	}

	ctx := cmd.Context()
	remote := strings.TrimSpace(opts.url) != ""
	if err := ensureReady(ctx, cfg, cmd, remote); err != nil {
		return err
	}

	store, err := runlog.Open(cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "open run ledger", "", err)
	}
	defer store.Close()

	sourceLanguage := strings.TrimSpace(opts.sourceLanguage)
	if sourceLanguage == "" {
		sourceLanguage = strings.TrimSpace(cfg.Whisper.SourceLanguage)
	}

	job := &stage.Job{
		RunID:          uuid.NewString(),
		InputPath:      strings.TrimSpace(opts.video),
		InputURL:       strings.TrimSpace(opts.url),
		OutputPath:     strings.TrimSpace(opts.out),
		TargetLanguage: strings.TrimSpace(opts.targetLanguage),
		SourceLanguage: sourceLanguage,
		SpeakerWav:     strings.TrimSpace(opts.speakerWav),
		Voice:          strings.TrimSpace(opts.voice),
		KeepWorkDir:    opts.keepWorkDir,
	}

	runner := pipeline.NewRunner(cfg, logger, store, notifications.NewService(cfg), []pipeline.Stage{
		{Name: "acquire", Handler: acquire.New(cfg, logger)},
		{Name: "transcribe", Handler: transcription.New(cfg, logger)},
		{Name: "translate", Handler: translation.New(cfg, logger)},
		{Name: "synthesize", Handler: synthesis.New(cfg, logger, job.Voice)},
		{Name: "mux", Handler: muxing.New(cfg, logger)},
	})

	if err := runner.Run(ctx, job); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dubbed video written to %s\n", job.FinalFile)
	return nil
}

func applyOverrides(cfg *config.Config, opts *dubOptions) {
	if value := strings.TrimSpace(opts.whisperModel); value != "" {
		cfg.Whisper.Model = value
	}
	if value := strings.TrimSpace(opts.ttsModel); value != "" {
		cfg.TTS.Model = value
	}
}

func ensureReady(ctx context.Context, cfg *config.Config, cmd *cobra.Command, remote bool) error {
	statuses := preflight.CheckSystemDeps(cfg, remote)
	if !deps.AllRequiredAvailable(statuses) {
		for _, status := range statuses {
			if !status.Optional && !status.Available {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing dependency: %s: %s\n", status.Name, status.Detail)
			}
		}
		return services.Wrap(services.ErrConfiguration, "", "", "required external tools are missing, see `vodub deps`", nil)
	}

	results := preflight.RunAll(ctx, cfg)
	if !preflight.AllPassed(results) {
		for _, result := range results {
			if !result.Passed {
				fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", result.Name, result.Detail)
			}
		}
		return services.Wrap(services.ErrConfiguration, "", "", "preflight checks failed", nil)
	}
	return nil
}
