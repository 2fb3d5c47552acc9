package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers, one per pipeline stage plus the pre-pipeline cases.
// Stages wrap their failures with the matching marker via Wrap.
var (
	ErrInput         = errors.New("input error")
	ErrConfiguration = errors.New("configuration error")
	ErrDownload      = errors.New("download error")
	ErrTranscription = errors.New("transcription error")
	ErrTranslation   = errors.New("translation error")
	ErrSynthesis     = errors.New("synthesis error")
	ErrMux           = errors.New("mux error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Exit codes per failure class. Zero is reserved for success; one for
// failures that carry no marker.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInput         = 2
	ExitConfiguration = 3
	ExitDownload      = 10
	ExitTranscription = 11
	ExitTranslation   = 12
	ExitSynthesis     = 13
	ExitMux           = 14
)

// ExitCode maps a pipeline error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInput):
		return ExitInput
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrDownload):
		return ExitDownload
	case errors.Is(err, ErrTranscription):
		return ExitTranscription
	case errors.Is(err, ErrTranslation):
		return ExitTranslation
	case errors.Is(err, ErrSynthesis):
		return ExitSynthesis
	case errors.Is(err, ErrMux):
		return ExitMux
	default:
		return ExitFailure
	}
}

// ClassLabel names the failure class for ledger rows and final messages.
func ClassLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInput):
		return "InputError"
	case errors.Is(err, ErrConfiguration):
		return "ConfigurationError"
	case errors.Is(err, ErrDownload):
		return "DownloadError"
	case errors.Is(err, ErrTranscription):
		return "TranscriptionError"
	case errors.Is(err, ErrTranslation):
		return "TranslationError"
	case errors.Is(err, ErrSynthesis):
		return "SynthesisError"
	case errors.Is(err, ErrMux):
		return "MuxError"
	default:
		return "Error"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
