package stage

import (
	"strings"

	"vodub/internal/transcript"
)

// Job carries the state of one dubbing run across the pipeline stages.
// Stages read the fields earlier stages populated and fill in their own.
type Job struct {
	RunID string

	// Request parameters.
	InputPath      string
	InputURL       string
	OutputPath     string
	TargetLanguage string
	SourceLanguage string
	SpeakerWav     string
	Voice          string
	KeepWorkDir    bool

	// Workspace paths, set by the runner before the first stage.
	WorkDir string

	// Stage outputs.
	VideoFile     string
	AudioFile     string
	Transcript    *transcript.Transcript
	TranscriptSRT string
	DubbedAudio   string
	FinalFile     string
}

// Remote reports whether the input comes from a URL rather than a local file.
func (j *Job) Remote() bool {
	return strings.TrimSpace(j.InputURL) != ""
}

// Source returns the user-facing description of the input.
func (j *Job) Source() string {
	if j.Remote() {
		return strings.TrimSpace(j.InputURL)
	}
	return strings.TrimSpace(j.InputPath)
}
