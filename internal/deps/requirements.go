package deps

import "vodub/internal/config"

// For builds the requirement list for the configured tool set. yt-dlp is
// only required when the job downloads a remote video; local-file runs must
// not fail over a downloader they never invoke.
func For(cfg *config.Config, remote bool) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Download.Binary,
			Description: "Downloads remote videos",
			Optional:    !remote,
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Extracts, aligns, and muxes audio",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Inspects media streams and durations",
		},
		{
			Name:        "uvx",
			Command:     cfg.Whisper.Binary,
			Description: "Runs WhisperX for transcription",
		},
		{
			Name:        "Coqui TTS",
			Command:     cfg.TTS.Binary,
			Description: "Synthesizes dubbed speech",
		},
	}
}
