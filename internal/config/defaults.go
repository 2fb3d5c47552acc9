package config

const (
	defaultWorkDir = "~/.local/share/vodub/work"
	defaultLogDir  = "~/.local/share/vodub/logs"

	defaultDownloadBinary  = "yt-dlp"
	defaultDownloadFormat  = "bestvideo+bestaudio"
	defaultDownloadTimeout = 1800

	defaultWhisperBinary = "uvx"
	defaultWhisperModel  = "small"

	defaultTTSBinary       = "tts"
	defaultTTSModel        = "tts_models/multilingual/multi-dataset/xtts_v2"
	defaultTTSSampleRate   = 24000
	defaultMinReferenceSec = 3.0
	defaultMaxTempo        = 1.5

	defaultTranslateBaseURL = "https://openrouter.ai/api/v1"
	defaultTranslateModel   = "google/gemini-3-flash-preview"
	defaultTranslateTimeout = 120

	defaultMuxToleranceSeconds = 2.0
	defaultMuxTolerancePercent = 5.0

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Download: Download{
			Binary:         defaultDownloadBinary,
			Format:         defaultDownloadFormat,
			TimeoutSeconds: defaultDownloadTimeout,
		},
		Whisper: Whisper{
			Binary: defaultWhisperBinary,
			Model:  defaultWhisperModel,
		},
		TTS: TTS{
			Binary:              defaultTTSBinary,
			Model:               defaultTTSModel,
			SampleRate:          defaultTTSSampleRate,
			MinReferenceSeconds: defaultMinReferenceSec,
			MaxTempo:            defaultMaxTempo,
			AllowUnsafeWeights:  true,
		},
		Translate: Translate{
			BaseURL:        defaultTranslateBaseURL,
			Model:          defaultTranslateModel,
			TimeoutSeconds: defaultTranslateTimeout,
		},
		Mux: Mux{
			DurationToleranceSeconds: defaultMuxToleranceSeconds,
			DurationTolerancePercent: defaultMuxTolerancePercent,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
