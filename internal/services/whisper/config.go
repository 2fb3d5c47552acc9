package whisper

// Config captures runtime settings for whisper transcription.
type Config struct {
	// Binary is the launcher executable; whisper runs through uvx so no
	// local install is required.
	Binary string
	// Model is the whisper model to use (e.g., "small", "large-v3").
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
}

// Whisper configuration constants.
const (
	DefaultModel = "small"

	batchSize      = "4"
	outputFormat   = "json"
	cpuDevice      = "cpu"
	cudaDevice     = "cuda"
	cpuComputeType = "float32"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)
