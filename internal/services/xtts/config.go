package xtts

// Config captures runtime settings for XTTS synthesis.
type Config struct {
	// Binary is the Coqui TTS CLI executable.
	Binary string
	// Model is the TTS model name.
	Model string
	// Voice optionally names a built-in speaker, used when the model is
	// multi-speaker and no reference sample applies.
	Voice string
	// AllowUnsafeWeights injects TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1 into the
	// synthesis process environment. Torch 2.6 changed torch.load to
	// weights_only by default, which XTTS v2 checkpoints cannot satisfy.
	AllowUnsafeWeights bool
}

// XTTS configuration constants.
const (
	DefaultBinary = "tts"
	DefaultModel  = "tts_models/multilingual/multi-dataset/xtts_v2"

	// weightsEnv is the torch override controlled by Config.AllowUnsafeWeights.
	weightsEnv = "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD"
)
