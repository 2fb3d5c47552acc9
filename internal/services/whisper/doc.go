// Package whisper provides speech-to-text transcription by shelling out to
// WhisperX through uvx, plus the ffmpeg audio extraction that feeds it.
package whisper
