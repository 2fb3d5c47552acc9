// Package transcription implements the pipeline stage that extracts the
// audio track and turns speech into ordered, timestamped text segments via
// WhisperX.
package transcription
