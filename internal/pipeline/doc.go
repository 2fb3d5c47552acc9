// Package pipeline sequences the dubbing stages for a single run.
//
// The runner executes acquire, transcription, translation, synthesis, and
// muxing in order inside a run-scoped workspace. The first stage failure
// stops the run; the workspace is removed on every exit path unless the job
// asked to keep it. Run outcomes land in the runlog ledger and, when
// configured, in ntfy notifications.
package pipeline
