// Package preflight provides readiness checks for the external services
// and filesystem paths a dubbing run depends on.
//
// The pipeline runner calls RunAll before any external tool executes so a
// missing work directory or an exhausted disk fails the run in seconds
// rather than after a long transcription. The CLI "vodub deps" command
// reuses the individual check functions to display tool health.
package preflight
