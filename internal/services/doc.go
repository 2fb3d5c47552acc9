// Package services defines the error taxonomy shared by all pipeline
// stages and the context keys used to correlate their logs. Each stage
// wraps failures with a sentinel marker so the runner can classify them
// and pick the process exit code.
package services
