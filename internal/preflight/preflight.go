package preflight

import (
	"context"

	"vodub/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// MinFreeBytes is the smallest amount of free space the work directory
// needs before a run is allowed to start. Intermediate WAV extraction and
// per-segment synthesis can multiply the source size several times over.
const MinFreeBytes = 2 << 30

// RunAll executes all applicable preflight checks for the given config.
// The translator check only runs when an API key is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDiskSpace("Work directory space", cfg.Paths.WorkDir, MinFreeBytes),
	}

	if cfg.Translate.APIKey != "" {
		results = append(results, CheckTranslator(ctx, cfg))
	}

	return results
}

// AllPassed reports whether every check in the slice succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
