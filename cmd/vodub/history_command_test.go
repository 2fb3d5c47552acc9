package main

import (
	"context"
	"testing"
	"time"

	"vodub/internal/runlog"
)

func TestHistoryEmptyLedger(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestHistoryListsRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := runlog.Open(env.cfg)
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	ctx := context.Background()

	completed := &runlog.Run{
		ID:             "run-1",
		Source:         "/videos/talk.mp4",
		SourceType:     runlog.SourceFile,
		TargetLanguage: "es",
		Status:         runlog.StatusRunning,
	}
	if err := store.Begin(ctx, completed); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.MarkCompleted(ctx, "run-1", "/videos/talk.es.mp4", 90*time.Second); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	failed := &runlog.Run{
		ID:             "run-2",
		Source:         "https://example.com/clip",
		SourceType:     runlog.SourceURL,
		TargetLanguage: "de",
		Status:         runlog.StatusRunning,
	}
	if err := store.Begin(ctx, failed); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.MarkFailed(ctx, "run-2", "mux", "MuxError", "duration divergence", time.Minute); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "/videos/talk.es.mp4")
	requireContains(t, out, "completed")
	requireContains(t, out, "mux: MuxError")

	out, _, err = runCLI(t, []string{"history", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	requireContains(t, out, "failed")
}
