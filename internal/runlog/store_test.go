package runlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vodub/internal/config"
	"vodub/internal/runlog"
)

func newStore(t *testing.T) *runlog.Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	store, err := runlog.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginAndComplete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run := &runlog.Run{
		ID:             "run-1",
		Source:         "/videos/clip.mp4",
		SourceType:     runlog.SourceFile,
		TargetLanguage: "es",
	}
	if err := store.Begin(ctx, run); err != nil {
		t.Fatalf("begin run: %v", err)
	}

	fetched, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected run to exist")
	}
	if fetched.Status != runlog.StatusRunning {
		t.Fatalf("expected running status, got %s", fetched.Status)
	}
	if fetched.Finished() {
		t.Fatal("running run should not be finished")
	}

	if err := store.MarkCompleted(ctx, "run-1", "/videos/clip.dubbed.mp4", 95*time.Second); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	fetched, err = store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if fetched.Status != runlog.StatusCompleted {
		t.Fatalf("expected completed, got %s", fetched.Status)
	}
	if fetched.OutputPath != "/videos/clip.dubbed.mp4" {
		t.Fatalf("unexpected output path %q", fetched.OutputPath)
	}
	if fetched.DurationSeconds != 95 {
		t.Fatalf("unexpected duration %.1f", fetched.DurationSeconds)
	}
	if !fetched.Finished() {
		t.Fatal("completed run should be finished")
	}
}

func TestMarkFailedRecordsStageAndClass(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run := &runlog.Run{
		ID:             "run-2",
		Source:         "https://example.com/watch?v=abc",
		SourceType:     runlog.SourceURL,
		TargetLanguage: "fr",
	}
	if err := store.Begin(ctx, run); err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := store.MarkFailed(ctx, "run-2", "transcription", "TranscriptionError", "whisperx exited 1", 12*time.Second); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, "run-2")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if fetched.Status != runlog.StatusFailed {
		t.Fatalf("expected failed, got %s", fetched.Status)
	}
	if fetched.FailedStage != "transcription" {
		t.Fatalf("unexpected stage %q", fetched.FailedStage)
	}
	if fetched.ErrorClass != "TranscriptionError" {
		t.Fatalf("unexpected class %q", fetched.ErrorClass)
	}
	if fetched.ErrorMessage != "whisperx exited 1" {
		t.Fatalf("unexpected message %q", fetched.ErrorMessage)
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	store := newStore(t)
	run, err := store.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run != nil {
		t.Fatal("expected nil for missing run")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		run := &runlog.Run{ID: id, Source: id + ".mp4", SourceType: runlog.SourceFile, TargetLanguage: "de"}
		if err := store.Begin(ctx, run); err != nil {
			t.Fatalf("begin %s: %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestClear(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run := &runlog.Run{ID: "x", Source: "x.mp4", SourceType: runlog.SourceFile, TargetLanguage: "it"}
	if err := store.Begin(ctx, run); err != nil {
		t.Fatalf("begin: %v", err)
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	store, err := runlog.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	run := &runlog.Run{ID: "persist", Source: "p.mp4", SourceType: runlog.SourceFile, TargetLanguage: "pl"}
	if err := store.Begin(context.Background(), run); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := runlog.Open(&cfg)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	fetched, err := reopened.GetByID(context.Background(), "persist")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected run to survive reopen")
	}
}
