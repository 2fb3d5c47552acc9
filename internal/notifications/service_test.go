package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vodub/internal/config"
	"vodub/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunCompleted(context.Background(), "clip.mp4", "clip.dubbed.mp4", time.Minute); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		_ = r.Body.Close()
		w.WriteHeader(http.StatusOK)
	}))
}

func newNtfyService(t *testing.T, url string) notifications.Service {
	t.Helper()
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	cfg.Notifications.RequestTimeout = 5
	return notifications.NewService(&cfg)
}

func TestNotifyRunStartedFormatsPayload(t *testing.T) {
	var captured capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	svc := newNtfyService(t, server.URL)
	if err := svc.NotifyRunStarted(context.Background(), "clip.mp4", "Spanish"); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}
	if captured.title != "vodub - Run Started" {
		t.Fatalf("unexpected title %q", captured.title)
	}
	if captured.body != "Started dubbing clip.mp4 into Spanish" {
		t.Fatalf("unexpected message %q", captured.body)
	}
	if captured.tags != "vodub,run,started" {
		t.Fatalf("unexpected tags %q", captured.tags)
	}
}

func TestNotifyRunCompletedIncludesOutputAndDuration(t *testing.T) {
	var captured capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	svc := newNtfyService(t, server.URL)
	if err := svc.NotifyRunCompleted(context.Background(), "clip.mp4", "clip.dubbed.mp4", 90*time.Second); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}
	if captured.title != "vodub - Complete" {
		t.Fatalf("unexpected title %q", captured.title)
	}
	if captured.body != "Dub complete in 1m30s: clip.mp4\nOutput: clip.dubbed.mp4" {
		t.Fatalf("unexpected message %q", captured.body)
	}
	if captured.priority != "high" {
		t.Fatalf("expected high priority, got %q", captured.priority)
	}
}

func TestNotifyRunFailedFormatsError(t *testing.T) {
	var captured capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	svc := newNtfyService(t, server.URL)
	if err := svc.NotifyRunFailed(context.Background(), "clip.mp4", errors.New("synthesis produced no audio")); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}
	if captured.title != "vodub - Error" {
		t.Fatalf("unexpected title %q", captured.title)
	}
	if captured.body != "Dub failed for clip.mp4: synthesis produced no audio" {
		t.Fatalf("unexpected message %q", captured.body)
	}
	if captured.tags != "vodub,error,alert" {
		t.Fatalf("unexpected tags %q", captured.tags)
	}
	if captured.priority != "high" {
		t.Fatalf("expected high priority, got %q", captured.priority)
	}
}

func TestNtfyServiceReportsServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	svc := newNtfyService(t, server.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
