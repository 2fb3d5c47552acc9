package stage

import "testing"

func TestJobRemote(t *testing.T) {
	local := &Job{InputPath: "/videos/clip.mp4"}
	if local.Remote() {
		t.Fatal("local job should not be remote")
	}
	if local.Source() != "/videos/clip.mp4" {
		t.Fatalf("unexpected source: %q", local.Source())
	}

	remote := &Job{InputURL: "https://example.com/watch?v=abc"}
	if !remote.Remote() {
		t.Fatal("url job should be remote")
	}
	if remote.Source() != "https://example.com/watch?v=abc" {
		t.Fatalf("unexpected source: %q", remote.Source())
	}
}

func TestHealthConstructors(t *testing.T) {
	h := Healthy("acquire")
	if !h.Ready || h.Name != "acquire" {
		t.Fatalf("unexpected health: %#v", h)
	}
	u := Unhealthy("mux", "ffmpeg missing")
	if u.Ready || u.Detail != "ffmpeg missing" {
		t.Fatalf("unexpected health: %#v", u)
	}
}
