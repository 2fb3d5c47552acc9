package main

import (
	"os"
	"path/filepath"
	"testing"
)

const probeStubJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "10.500000", "format_name": "mov,mp4,m4a"}
}`

func TestProbeSummarizesMedia(t *testing.T) {
	env := setupCLITestEnv(t)

	binDir := t.TempDir()
	script := "#!/bin/sh\ncat <<'EOF'\n" + probeStubJSON + "\nEOF\n"
	if err := os.WriteFile(filepath.Join(binDir, "ffprobe"), []byte(script), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	out, _, err := runCLI(t, []string{"probe", "/tmp/clip.mp4"}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "mov,mp4,m4a")
	requireContains(t, out, "10.50s")
	requireContains(t, out, "1 video, 1 audio")
	requireContains(t, out, "h264 1280x720")
	requireContains(t, out, "aac 48000Hz 2ch")
}

func TestProbeRequiresPath(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"probe"}, env.configPath)
	if err == nil {
		t.Fatal("expected argument error")
	}
}
