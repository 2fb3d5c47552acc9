package xtts_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vodub/internal/services/xtts"
)

func TestSynthesizeBuildsCommandWithSpeakerWav(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "seg.wav")

	svc := xtts.NewService(xtts.Config{AllowUnsafeWeights: true})
	var gotEnv []string
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, env []string, args ...string) error {
		if name != xtts.DefaultBinary {
			t.Fatalf("unexpected binary: %q", name)
		}
		gotEnv = env
		gotArgs = args
		return os.WriteFile(dest, []byte("riff"), 0o644)
	})

	if err := svc.Synthesize(context.Background(), "Hola mundo.", "spanish", "/ref/voice.wav", dest); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"--model_name " + xtts.DefaultModel, "--language_idx es", "--speaker_wav /ref/voice.wav", "--out_path " + dest} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
	if len(gotEnv) != 1 || gotEnv[0] != "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1" {
		t.Fatalf("expected weights override env, got %v", gotEnv)
	}
}

func TestSynthesizeOmitsEnvWhenWeightsGuardKept(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "seg.wav")
	svc := xtts.NewService(xtts.Config{AllowUnsafeWeights: false})
	svc.WithCommandRunner(func(_ context.Context, _ string, env []string, _ ...string) error {
		if len(env) != 0 {
			t.Fatalf("expected no env injection, got %v", env)
		}
		return os.WriteFile(dest, []byte("riff"), 0o644)
	})
	if err := svc.Synthesize(context.Background(), "text", "en", "", dest); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
}

func TestSynthesizeFallsBackToNamedVoice(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "seg.wav")
	svc := xtts.NewService(xtts.Config{Voice: "Ana Florence"})
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, _ string, _ []string, args ...string) error {
		gotArgs = args
		return os.WriteFile(dest, []byte("riff"), 0o644)
	})
	if err := svc.Synthesize(context.Background(), "text", "en", "", dest); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "--speaker_idx Ana Florence") {
		t.Fatalf("expected named voice fallback, got %q", joined)
	}
	if strings.Contains(joined, "--speaker_wav") {
		t.Fatalf("unexpected speaker_wav flag: %q", joined)
	}
}

func TestSynthesizeValidatesInputs(t *testing.T) {
	svc := xtts.NewService(xtts.Config{})
	if err := svc.Synthesize(context.Background(), "  ", "es", "", "/tmp/out.wav"); err == nil {
		t.Fatal("expected error for empty text")
	}
	if err := svc.Synthesize(context.Background(), "text", "nope-lang", "", "/tmp/out.wav"); err == nil {
		t.Fatal("expected error for unknown language")
	}
	if err := svc.Synthesize(context.Background(), "text", "es", "", ""); err == nil {
		t.Fatal("expected error for empty destination")
	}
}

func TestSynthesizeRejectsEmptyOutput(t *testing.T) {
	svc := xtts.NewService(xtts.Config{})
	svc.WithCommandRunner(func(context.Context, string, []string, ...string) error {
		return nil // tool "succeeds" without writing
	})
	err := svc.Synthesize(context.Background(), "text", "es", "", filepath.Join(t.TempDir(), "out.wav"))
	if err == nil || !strings.Contains(err.Error(), "no audio") {
		t.Fatalf("expected missing output error, got %v", err)
	}
}
