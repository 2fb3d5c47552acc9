package translation_test

import (
	"context"
	"errors"
	"testing"

	"vodub/internal/config"
	"vodub/internal/services"
	"vodub/internal/stage"
	"vodub/internal/translation"
	"vodub/internal/transcript"
)

type fakeTranslator struct {
	configured bool
	called     bool
	source     string
	target     string
	result     []string
	fail       error
}

func (f *fakeTranslator) Configured() bool { return f.configured }

func (f *fakeTranslator) Translate(_ context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	f.called = true
	f.source = sourceLang
	f.target = targetLang
	if f.fail != nil {
		return nil, f.fail
	}
	if f.result != nil {
		return f.result, nil
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = "[es] " + text
	}
	return out, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	return &cfg
}

func jobWithTranscript(source, target string) *stage.Job {
	return &stage.Job{
		SourceLanguage: source,
		TargetLanguage: target,
		Transcript: &transcript.Transcript{
			SourceLanguage: source,
			Segments: []transcript.Segment{
				{Index: 0, Start: 0, End: 1, Text: "Hello."},
				{Index: 1, Start: 1.5, End: 3, Text: "Goodbye."},
			},
		},
	}
}

func TestExecuteTranslatesSegments(t *testing.T) {
	client := &fakeTranslator{configured: true}
	handler := translation.NewWithDependencies(testConfig(t), nil, client)
	job := jobWithTranscript("en", "es")

	if err := handler.Execute(context.Background(), job); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !client.called || client.source != "en" || client.target != "es" {
		t.Fatalf("unexpected client call: %#v", client)
	}
	if got := job.Transcript.Segments[0].Translated; got != "[es] Hello." {
		t.Fatalf("translation not applied: %q", got)
	}
	if got := job.Transcript.Segments[1].DubText(); got != "[es] Goodbye." {
		t.Fatalf("dub text should prefer translation: %q", got)
	}
}

func TestExecuteSkipsWhenLanguagesMatch(t *testing.T) {
	client := &fakeTranslator{configured: true}
	handler := translation.NewWithDependencies(testConfig(t), nil, client)
	job := jobWithTranscript("es", "es")

	if err := handler.Execute(context.Background(), job); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if client.called {
		t.Fatal("matching languages must not call the API")
	}
	if job.Transcript.Segments[0].DubText() != "Hello." {
		t.Fatal("copy-through should keep the source text")
	}
}

func TestExecuteRequiresConfiguredClient(t *testing.T) {
	handler := translation.NewWithDependencies(testConfig(t), nil, &fakeTranslator{configured: false})
	err := handler.Execute(context.Background(), jobWithTranscript("en", "es"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestExecuteRejectsUnknownTargetLanguage(t *testing.T) {
	handler := translation.NewWithDependencies(testConfig(t), nil, &fakeTranslator{configured: true})
	err := handler.Execute(context.Background(), jobWithTranscript("en", "zzz"))
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestExecuteWrapsCountMismatch(t *testing.T) {
	client := &fakeTranslator{configured: true, result: []string{"solo uno"}}
	handler := translation.NewWithDependencies(testConfig(t), nil, client)
	err := handler.Execute(context.Background(), jobWithTranscript("en", "es"))
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected translation error, got %v", err)
	}
}

func TestExecuteWrapsAPIFailure(t *testing.T) {
	client := &fakeTranslator{configured: true, fail: errors.New("rate limited")}
	handler := translation.NewWithDependencies(testConfig(t), nil, client)
	err := handler.Execute(context.Background(), jobWithTranscript("en", "es"))
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected translation error, got %v", err)
	}
}

func TestPrepareRequiresTranscript(t *testing.T) {
	handler := translation.NewWithDependencies(testConfig(t), nil, &fakeTranslator{configured: true})
	err := handler.Prepare(context.Background(), &stage.Job{})
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected translation error, got %v", err)
	}
}
