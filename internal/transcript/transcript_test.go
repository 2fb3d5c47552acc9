package transcript_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vodub/internal/transcript"
)

func sample() *transcript.Transcript {
	return &transcript.Transcript{
		SourceLanguage: "en",
		Segments: []transcript.Segment{
			{Index: 0, Start: 0.0, End: 2.4, Text: "Hello there."},
			{Index: 1, Start: 2.4, End: 5.1, Text: "Welcome to the show."},
			{Index: 2, Start: 5.6, End: 9.0, Text: "Let's begin."},
		},
	}
}

func TestValidateAcceptsOrderedSegments(t *testing.T) {
	if err := sample().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsEmptyAndDisordered(t *testing.T) {
	empty := &transcript.Transcript{}
	if err := empty.Validate(); err != transcript.ErrEmpty {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	tr := sample()
	tr.Segments[1].End = tr.Segments[1].Start
	if err := tr.Validate(); err == nil || !strings.Contains(err.Error(), "not before end") {
		t.Fatalf("expected start/end violation, got %v", err)
	}

	tr = sample()
	tr.Segments[2].Start = 1.0
	if err := tr.Validate(); err == nil || !strings.Contains(err.Error(), "precedes previous") {
		t.Fatalf("expected ordering violation, got %v", err)
	}
}

func TestApplyTranslationsPreservesCountAndOrder(t *testing.T) {
	tr := sample()
	if err := tr.ApplyTranslations([]string{"Hola.", "Bienvenidos al programa.", "Empecemos."}); err != nil {
		t.Fatalf("ApplyTranslations: %v", err)
	}
	if tr.Segments[1].Translated != "Bienvenidos al programa." {
		t.Fatalf("translation not applied index-for-index: %+v", tr.Segments[1])
	}

	if err := tr.ApplyTranslations([]string{"uno"}); err == nil {
		t.Fatal("expected count mismatch error")
	}
}

func TestDubTextPrefersTranslation(t *testing.T) {
	seg := transcript.Segment{Text: "Hello.", Translated: "Hola."}
	if got := seg.DubText(); got != "Hola." {
		t.Fatalf("DubText = %q", got)
	}
	seg.Translated = "  "
	if got := seg.DubText(); got != "Hello." {
		t.Fatalf("DubText fallback = %q", got)
	}
}

func TestWriteSRT(t *testing.T) {
	tr := sample()
	if err := tr.ApplyTranslations([]string{"Hola.", "Bienvenidos.", "Empecemos."}); err != nil {
		t.Fatalf("ApplyTranslations: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := transcript.WriteSRT(tr, path); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "00:00:02,400 --> 00:00:05,100") {
		t.Fatalf("expected timestamp line, got:\n%s", content)
	}
	if !strings.Contains(content, "Bienvenidos.") {
		t.Fatalf("expected translated text, got:\n%s", content)
	}
	if strings.Count(content, "-->") != 3 {
		t.Fatalf("expected 3 cues, got:\n%s", content)
	}
}
