// Package transcript defines the timestamped segment model that flows from
// transcription through translation into synthesis, and the invariants the
// pipeline enforces on it.
package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// Segment is one contiguous utterance with its timing in the source audio.
// Translated stays empty until the translation stage fills it.
type Segment struct {
	Index      int
	Start      float64
	End        float64
	Text       string
	Translated string
}

// Duration returns the segment's length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// DubText returns the text to synthesize: the translation when present,
// otherwise the source text (source and target language match).
func (s Segment) DubText() string {
	if t := strings.TrimSpace(s.Translated); t != "" {
		return t
	}
	return strings.TrimSpace(s.Text)
}

// Transcript is the ordered segment sequence for one video.
type Transcript struct {
	SourceLanguage string
	Segments       []Segment
}

// ErrEmpty reports a transcript with no usable segments.
var ErrEmpty = errors.New("transcript has no segments")

// Validate enforces the ordering invariants: at least one segment, every
// start strictly before its end, and starts non-decreasing across segments.
func (t *Transcript) Validate() error {
	if t == nil || len(t.Segments) == 0 {
		return ErrEmpty
	}
	prevStart := -1.0
	for i, seg := range t.Segments {
		if seg.Start < 0 {
			return fmt.Errorf("segment %d: negative start %.3f", i, seg.Start)
		}
		if seg.Start >= seg.End {
			return fmt.Errorf("segment %d: start %.3f not before end %.3f", i, seg.Start, seg.End)
		}
		if seg.Start < prevStart {
			return fmt.Errorf("segment %d: start %.3f precedes previous start %.3f", i, seg.Start, prevStart)
		}
		prevStart = seg.Start
	}
	return nil
}

// ApplyTranslations copies translated texts onto the segments, enforcing the
// one-to-one count invariant.
func (t *Transcript) ApplyTranslations(translated []string) error {
	if len(translated) != len(t.Segments) {
		return fmt.Errorf("translation count mismatch: %d segments, %d translations", len(t.Segments), len(translated))
	}
	for i := range t.Segments {
		t.Segments[i].Translated = strings.TrimSpace(translated[i])
	}
	return nil
}

// SourceTexts returns the segment texts in order, as handed to the translator.
func (t *Transcript) SourceTexts() []string {
	texts := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		texts[i] = strings.TrimSpace(seg.Text)
	}
	return texts
}

// EndSeconds returns the end timestamp of the final segment.
func (t *Transcript) EndSeconds() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}
