package transcript

import (
	"fmt"
	"os"
	"strings"
)

// WriteSRT writes the transcript as an SRT sidecar file. Translated text is
// used when present so the sidecar matches the dubbed audio.
func WriteSRT(t *Transcript, path string) error {
	if t == nil || len(t.Segments) == 0 {
		return ErrEmpty
	}

	var b strings.Builder
	for i, seg := range t.Segments {
		text := seg.DubText()
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", formatSRTTimestamp(seg.Start), formatSRTTimestamp(seg.End))
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	h := millis / 3600000
	millis -= h * 3600000
	m := millis / 60000
	millis -= m * 60000
	s := millis / 1000
	ms := millis - s*1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
