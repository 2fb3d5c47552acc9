package synthesis

import (
	"errors"

	"vodub/internal/transcript"
)

// Item places one synthesized segment on the original timeline. SlotSeconds
// is the window the segment may occupy: the time until the next segment
// starts, or the segment's own duration for the last one.
type Item struct {
	Index       int
	Text        string
	Start       float64
	SlotSeconds float64
}

// Plan is the timeline layout for the assembled dub track. Segments that
// synthesize shorter than their slot get silence appended; segments that
// run long get compressed with atempo up to the configured cap, and any
// remainder is accepted as drift. The lead-in and tail gaps are rendered
// as silence so the track spans the whole video.
type Plan struct {
	LeadInSeconds float64
	TailSeconds   float64
	Items         []Item
}

// BuildPlan lays the transcript segments out on the original timeline.
// totalSeconds is the working video duration; speech rarely runs to the
// last frame, and the gap after the final segment must be silence-filled
// or the assembled track falls short of the container.
func BuildPlan(tr *transcript.Transcript, totalSeconds float64) (Plan, error) {
	if tr == nil || len(tr.Segments) == 0 {
		return Plan{}, errors.New("no transcript segments to synthesize")
	}
	if err := tr.Validate(); err != nil {
		return Plan{}, err
	}

	segments := tr.Segments
	plan := Plan{
		LeadInSeconds: segments[0].Start,
		Items:         make([]Item, 0, len(segments)),
	}
	for i, seg := range segments {
		slot := seg.End - seg.Start
		if i < len(segments)-1 {
			slot = segments[i+1].Start - seg.Start
		}
		plan.Items = append(plan.Items, Item{
			Index:       seg.Index,
			Text:        seg.DubText(),
			Start:       seg.Start,
			SlotSeconds: slot,
		})
	}
	if lastEnd := segments[len(segments)-1].End; totalSeconds > lastEnd {
		plan.TailSeconds = totalSeconds - lastEnd
	}
	return plan, nil
}

// FitTempo returns the atempo factor needed to fit a rendered duration into
// its slot, capped at maxTempo. A factor of 1 means no adjustment.
func FitTempo(rendered, slot, maxTempo float64) float64 {
	if slot <= 0 || rendered <= slot {
		return 1
	}
	tempo := rendered / slot
	if maxTempo > 1 && tempo > maxTempo {
		return maxTempo
	}
	return tempo
}
