package synthesis

import (
	"math"
	"testing"

	"vodub/internal/transcript"
)

func TestBuildPlanUsesNextStartAsSlot(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{
			{Index: 0, Start: 1.0, End: 2.5, Text: "one"},
			{Index: 1, Start: 4.0, End: 5.0, Text: "two"},
			{Index: 2, Start: 6.0, End: 7.5, Text: "three"},
		},
	}

	plan, err := BuildPlan(tr, 10.0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if plan.LeadInSeconds != 1.0 {
		t.Fatalf("unexpected lead-in: %.2f", plan.LeadInSeconds)
	}
	if len(plan.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(plan.Items))
	}

	// First slot runs until the second segment starts, swallowing the gap.
	if got := plan.Items[0].SlotSeconds; got != 3.0 {
		t.Fatalf("unexpected first slot: %.2f", got)
	}
	if got := plan.Items[1].SlotSeconds; got != 2.0 {
		t.Fatalf("unexpected second slot: %.2f", got)
	}
	// Last slot is the segment's own duration.
	if got := plan.Items[2].SlotSeconds; got != 1.5 {
		t.Fatalf("unexpected last slot: %.2f", got)
	}
	// Speech ends at 7.5s of a 10s video; the rest is silence.
	if plan.TailSeconds != 2.5 {
		t.Fatalf("unexpected tail: %.2f", plan.TailSeconds)
	}
}

func TestBuildPlanTailGap(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{
			{Index: 0, Start: 0, End: 4.0, Text: "speech"},
		},
	}

	// Speech running to (or past) the container end needs no tail piece.
	plan, err := BuildPlan(tr, 4.0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if plan.TailSeconds != 0 {
		t.Fatalf("expected no tail, got %.2f", plan.TailSeconds)
	}

	// Unknown video duration falls back to the speech extent.
	plan, err = BuildPlan(tr, 0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if plan.TailSeconds != 0 {
		t.Fatalf("expected no tail for unknown duration, got %.2f", plan.TailSeconds)
	}

	plan, err = BuildPlan(tr, 60.0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if plan.TailSeconds != 56.0 {
		t.Fatalf("unexpected tail: %.2f", plan.TailSeconds)
	}
}

func TestBuildPlanPrefersTranslatedText(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{
			{Index: 0, Start: 0, End: 1, Text: "Hello.", Translated: "Hola."},
		},
	}
	plan, err := BuildPlan(tr, 1.0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if plan.Items[0].Text != "Hola." {
		t.Fatalf("expected translated text, got %q", plan.Items[0].Text)
	}
}

func TestBuildPlanRejectsEmptyTranscript(t *testing.T) {
	if _, err := BuildPlan(nil, 10.0); err == nil {
		t.Fatal("expected error for nil transcript")
	}
	if _, err := BuildPlan(&transcript.Transcript{}, 10.0); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestBuildPlanRejectsDisorderedSegments(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{
			{Index: 0, Start: 5, End: 6, Text: "late"},
			{Index: 1, Start: 1, End: 2, Text: "early"},
		},
	}
	if _, err := BuildPlan(tr, 10.0); err == nil {
		t.Fatal("expected error for disordered transcript")
	}
}

func TestFitTempo(t *testing.T) {
	cases := []struct {
		name     string
		rendered float64
		slot     float64
		max      float64
		want     float64
	}{
		{"fits", 1.0, 2.0, 1.5, 1.0},
		{"exact", 2.0, 2.0, 1.5, 1.0},
		{"mild overrun", 2.4, 2.0, 1.5, 1.2},
		{"capped", 4.0, 2.0, 1.5, 1.5},
		{"zero slot", 1.0, 0, 1.5, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FitTempo(tc.rendered, tc.slot, tc.max)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("FitTempo(%.1f, %.1f, %.1f) = %.3f, want %.3f", tc.rendered, tc.slot, tc.max, got, tc.want)
			}
		})
	}
}
