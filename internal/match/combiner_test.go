package match

import (
	"testing"

	"marcpd/internal/config"
)

func newTestCombiner() *Combiner {
	cfg := config.Default()
	return NewCombiner(&cfg.Scoring)
}

func TestCombineScenarioWeights(t *testing.T) {
	c := newTestCombiner()

	tests := []struct {
		name                     string
		title, author, publisher float64
		generic                  bool
		want                     float64
	}{
		{"all fields normal", 90, 80, 70, false, 84.5},
		{"no publisher normal", 90, 80, 0, false, 87},
		{"generic with publisher", 90, 80, 70, true, 79.89},
		{"all zero", 0, 0, 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Combine(tt.title, tt.author, tt.publisher, tt.generic, false)
			if got != tt.want {
				t.Errorf("Combine(%v, %v, %v, generic=%v) = %v, want %v",
					tt.title, tt.author, tt.publisher, tt.generic, got, tt.want)
			}
		})
	}
}

func TestCombineRedistribution(t *testing.T) {
	c := newTestCombiner()

	// Strong title, no author: 84*0.6 + 40*0.4 = 66.4.
	if got := c.Combine(84, 0, 40, false, false); got != 66.4 {
		t.Errorf("author-missing redistribution = %v, want 66.4", got)
	}
	// Strong title, no publisher: 84*0.7 + 40*0.3 = 70.8.
	if got := c.Combine(84, 40, 0, false, false); got != 70.8 {
		t.Errorf("publisher-missing redistribution = %v, want 70.8", got)
	}
	// Title below the floor: scenario weights apply instead.
	if got := c.Combine(60, 0, 40, false, false); got == 60*0.6+40*0.4 {
		t.Errorf("redistribution applied below floor, got %v", got)
	}
	// Both supporting fields missing: no redistribution.
	want := c.Combine(84, 0, 0, false, false)
	if want != 84.0*0.7/(0.7+0.3) {
		t.Errorf("both missing = %v, want pure no-publisher weighting", want)
	}
}

func TestCombineMultiFieldGuards(t *testing.T) {
	c := newTestCombiner()

	// Moderate title with no support is capped.
	if got := c.Combine(45, 5, 5, false, false); got != 25 {
		t.Errorf("weak title guard = %v, want 25", got)
	}
	// Strong author with nothing else is penalized.
	if got := c.Combine(15, 100, 10, false, false); got != 10.65 {
		t.Errorf("author-only guard = %v, want 10.65", got)
	}
	// Strong publisher with nothing else is penalized at half weight.
	got := c.Combine(10, 10, 95, false, false)
	raw := (10*0.6 + 10*0.25 + 95*0.15)
	if got != round2(raw*0.5) {
		t.Errorf("publisher-only guard = %v, want %v", got, round2(raw*0.5))
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func TestCombineLCCN(t *testing.T) {
	c := newTestCombiner()

	// The guard that would crush an author-only score is skipped for LCCN
	// matches, and the boost lands on top.
	got := c.Combine(15, 100, 10, false, true)
	if got != 55.5 {
		t.Errorf("LCCN combine = %v, want 55.5", got)
	}
	if got <= 55 {
		t.Errorf("boosted LCCN score %v should exceed 55", got)
	}

	// Boost never pushes past 100.
	if got := c.Combine(100, 100, 100, false, true); got != 100 {
		t.Errorf("clamped combine = %v, want 100", got)
	}
}

func TestCombineGenericPenaltyRenormalizes(t *testing.T) {
	c := newTestCombiner()

	// With a perfect score on every field the combined score must stay 100
	// regardless of the generic penalty: the weights renormalize.
	if got := c.Combine(100, 100, 100, true, false); got != 100 {
		t.Errorf("generic all-perfect = %v, want 100", got)
	}
}
