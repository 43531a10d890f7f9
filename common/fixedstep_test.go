package common

import (
	"math"
	"testing"
)

func TestAccumulatorStepsOnlyFixedDeltas(t *testing.T) {
	cases := []struct {
		name      string
		step      float64
		maxDelta  float64
		deltas    []float64
		wantSteps int
	}{
		{"exact_single", 1.0 / 60, 0.25, []float64{1.0 / 60}, 1},
		{"under_one_step", 1.0 / 60, 0.25, []float64{0.01}, 0},
		{"two_frames_sum", 1.0 / 60, 0.25, []float64{0.01, 0.01}, 1},
		{"big_frame_many_steps", 1.0 / 60, 0.25, []float64{0.1}, 6},
		{"clamped_spike", 1.0 / 60, 0.25, []float64{10}, 15},
		{"zero_delta", 1.0 / 60, 0.25, []float64{0, 0, 0}, 0},
		{"negative_delta_ignored", 1.0 / 60, 0.25, []float64{-1}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAccumulator(c.step, c.maxDelta)
			steps := 0
			a.Tick(0, nil) // no-op, must not call fn
			for _, d := range c.deltas {
				a.Tick(d, func(step float64) {
					steps++
					if step != c.step {
						t.Fatalf("stepped with %v, want fixed %v", step, c.step)
					}
				})
			}
			if steps != c.wantSteps {
				t.Fatalf("got %d steps, want %d", steps, c.wantSteps)
			}
		})
	}
}

func TestAccumulatorBanksRemainder(t *testing.T) {
	a := NewAccumulator(1.0/60, 0.25)

	a.Tick(0.025, func(float64) {})
	want := 0.025 - 1.0/60
	if math.Abs(a.Banked()-want) > 1e-12 {
		t.Fatalf("banked %v, want %v", a.Banked(), want)
	}

	// remainder plus a sub-step delta crosses the threshold
	steps := 0
	a.Tick(0.01, func(float64) { steps++ })
	if steps != 1 {
		t.Fatalf("remainder not carried: got %d steps, want 1", steps)
	}

	a.Reset()
	if a.Banked() != 0 {
		t.Fatalf("banked %v after reset, want 0", a.Banked())
	}
}

func TestAccumulatorDegenerateConfig(t *testing.T) {
	// non-positive step falls back to StepTime; maxDelta below step is
	// raised so a full-step frame still advances
	a := NewAccumulator(0, 0)
	if a.Step() != StepTime {
		t.Fatalf("step %v, want %v", a.Step(), StepTime)
	}
	steps := 0
	a.Tick(StepTime, func(float64) { steps++ })
	if steps != 1 {
		t.Fatalf("got %d steps, want 1", steps)
	}
}
