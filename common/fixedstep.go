package common

// Accumulator banks variable wall-clock frame time and pays it out in
// constant-size simulation steps, so physics behaves the same at any frame
// rate. See gafferongames.com/post/fix_your_timestep.
type Accumulator struct {
	step     float64
	maxDelta float64
	banked   float64
}

// NewAccumulator returns an accumulator that steps by step seconds and
// clamps any single frame delta to maxDelta seconds.
func NewAccumulator(step, maxDelta float64) *Accumulator {
	if step <= 0 {
		step = StepTime
	}
	if maxDelta < step {
		maxDelta = step
	}
	return &Accumulator{step: step, maxDelta: maxDelta}
}

// Step returns the fixed step size in seconds.
func (a *Accumulator) Step() float64 {
	return a.step
}

// Banked returns the currently banked remainder in seconds.
func (a *Accumulator) Banked() float64 {
	return a.banked
}

// Tick banks delta (clamped to maxDelta) and invokes fn once per whole step
// covered by the bank, always with the fixed step size. The remainder stays
// banked for the next frame.
func (a *Accumulator) Tick(delta float64, fn func(step float64)) {
	if delta < 0 {
		delta = 0
	}
	if delta > a.maxDelta {
		delta = a.maxDelta
	}
	a.banked += delta
	for a.banked >= a.step {
		a.banked -= a.step
		fn(a.step)
	}
}

// Reset drops any banked time. Used when the simulation clock rebases, e.g.
// on unpause or respawn.
func (a *Accumulator) Reset() {
	a.banked = 0
}
