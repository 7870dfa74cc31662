package core

import "time"

// FixedStep paces simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS. The
// first call to ShouldStep fires immediately.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration between ticks.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Restart arms the controller so the next check fires immediately.
func (f *FixedStep) Restart() {
	f.last = time.Time{}
	f.accumulator = f.step
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.Tick(time.Now())
}

// Tick is ShouldStep with an explicit clock reading.
func (f *FixedStep) Tick(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
