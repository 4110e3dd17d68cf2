package scene

// MaxStep caps a single frame delta so a stalled frame (window drag,
// breakpoint) does not teleport every body.
const MaxStep = 0.25

// Clock turns a monotonic seconds counter into per-frame simulation steps.
type Clock struct {
	Scale  float64
	Paused bool

	last    float64
	started bool
	frames  int
	elapsed float64
}

func NewClock(scale float64) *Clock {
	return &Clock{Scale: scale}
}

// Tick records the time now (seconds) and returns the wall delta since
// the previous tick and the scaled simulation delta. The first tick
// returns zero for both.
func (c *Clock) Tick(now float64) (wall, sim float32) {
	if !c.started {
		c.started = true
		c.last = now
		return 0, 0
	}
	d := now - c.last
	c.last = now
	if d < 0 {
		d = 0
	}
	if d > MaxStep {
		d = MaxStep
	}
	c.frames++
	c.elapsed += d

	if c.Paused {
		return float32(d), 0
	}
	return float32(d), float32(d * c.Scale)
}

// AverageFrame returns the mean wall delta over all ticks in seconds.
func (c *Clock) AverageFrame() float64 {
	if c.frames == 0 {
		return 0
	}
	return c.elapsed / float64(c.frames)
}

func (c *Clock) Frames() int {
	return c.frames
}
