package cadence

import (
	"math"
	"time"
)

// CounterConfig configures a Counter.
type CounterConfig struct {
	Name     string
	Ceiling  float64
	Step     float64
	Interval time.Duration
	// LevelWidth is the value span of one display level. Defaults to 10.
	LevelWidth float64
}

// Counter is a free-running value advanced by Step every Interval. When the
// value reaches or exceeds Ceiling it resets to zero in the same tick; no
// partial overflow is carried. There is no pause or resume.
//
// The value is kept as a count of steps since the last wrap, so it is always
// exactly steps*Step and never accumulates rounding error.
type Counter struct {
	Name     string
	Ceiling  float64
	Step     float64
	Interval time.Duration
	// LevelWidth is used by CurrentLevel.
	LevelWidth float64

	steps   uint64
	ticks   uint64
	wraps   uint64
	accum   time.Duration
	owner   regionToken
	stopped bool

	onWrap func(*Counter)
}

// NewCounter creates a counter at zero. A counter with a non-positive Ceiling
// or Step never advances.
func NewCounter(cfg CounterConfig) *Counter {
	width := cfg.LevelWidth
	if width <= 0 {
		width = defaultLevelWidth
	}
	return &Counter{
		Name:       cfg.Name,
		Ceiling:    cfg.Ceiling,
		Step:       cfg.Step,
		Interval:   cfg.Interval,
		LevelWidth: width,
	}
}

const defaultLevelWidth = 10

// OnWrap registers fn to run each time the counter resets to zero.
func (c *Counter) OnWrap(fn func(*Counter)) {
	c.onWrap = fn
}

// Value returns the current value in [0, Ceiling).
func (c *Counter) Value() float64 {
	return float64(c.steps) * c.Step
}

// Level returns floor(Value/width)+1. It is recomputed on every call.
func (c *Counter) Level(width float64) int {
	if width <= 0 {
		return 1
	}
	return int(math.Floor(c.Value()/width)) + 1
}

// CurrentLevel returns Level(LevelWidth).
func (c *Counter) CurrentLevel() int {
	return c.Level(c.LevelWidth)
}

// Percent returns floor(Value), the whole-number part shown next to a bar.
func (c *Counter) Percent() int {
	return int(math.Floor(c.Value()))
}

// Fraction returns Value/Ceiling in [0, 1).
func (c *Counter) Fraction() float64 {
	if c.Ceiling <= 0 {
		return 0
	}
	return c.Value() / c.Ceiling
}

// Ticks returns the total number of ticks applied.
func (c *Counter) Ticks() uint64 {
	return c.ticks
}

// Wraps returns how many times the counter has reset to zero.
func (c *Counter) Wraps() uint64 {
	return c.wraps
}

// Stopped reports whether the counter was torn down with its owner.
func (c *Counter) Stopped() bool {
	return c.stopped
}

// Tick adds one Step, wrapping to zero at Ceiling.
func (c *Counter) Tick() {
	if c.stopped {
		return
	}
	if !c.owner.valid() {
		c.stop()
		return
	}
	if c.Ceiling <= 0 || c.Step <= 0 {
		return
	}
	c.ticks++
	c.steps++
	if c.Value() >= c.Ceiling {
		c.steps = 0
		c.wraps++
		if c.onWrap != nil {
			c.onWrap(c)
		}
	}
}

// Update accumulates dt and applies one Tick per elapsed Interval.
func (c *Counter) Update(dt time.Duration) {
	if c.stopped || c.Interval <= 0 {
		return
	}
	c.accum += dt
	for c.accum >= c.Interval && !c.stopped {
		c.accum -= c.Interval
		c.Tick()
	}
}

func (c *Counter) stop() {
	c.stopped = true
}
