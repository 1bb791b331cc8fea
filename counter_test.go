package cadence

import (
	"testing"
	"time"
)

func xpCounter() *Counter {
	return NewCounter(CounterConfig{
		Name:     "xp",
		Ceiling:  100,
		Step:     0.5,
		Interval: 100 * time.Millisecond,
	})
}

func TestCounterWrapsAfter200Ticks(t *testing.T) {
	c := xpCounter()
	wrapped := 0
	c.OnWrap(func(*Counter) { wrapped++ })

	for i := 1; i < 200; i++ {
		c.Tick()
		if c.Value() >= c.Ceiling {
			t.Fatalf("value %v reached ceiling at tick %d", c.Value(), i)
		}
	}
	if c.Value() != 99.5 {
		t.Errorf("value after 199 ticks = %v, want 99.5", c.Value())
	}
	c.Tick()
	if c.Value() != 0 {
		t.Errorf("value after 200 ticks = %v, want 0", c.Value())
	}
	if wrapped != 1 || c.Wraps() != 1 {
		t.Errorf("wraps = %d/%d, want 1", wrapped, c.Wraps())
	}
}

func TestCounterModularIdentity(t *testing.T) {
	tests := []struct {
		ceiling, step float64
	}{
		{100, 0.5},
		{1, 0.25},
		{10, 2},
	}
	for _, tt := range tests {
		c := NewCounter(CounterConfig{Ceiling: tt.ceiling, Step: tt.step, Interval: time.Millisecond})
		perWrap := uint64(tt.ceiling / tt.step)
		for n := uint64(1); n <= 3*perWrap+7; n++ {
			c.Tick()
			want := float64(n%perWrap) * tt.step
			if c.Value() != want {
				t.Fatalf("ceiling=%v step=%v: after %d ticks value = %v, want %v",
					tt.ceiling, tt.step, n, c.Value(), want)
			}
		}
	}
}

func TestCounterOverflowResetsToZero(t *testing.T) {
	c := NewCounter(CounterConfig{Ceiling: 10, Step: 3, Interval: time.Second})
	for range 3 {
		c.Tick()
	}
	if c.Value() != 9 {
		t.Fatalf("value = %v, want 9", c.Value())
	}
	c.Tick()
	if c.Value() != 0 {
		t.Errorf("value past ceiling = %v, want 0 with no carried overflow", c.Value())
	}
}

func TestCounterUpdateUsesInterval(t *testing.T) {
	c := xpCounter()
	c.Update(50 * time.Millisecond)
	if c.Ticks() != 0 {
		t.Fatal("no tick before a full interval")
	}
	c.Update(50 * time.Millisecond)
	if c.Ticks() != 1 {
		t.Fatalf("ticks = %d, want 1", c.Ticks())
	}
	c.Update(350 * time.Millisecond)
	if c.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4 (remainder carried)", c.Ticks())
	}

	d := xpCounter()
	for range 2000 {
		d.Update(10 * time.Millisecond)
	}
	if d.Ticks() != 200 || d.Value() != 0 {
		t.Errorf("20s of 10ms frames: ticks=%d value=%v, want 200 and 0", d.Ticks(), d.Value())
	}
}

func TestCounterDerivedReadings(t *testing.T) {
	c := xpCounter()
	for range 47 { // 23.5
		c.Tick()
	}
	if c.Value() != 23.5 {
		t.Fatalf("value = %v", c.Value())
	}
	if got := c.CurrentLevel(); got != 3 {
		t.Errorf("level = %d, want 3", got)
	}
	if got := c.Level(5); got != 5 {
		t.Errorf("Level(5) = %d, want 5", got)
	}
	if got := c.Percent(); got != 23 {
		t.Errorf("percent = %d, want 23", got)
	}
	if got := c.Fraction(); got != 0.235 {
		t.Errorf("fraction = %v, want 0.235", got)
	}
}

func TestCounterInvalidConfigNeverAdvances(t *testing.T) {
	c := NewCounter(CounterConfig{Ceiling: 0, Step: 1, Interval: time.Millisecond})
	c.Update(time.Second)
	if c.Value() != 0 || c.Ticks() != 0 {
		t.Error("counter with zero ceiling should never advance")
	}
}

func TestCounterStopsWithOwner(t *testing.T) {
	r := NewRegion("hero", Rect{Width: 10, Height: 10})
	c := xpCounter()
	r.attachCounter(c)

	c.Update(time.Second)
	if c.Ticks() != 10 {
		t.Fatalf("ticks = %d, want 10", c.Ticks())
	}
	r.Dispose()
	c.Update(time.Second)
	c.Tick()
	if c.Ticks() != 10 {
		t.Errorf("counter ticked after owner disposal: %d", c.Ticks())
	}
	if !c.Stopped() {
		t.Error("counter should be stopped")
	}
}
