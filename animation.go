package cadence

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TaskConfig declares a property transition. It is a plain record; NewTask
// turns it into a runnable Task.
type TaskConfig struct {
	// Name identifies the render target the task drives. Several tasks may
	// share a name when they animate disjoint properties of one element.
	Name string

	From Props
	To   Props
	// Keyframes overrides From/To for a property with evenly spaced stops,
	// e.g. opacity [0.1, 0.2, 0.1]. Each segment is eased on its own.
	Keyframes map[string][]float64

	Duration time.Duration
	Delay    time.Duration
	// Ease defaults to ease.Linear.
	Ease      ease.TweenFunc
	Repeat    Repeat
	Direction Direction
}

// track animates one property through two or more stops.
type track struct {
	key   string
	stops []float64
	segs  []*gween.Tween
}

// Task is a property transition evaluated against elapsed time. Before Delay
// it holds From; during Duration it eases toward To; afterwards it either
// freezes at To or loops, depending on Repeat and Direction.
//
// A task owned by a region stops as soon as the region is disposed and is
// never evaluated again.
type Task struct {
	Name string

	from      Props
	to        Props
	duration  time.Duration
	delay     time.Duration
	repeat    Repeat
	direction Direction
	tracks    []track

	owner   regionToken
	value   Props
	elapsed time.Duration
	evals   uint64

	started bool
	fresh   bool
	done    bool
	stopped bool

	onComplete func(*Task)
}

// NewTask builds a task from cfg. The task is idle until Start is called.
func NewTask(cfg TaskConfig) *Task {
	fn := cfg.Ease
	if fn == nil {
		fn = ease.Linear
	}

	t := &Task{
		Name:      cfg.Name,
		from:      make(Props, len(cfg.From)),
		to:        make(Props, len(cfg.To)),
		duration:  cfg.Duration,
		delay:     cfg.Delay,
		repeat:    cfg.Repeat,
		direction: cfg.Direction,
	}
	t.from.Merge(cfg.From)
	t.to.Merge(cfg.To)

	// Properties present on only one side hold that value for the whole run.
	for k, v := range cfg.From {
		if _, ok := cfg.To[k]; !ok {
			t.to[k] = v
		}
	}
	for k, v := range cfg.To {
		if _, ok := cfg.From[k]; !ok {
			t.from[k] = v
		}
	}

	for k, stops := range cfg.Keyframes {
		if len(stops) == 0 {
			continue
		}
		t.from[k] = stops[0]
		t.to[k] = stops[len(stops)-1]
		if len(stops) == 1 {
			continue
		}
		t.tracks = append(t.tracks, newTrack(k, stops, cfg.Duration, fn))
	}
	for k, from := range t.from {
		if _, ok := cfg.Keyframes[k]; ok {
			continue
		}
		to := t.to[k]
		if from == to {
			continue
		}
		t.tracks = append(t.tracks, newTrack(k, []float64{from, to}, cfg.Duration, fn))
	}

	t.value = t.from.Clone()
	return t
}

func newTrack(key string, stops []float64, total time.Duration, fn ease.TweenFunc) track {
	tr := track{key: key, stops: append([]float64(nil), stops...)}
	// Too short to give every segment at least one nanosecond: jump to the
	// last stop like a zero-duration task.
	if total < time.Duration(len(stops)-1) {
		return tr
	}
	segDur := float32(total.Seconds()) / float32(len(stops)-1)
	tr.segs = make([]*gween.Tween, len(stops)-1)
	for i := range tr.segs {
		tr.segs[i] = gween.New(float32(stops[i]), float32(stops[i+1]), segDur, fn)
	}
	return tr
}

// sample returns the track value at phase p within [0, total).
func (tr *track) sample(p, total time.Duration) float64 {
	n := len(tr.segs)
	if n == 0 {
		return tr.stops[len(tr.stops)-1]
	}
	segLen := total / time.Duration(n)
	if segLen <= 0 {
		return tr.stops[len(tr.stops)-1]
	}
	idx := int(p / segLen)
	if idx >= n {
		idx = n - 1
	}
	local := p - time.Duration(idx)*segLen
	v, _ := tr.segs[idx].Set(float32(local.Seconds()))
	return float64(v)
}

// From returns the task's initial state. The returned map MUST NOT be mutated.
func (t *Task) From() Props { return t.from }

// To returns the task's final state. The returned map MUST NOT be mutated.
func (t *Task) To() Props { return t.to }

// Duration returns the length of one run.
func (t *Task) Duration() time.Duration { return t.duration }

// Delay returns the time the task holds From after Start.
func (t *Task) Delay() time.Duration { return t.delay }

// SetDelay replaces the start delay. StaggerGroup uses this to assign
// per-child offsets.
func (t *Task) SetDelay(d time.Duration) { t.delay = d }

// Repeat returns the task's repeat policy.
func (t *Task) Repeat() Repeat { return t.repeat }

// OnComplete registers fn to run once when a non-repeating task reaches To.
func (t *Task) OnComplete(fn func(*Task)) { t.onComplete = fn }

// Start arms the task from the beginning. The first Update after Start
// evaluates at zero elapsed time so the initial state is reported before any
// motion. Start on a stopped task is a no-op.
func (t *Task) Start() {
	if t.stopped || !t.owner.valid() {
		return
	}
	t.started = true
	t.fresh = true
	t.done = false
	t.elapsed = 0
	t.writeFrom()
}

// Reset returns the task to its idle, pre-delay state holding From.
func (t *Task) Reset() {
	if t.stopped {
		return
	}
	t.started = false
	t.fresh = false
	t.done = false
	t.elapsed = 0
	t.writeFrom()
}

func (t *Task) writeFrom() {
	for k, v := range t.from {
		t.value[k] = v
	}
}

// Started reports whether the task has been armed.
func (t *Task) Started() bool { return t.started }

// IsComplete reports whether a non-repeating task has reached To. Repeating
// tasks never complete.
func (t *Task) IsComplete() bool { return t.done }

// Stopped reports whether the task was stopped by its owner's disposal.
func (t *Task) Stopped() bool { return t.stopped }

// Elapsed returns the time since Start, including the delay.
func (t *Task) Elapsed() time.Duration { return t.elapsed }

// Evaluations returns how many times Update has evaluated the task.
func (t *Task) Evaluations() uint64 { return t.evals }

// Value returns the current state written by the last Update. The returned
// map is reused between updates and MUST NOT be retained or mutated.
func (t *Task) Value() Props { return t.value }

// Update advances the task by dt and writes the new state into Value. If the
// owning region has been disposed the task stops and nothing is written.
func (t *Task) Update(dt time.Duration) {
	if t.stopped {
		return
	}
	if !t.owner.valid() {
		t.stop()
		return
	}
	if !t.started || t.done {
		return
	}

	if t.fresh {
		t.fresh = false
	} else {
		t.elapsed += dt
	}
	t.evaluateInto(t.value, t.elapsed)
	t.evals++

	if t.repeat == RepeatNone && t.elapsed >= t.end() {
		t.done = true
		if t.onComplete != nil {
			t.onComplete(t)
		}
	}
}

// Evaluate returns the state at the given time since Start without touching
// the task's runtime state.
func (t *Task) Evaluate(elapsed time.Duration) Props {
	out := make(Props, len(t.from))
	t.evaluateInto(out, elapsed)
	return out
}

// end is the elapsed time at which a non-repeating task completes.
func (t *Task) end() time.Duration {
	if t.duration <= 0 {
		return t.delay
	}
	return t.delay + t.duration
}

func (t *Task) evaluateInto(dst Props, elapsed time.Duration) {
	local := elapsed - t.delay
	switch {
	case local < 0:
		t.fill(dst, t.from)
		return
	case t.duration <= 0:
		t.fill(dst, t.to)
		return
	case t.repeat == RepeatNone && local >= t.duration:
		t.fill(dst, t.to)
		return
	}

	phase := local
	if t.repeat == RepeatInfinite {
		loop := local / t.duration
		phase = local % t.duration
		if t.direction == DirectionAlternate && loop%2 == 1 {
			phase = t.duration - phase
			if phase == t.duration {
				t.fill(dst, t.to)
				return
			}
		}
	}

	// Constant properties first, then animated tracks.
	t.fill(dst, t.from)
	for i := range t.tracks {
		tr := &t.tracks[i]
		dst[tr.key] = tr.sample(phase, t.duration)
	}
}

func (t *Task) fill(dst, src Props) {
	for k, v := range src {
		dst[k] = v
	}
}

// stop permanently halts the task. Called when the owner is disposed.
func (t *Task) stop() {
	t.stopped = true
	t.started = false
}
