package cadence

// ObserveOptions configures how a region's visibility is reported.
type ObserveOptions struct {
	// Margin grows or shrinks the viewport before intersecting. A negative
	// bottom margin of 20% means the region must cross a line 20% above the
	// bottom edge before it counts as visible.
	Margin Margin
	// Once detaches the observation after the first visible event.
	Once bool
}

// VisibilityEvent is delivered to an observation callback when the region's
// visibility changes.
type VisibilityEvent struct {
	Region  *Region
	Visible bool
	Tick    uint64
}

// Observation is a live subscription created by Tracker.Observe.
type Observation struct {
	tracker *Tracker
	region  *Region
	owner   regionToken
	opts    ObserveOptions
	fn      func(VisibilityEvent)

	armedTick uint64
	visible   bool
	fired     bool
	stopped   bool
}

// Stop detaches the observation. No events are delivered after Stop returns.
func (o *Observation) Stop() {
	o.stopped = true
}

// Active reports whether the observation still receives evaluations.
func (o *Observation) Active() bool {
	return !o.stopped && o.owner.valid()
}

// Fired reports whether a visible event has been delivered at least once.
func (o *Observation) Fired() bool {
	return o.fired
}

// Tracker evaluates region visibility against a scrolling viewport.
// Evaluation only happens in Update; Observe never reports synchronously, so
// a region that is already in view at setup fires on the next tick and the
// renderer gets to paint the initial state first.
type Tracker struct {
	viewport     Rect
	observations []*Observation
	tick         uint64
	begun        bool
}

// NewTracker creates a tracker with the given page-space viewport.
func NewTracker(viewport Rect) *Tracker {
	return &Tracker{viewport: viewport}
}

// SetViewport replaces the page-space viewport (scroll offset and size).
// The change is picked up on the next Update.
func (t *Tracker) SetViewport(vp Rect) {
	t.viewport = vp
}

// Viewport returns the current page-space viewport.
func (t *Tracker) Viewport() Rect {
	return t.viewport
}

// Observe starts tracking region. fn receives visibility transitions from the
// next Update onward.
func (t *Tracker) Observe(region *Region, opts ObserveOptions, fn func(VisibilityEvent)) *Observation {
	o := &Observation{
		tracker:   t,
		region:    region,
		owner:     region.token(),
		opts:      opts,
		fn:        fn,
		armedTick: t.tick,
	}
	if region.disposed {
		o.stopped = true
		return o
	}
	t.observations = append(t.observations, o)
	region.attachObservation(o)
	return o
}

// begin opens the next tick early, so observations created before Update in
// the same tick wait for the following one.
func (t *Tracker) begin() {
	if !t.begun {
		t.tick++
		t.begun = true
	}
}

// Len returns the number of observations still attached.
func (t *Tracker) Len() int {
	n := 0
	for _, o := range t.observations {
		if o.Active() {
			n++
		}
	}
	return n
}

// Update advances the tracker by one tick and delivers visibility events.
// Observations created during this call are evaluated on the next one.
func (t *Tracker) Update() {
	if !t.begun {
		t.tick++
	}
	t.begun = false

	// Only walk observations that existed when the tick began.
	n := len(t.observations)
	for i := 0; i < n; i++ {
		o := t.observations[i]
		if !o.Active() || o.armedTick >= t.tick {
			continue
		}
		t.evaluate(o)
	}

	t.compact()
}

func (t *Tracker) evaluate(o *Observation) {
	area := t.viewport.Expand(o.opts.Margin)
	inView := o.region.Bounds.Overlaps(area)

	switch {
	case inView && !o.visible:
		o.visible = true
		o.fired = true
		if o.opts.Once {
			o.stopped = true
		}
		t.deliver(o, true)
	case !inView && o.visible:
		o.visible = false
		if !o.opts.Once {
			t.deliver(o, false)
		}
	}
}

func (t *Tracker) deliver(o *Observation, visible bool) {
	o.region.visible = visible
	if o.fn != nil {
		o.fn(VisibilityEvent{Region: o.region, Visible: visible, Tick: t.tick})
	}
}

// compact drops stopped observations, preserving order.
func (t *Tracker) compact() {
	live := t.observations[:0]
	for _, o := range t.observations {
		if o.Active() {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(t.observations); i++ {
		t.observations[i] = nil
	}
	t.observations = live
}
