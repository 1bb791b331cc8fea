package cadence

// regionIDCounter is not atomic; a stage is driven from one goroutine.
var regionIDCounter uint32

func nextRegionID() uint32 {
	regionIDCounter++
	return regionIDCounter
}

// Region is a rectangular area of the page whose visibility and animation
// state are tracked. The stage owns regions: AddRegion creates one on mount and
// Dispose destroys it on unmount. Tasks, stagger groups, counters and
// observations attached to a region share its lifetime.
type Region struct {
	// Identity
	ID   uint32
	Name string

	// Bounds is the region's box in page coordinates (before scrolling).
	Bounds Rect

	visible  bool
	disposed bool
	gen      uint32

	tasks        []*Task
	groups       []*StaggerGroup
	counters     []*Counter
	observations []*Observation
}

// NewRegion creates a region with the given name and page-space bounds.
func NewRegion(name string, bounds Rect) *Region {
	return &Region{ID: nextRegionID(), Name: name, Bounds: bounds, gen: 1}
}

// Visible reports the last visibility value delivered for this region.
func (r *Region) Visible() bool {
	return r.visible
}

// IsDisposed reports whether Dispose has been called.
func (r *Region) IsDisposed() bool {
	return r.disposed
}

// Dispose destroys the region. All of its observations are detached and its
// tasks, groups and counters stop immediately; no callback referencing the
// region runs afterwards. Calling Dispose twice is a no-op.
func (r *Region) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.gen++

	for _, o := range r.observations {
		o.Stop()
	}
	for _, t := range r.tasks {
		t.stop()
	}
	for _, c := range r.counters {
		c.stop()
	}
	r.observations = nil
	r.tasks = nil
	r.groups = nil
	r.counters = nil
}

// Tasks returns the tasks owned by the region. The returned slice MUST NOT be
// mutated.
func (r *Region) Tasks() []*Task {
	return r.tasks
}

// token captures the region identity at the time it is taken. A token taken
// before Dispose is never valid afterwards.
func (r *Region) token() regionToken {
	return regionToken{r: r, gen: r.gen}
}

func (r *Region) attachTask(t *Task) {
	t.owner = r.token()
	r.tasks = append(r.tasks, t)
}

func (r *Region) attachGroup(g *StaggerGroup) {
	r.groups = append(r.groups, g)
}

func (r *Region) attachCounter(c *Counter) {
	c.owner = r.token()
	r.counters = append(r.counters, c)
}

func (r *Region) attachObservation(o *Observation) {
	r.observations = append(r.observations, o)
}

// regionToken is a weak reference to a region. Callbacks hold tokens instead of
// bare pointers and check valid before touching any region state.
type regionToken struct {
	r   *Region
	gen uint32
}

// valid reports whether the referenced region is still alive. A zero token
// (no owner) is always valid.
func (t regionToken) valid() bool {
	if t.r == nil {
		return true
	}
	return !t.r.disposed && t.r.gen == t.gen
}
