package cadence

import (
	"log/slog"
	"time"
)

// Stage is the top-level object that owns regions, their tasks and counters,
// the visibility tracker, the input dispatcher and the menus. It is driven by
// a host frame loop calling Tick once per frame, and the rendering layer reads
// the result through Snapshot.
//
// Everything runs on the caller's goroutine; nothing in Stage is safe for
// concurrent use.
type Stage struct {
	tracker    *Tracker
	dispatcher *Dispatcher

	regions  []*Region
	tasks    []*Task
	counters []*Counter
	menus    []*Menu

	viewport Size
	page     Size
	scroll   Vec2

	tick       uint64
	injectQ    []syntheticEvent
	updateFunc func(dt time.Duration)
	testRunner *TestRunner
	sink       EventSink

	logger *slog.Logger
	debug  bool
}

// NewStage creates a stage with the given viewport size and the scroll
// position at the top of the page.
func NewStage(viewport Size) *Stage {
	s := &Stage{
		dispatcher: NewDispatcher(),
		viewport:   viewport,
		logger:     slog.New(slog.DiscardHandler),
	}
	s.tracker = NewTracker(s.viewportRect())
	return s
}

// Tracker returns the stage's visibility tracker.
func (s *Stage) Tracker() *Tracker {
	return s.tracker
}

// Dispatcher returns the stage's input dispatcher.
func (s *Stage) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// TickCount returns the number of ticks run so far.
func (s *Stage) TickCount() uint64 {
	return s.tick
}

// SetPageSize sets the scrollable page size. Scroll offsets are clamped so the
// viewport stays on the page. A zero size disables clamping.
func (s *Stage) SetPageSize(page Size) {
	s.page = page
	s.setScroll(s.scroll)
}

// Viewport returns the viewport size.
func (s *Stage) Viewport() Size {
	return s.viewport
}

// Scroll returns the current scroll offset.
func (s *Stage) Scroll() Vec2 {
	return s.scroll
}

// Parallax returns the vertical offset of a layer that moves factor times as
// fast as the page scroll. Derived on every call.
func (s *Stage) Parallax(factor float64) float64 {
	return s.scroll.Y * factor
}

// SetEventSink sets the optional event sink.
func (s *Stage) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetUpdateFunc registers fn to run at the end of every Tick, after all
// engine state has advanced.
func (s *Stage) SetUpdateFunc(fn func(dt time.Duration)) {
	s.updateFunc = fn
}

// --- Regions ---

// AddRegion mounts a new region.
func (s *Stage) AddRegion(name string, bounds Rect) *Region {
	r := NewRegion(name, bounds)
	s.regions = append(s.regions, r)
	return r
}

// Region returns the first live region with the given name, or nil.
func (s *Stage) Region(name string) *Region {
	for _, r := range s.regions {
		if r.Name == name && !r.disposed {
			return r
		}
	}
	return nil
}

// Regions returns the live regions. The returned slice MUST NOT be mutated.
func (s *Stage) Regions() []*Region {
	return s.regions
}

// --- Tasks ---

// AddTask creates an idle task owned by region. A nil region leaves the task
// unowned; it then lives until the stage is discarded.
func (s *Stage) AddTask(region *Region, cfg TaskConfig) *Task {
	t := NewTask(cfg)
	if region != nil {
		region.attachTask(t)
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Ambient creates a task owned by region and starts it immediately,
// independent of visibility.
func (s *Stage) Ambient(region *Region, cfg TaskConfig) *Task {
	t := s.AddTask(region, cfg)
	t.Start()
	return t
}

// Reveal creates tasks owned by region that start when the region becomes
// visible. With opts.Once false, losing visibility resets them to their
// initial state so the next reveal plays from the start.
func (s *Stage) Reveal(region *Region, opts ObserveOptions, cfgs ...TaskConfig) (*Observation, []*Task) {
	tasks := make([]*Task, len(cfgs))
	for i, cfg := range cfgs {
		tasks[i] = s.AddTask(region, cfg)
	}
	obs := s.observe(region, opts, func(e VisibilityEvent) {
		for _, t := range tasks {
			if e.Visible {
				t.Start()
			} else {
				t.Reset()
			}
		}
	})
	return obs, tasks
}

// AddStagger creates an empty stagger group owned by region. Tasks added with
// StaggerTask are driven by the stage.
func (s *Stage) AddStagger(region *Region, name string, baseDelay, childOffset time.Duration) *StaggerGroup {
	g := NewStaggerGroup(name, baseDelay, childOffset)
	if region != nil {
		region.attachGroup(g)
	}
	return g
}

// StaggerTask creates a task owned by region and appends it to g.
func (s *Stage) StaggerTask(region *Region, g *StaggerGroup, cfg TaskConfig) *Task {
	return g.Add(s.AddTask(region, cfg))
}

// RevealGroup starts g when region becomes visible. With opts.Once false,
// losing visibility resets the group.
func (s *Stage) RevealGroup(region *Region, opts ObserveOptions, g *StaggerGroup) *Observation {
	return s.observe(region, opts, func(e VisibilityEvent) {
		if e.Visible {
			g.Start()
		} else {
			g.Reset()
		}
	})
}

// Observe tracks region visibility and forwards events to fn.
func (s *Stage) Observe(region *Region, opts ObserveOptions, fn func(VisibilityEvent)) *Observation {
	return s.observe(region, opts, fn)
}

func (s *Stage) observe(region *Region, opts ObserveOptions, fn func(VisibilityEvent)) *Observation {
	return s.tracker.Observe(region, opts, func(e VisibilityEvent) {
		s.emit(Event{Type: EventVisibility, Tick: s.tick, Region: e.Region.Name, Visible: e.Visible})
		if fn != nil {
			fn(e)
		}
	})
}

// --- Counters ---

// AddCounter creates a counter owned by region (nil for unowned). The stage
// advances it by the tick delta.
func (s *Stage) AddCounter(region *Region, cfg CounterConfig) *Counter {
	c := NewCounter(cfg)
	if region != nil {
		region.attachCounter(c)
	}
	s.counters = append(s.counters, c)
	return c
}

// Counter returns the first live counter with the given name, or nil.
func (s *Stage) Counter(name string) *Counter {
	for _, c := range s.counters {
		if c.Name == name && !c.stopped {
			return c
		}
	}
	return nil
}

// --- Menus ---

// AddMenu creates a closed menu wired to the stage's dispatcher.
func (s *Stage) AddMenu(cfg MenuConfig) *Menu {
	m := NewMenu(s.dispatcher, cfg)
	m.OnChange(func(c MenuChange) {
		t := EventMenuClose
		if c.Open {
			t = EventMenuOpen
		}
		s.emit(Event{Type: t, Tick: s.tick, Target: m.Name, Trigger: c.Trigger})
		s.logger.Debug("menu transition", "menu", m.Name, "open", c.Open, "trigger", c.Trigger.String())
	})
	s.menus = append(s.menus, m)
	return m
}

// Menu returns the first live menu with the given name, or nil.
func (s *Stage) Menu(name string) *Menu {
	for _, m := range s.menus {
		if m.Name == name && !m.disposed {
			return m
		}
	}
	return nil
}

// Menus returns the live menus. The returned slice MUST NOT be mutated.
func (s *Stage) Menus() []*Menu {
	return s.menus
}

// --- Tick ---

// Tick advances the stage by dt. Within one tick, in order: the attached test
// runner steps, queued input is applied in arrival order, visibility is
// evaluated, tasks advance, counters advance, menus animate, and disposed
// state is pruned. A task started by this tick's visibility pass is evaluated
// in this same tick.
func (s *Stage) Tick(dt time.Duration) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.tick++
	s.tracker.begin()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	s.tracker.SetViewport(s.viewportRect())
	s.tracker.Update()

	for _, t := range s.tasks {
		wasDone := t.IsComplete()
		t.Update(dt)
		if !wasDone && t.IsComplete() {
			s.emit(Event{Type: EventTaskComplete, Tick: s.tick, Region: ownerName(t.owner), Target: t.Name})
		}
	}
	for _, c := range s.counters {
		before := c.wraps
		c.Update(dt)
		if c.wraps != before {
			s.emit(Event{Type: EventCounterWrap, Tick: s.tick, Region: ownerName(c.owner), Target: c.Name, Wraps: c.wraps})
		}
	}
	for _, m := range s.menus {
		m.Update(dt)
	}

	s.prune()

	if s.updateFunc != nil {
		s.updateFunc(dt)
	}

	if s.debug {
		s.debugLog(s.collectStats(time.Since(t0)))
	}
}

func ownerName(tok regionToken) string {
	if tok.r == nil {
		return ""
	}
	return tok.r.Name
}

// prune drops disposed regions, stopped tasks and counters, and disposed
// menus, preserving order.
func (s *Stage) prune() {
	regions := s.regions[:0]
	for _, r := range s.regions {
		if !r.disposed {
			regions = append(regions, r)
		}
	}
	clear(s.regions[len(regions):])
	s.regions = regions

	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			tasks = append(tasks, t)
		}
	}
	clear(s.tasks[len(tasks):])
	s.tasks = tasks

	counters := s.counters[:0]
	for _, c := range s.counters {
		if !c.stopped {
			counters = append(counters, c)
		}
	}
	clear(s.counters[len(counters):])
	s.counters = counters

	menus := s.menus[:0]
	for _, m := range s.menus {
		if !m.disposed {
			menus = append(menus, m)
		}
	}
	clear(s.menus[len(menus):])
	s.menus = menus
}

// Dispose tears the whole stage down: every region and menu is disposed.
func (s *Stage) Dispose() {
	for _, m := range s.menus {
		m.Dispose()
	}
	for _, r := range s.regions {
		r.Dispose()
	}
	s.prune()
}

// --- Viewport ---

func (s *Stage) viewportRect() Rect {
	return Rect{X: s.scroll.X, Y: s.scroll.Y, Width: s.viewport.Width, Height: s.viewport.Height}
}

func (s *Stage) setScroll(v Vec2) {
	if s.page != (Size{}) {
		v.X = clamp(v.X, 0, max(0, s.page.Width-s.viewport.Width))
		v.Y = clamp(v.Y, 0, max(0, s.page.Height-s.viewport.Height))
	} else {
		v.X = max(0, v.X)
		v.Y = max(0, v.Y)
	}
	s.scroll = v
}

func (s *Stage) setViewport(size Size) {
	s.viewport = size
	s.setScroll(s.scroll)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func (s *Stage) emit(e Event) {
	if s.sink != nil {
		s.sink.Emit(e)
	}
}
