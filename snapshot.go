package cadence

// CounterSnapshot is the read-only state of a counter.
type CounterSnapshot struct {
	Value    float64
	Fraction float64
	Level    int
	Percent  int
}

// MenuSnapshot is the read-only state of a menu.
type MenuSnapshot struct {
	Open     bool
	Mounted  bool
	Presence PresenceState
	// Panel is the panel's animated state; nil without a presence animator.
	Panel Props
	// Links holds one state per staggered child, in order.
	Links []Props
}

// Frame is everything the rendering layer needs for one frame. All maps are
// fresh copies owned by the caller.
type Frame struct {
	Tick   uint64
	Scroll Vec2
	// Targets maps task names to their merged current state. Tasks sharing a
	// name are merged in creation order.
	Targets  map[string]Props
	Counters map[string]CounterSnapshot
	Menus    map[string]MenuSnapshot
}

// Snapshot captures the current engine state. Tasks that have not started
// report their initial state, so the first frame always paints From.
func (s *Stage) Snapshot() Frame {
	f := Frame{
		Tick:     s.tick,
		Scroll:   s.scroll,
		Targets:  make(map[string]Props, len(s.tasks)),
		Counters: make(map[string]CounterSnapshot, len(s.counters)),
		Menus:    make(map[string]MenuSnapshot, len(s.menus)),
	}

	for _, t := range s.tasks {
		if t.stopped || !t.owner.valid() {
			continue
		}
		p, ok := f.Targets[t.Name]
		if !ok {
			p = make(Props, len(t.value))
			f.Targets[t.Name] = p
		}
		p.Merge(t.value)
	}

	for _, c := range s.counters {
		if c.stopped || !c.owner.valid() {
			continue
		}
		f.Counters[c.Name] = CounterSnapshot{
			Value:    c.Value(),
			Fraction: c.Fraction(),
			Level:    c.CurrentLevel(),
			Percent:  c.Percent(),
		}
	}

	for _, m := range s.menus {
		if m.disposed {
			continue
		}
		ms := MenuSnapshot{Open: m.open, Mounted: m.Mounted()}
		if p := m.presence; p != nil {
			ms.Presence = p.State()
			ms.Panel = p.Panel().Clone()
			for _, child := range p.Children() {
				ms.Links = append(ms.Links, child.Value().Clone())
			}
		}
		f.Menus[m.Name] = ms
	}
	return f
}
