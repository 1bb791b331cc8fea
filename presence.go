package cadence

import "time"

// PresenceState is the mount lifecycle of an element that animates in and out.
type PresenceState uint8

const (
	PresenceHidden   PresenceState = iota // unmounted; nothing to draw
	PresenceEntering                      // enter animation running
	PresenceShown                         // enter animation finished
	PresenceExiting                       // exit animation running; still drawn
)

func (s PresenceState) String() string {
	switch s {
	case PresenceHidden:
		return "hidden"
	case PresenceEntering:
		return "entering"
	case PresenceShown:
		return "shown"
	case PresenceExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// PresenceConfig describes the enter and exit animations of a panel and its
// staggered children.
type PresenceConfig struct {
	// Enter animates the panel from its hidden state to its shown state.
	Enter TaskConfig
	// Exit animates the panel back out. Its From is replaced by the panel's
	// current value when Hide is called, so an interrupted enter exits
	// smoothly.
	Exit TaskConfig

	// Children animate in with the panel, child i starting at
	// ChildDelay + i*ChildStagger. They are not animated on exit; they leave
	// with the panel.
	Children     []TaskConfig
	ChildDelay   time.Duration
	ChildStagger time.Duration
}

// Presence keeps an element mounted until its exit animation has finished.
type Presence struct {
	cfg      PresenceConfig
	state    PresenceState
	panel    *Task
	children *StaggerGroup
	hidden   Props
}

// NewPresence creates a hidden presence.
func NewPresence(cfg PresenceConfig) *Presence {
	p := &Presence{
		cfg:      cfg,
		children: NewStaggerGroup(cfg.Enter.Name+"-children", cfg.ChildDelay, cfg.ChildStagger),
	}
	for _, c := range cfg.Children {
		p.children.Add(NewTask(c))
	}
	p.panel = NewTask(cfg.Enter)
	p.hidden = p.panel.From().Clone()
	return p
}

// State returns the current lifecycle state.
func (p *Presence) State() PresenceState {
	return p.state
}

// Mounted reports whether the element should be drawn.
func (p *Presence) Mounted() bool {
	return p.state != PresenceHidden
}

// Show starts the enter animation. Showing while exiting enters again from
// the current value.
func (p *Presence) Show() {
	switch p.state {
	case PresenceEntering, PresenceShown:
		return
	case PresenceExiting:
		cfg := p.cfg.Enter
		cfg.From = p.panel.Value().Clone()
		cfg.Keyframes = nil
		p.panel = NewTask(cfg)
	default:
		p.panel = NewTask(p.cfg.Enter)
	}
	p.state = PresenceEntering
	p.panel.Start()
	p.children.Start()
}

// Hide starts the exit animation from the panel's current value.
func (p *Presence) Hide() {
	if p.state == PresenceHidden || p.state == PresenceExiting {
		return
	}
	cfg := p.cfg.Exit
	cfg.From = p.panel.Value().Clone()
	cfg.Keyframes = nil
	p.panel = NewTask(cfg)
	p.state = PresenceExiting
	p.panel.Start()
}

// Update advances the running animation.
func (p *Presence) Update(dt time.Duration) {
	switch p.state {
	case PresenceEntering:
		p.panel.Update(dt)
		p.children.Update(dt)
		if p.panel.IsComplete() && p.children.Done() {
			p.state = PresenceShown
		}
	case PresenceExiting:
		p.panel.Update(dt)
		if p.panel.IsComplete() {
			p.state = PresenceHidden
			p.children.Reset()
		}
	}
}

// Panel returns the panel's current state, or its hidden state when
// unmounted. The returned map MUST NOT be mutated.
func (p *Presence) Panel() Props {
	if p.state == PresenceHidden {
		return p.hidden
	}
	return p.panel.Value()
}

// Children returns the staggered child tasks in order.
func (p *Presence) Children() []*Task {
	return p.children.Children()
}
