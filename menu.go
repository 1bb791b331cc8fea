package cadence

import "time"

// MenuTrigger names what caused a menu transition.
type MenuTrigger uint8

const (
	TriggerToggle       MenuTrigger = iota // the toggle control was activated
	TriggerCancelKey                       // the cancel key was pressed
	TriggerOutside                         // a click landed outside panel and toggle
	TriggerCloseControl                    // the explicit close control was activated
	TriggerLink                            // a navigation link inside the panel was activated
	TriggerProgrammatic                    // Open or Close was called directly
	TriggerTeardown                        // the menu was disposed while open
)

func (t MenuTrigger) String() string {
	switch t {
	case TriggerToggle:
		return "toggle"
	case TriggerCancelKey:
		return "cancel-key"
	case TriggerOutside:
		return "outside"
	case TriggerCloseControl:
		return "close-control"
	case TriggerLink:
		return "link"
	case TriggerProgrammatic:
		return "programmatic"
	case TriggerTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// MenuLink is a navigation entry inside the panel. Activating it closes the
// menu.
type MenuLink struct {
	Name   string
	Bounds Rect
}

// MenuConfig lays out a dropdown menu in screen coordinates.
type MenuConfig struct {
	Name string
	// Toggle is the button that opens and closes the menu.
	Toggle Rect
	// Panel is the dropdown area. Clicks inside it never count as outside.
	Panel Rect
	// Close is the explicit close button inside the panel. Zero disables it.
	Close Rect
	Links []MenuLink
	// CancelKey closes the menu. Defaults to KeyEscape.
	CancelKey Key
	// Presence, when set, animates the panel in and out.
	Presence *PresenceConfig
}

// MenuChange is passed to OnChange observers after every transition.
type MenuChange struct {
	Open    bool
	Trigger MenuTrigger
}

// Menu is a two-state (Closed, Open) interaction state machine. Its
// outside-click and cancel-key listeners are registered exactly while it is
// open: entering Open registers them before returning, and every path out of
// Open, including Dispose, removes them before returning.
type Menu struct {
	Name string

	d         *Dispatcher
	panel     Rect
	cancelKey Key

	toggle    *Control
	closeCtrl *Control
	links     []*Control

	open      bool
	disposed  bool
	gen       uint32
	listeners []ListenerHandle

	presence    *Presence
	transitions uint64
	onChange    []func(MenuChange)
}

// NewMenu creates a closed menu and registers its controls with d.
func NewMenu(d *Dispatcher, cfg MenuConfig) *Menu {
	m := &Menu{
		Name:      cfg.Name,
		d:         d,
		panel:     cfg.Panel,
		cancelKey: cfg.CancelKey,
		gen:       1,
	}
	if m.cancelKey == KeyUnknown {
		m.cancelKey = KeyEscape
	}

	m.toggle = &Control{Name: cfg.Name + "-toggle", Bounds: cfg.Toggle}
	m.toggle.OnClick = m.guard(func(ClickContext) { m.Toggle() })
	d.AddControl(m.toggle)

	// Controls inside the panel are only clickable while the menu is open.
	if cfg.Close != (Rect{}) {
		m.closeCtrl = &Control{Name: cfg.Name + "-close", Bounds: cfg.Close, Disabled: true}
		m.closeCtrl.OnClick = m.guard(func(ClickContext) { m.close(TriggerCloseControl) })
		d.AddControl(m.closeCtrl)
	}
	for _, l := range cfg.Links {
		c := &Control{Name: l.Name, Bounds: l.Bounds, Disabled: true}
		c.OnClick = m.guard(func(ClickContext) { m.close(TriggerLink) })
		d.AddControl(c)
		m.links = append(m.links, c)
	}

	if cfg.Presence != nil {
		m.presence = NewPresence(*cfg.Presence)
	}
	return m
}

// guard wraps a callback so it becomes a no-op once the menu is disposed.
func (m *Menu) guard(fn func(ClickContext)) func(ClickContext) {
	gen := m.gen
	return func(ctx ClickContext) {
		if m.disposed || m.gen != gen {
			return
		}
		fn(ctx)
	}
}

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool {
	return m.open
}

// IsDisposed reports whether Dispose has been called.
func (m *Menu) IsDisposed() bool {
	return m.disposed
}

// Transitions returns how many state changes have occurred.
func (m *Menu) Transitions() uint64 {
	return m.transitions
}

// ListenerCount returns the number of document-level listeners the menu
// currently holds.
func (m *Menu) ListenerCount() int {
	n := 0
	for _, h := range m.listeners {
		if h.Active() {
			n++
		}
	}
	return n
}

// ToggleControl returns the control that toggles the menu.
func (m *Menu) ToggleControl() *Control {
	return m.toggle
}

// CloseControl returns the explicit close control, or nil.
func (m *Menu) CloseControl() *Control {
	return m.closeCtrl
}

// PanelBounds returns the dropdown area.
func (m *Menu) PanelBounds() Rect {
	return m.panel
}

// LinkControls returns the navigation link controls in order.
func (m *Menu) LinkControls() []*Control {
	return m.links
}

// Presence returns the panel's presence animator, or nil.
func (m *Menu) Presence() *Presence {
	return m.presence
}

// Mounted reports whether the panel should be drawn. Without a presence
// animator this equals IsOpen.
func (m *Menu) Mounted() bool {
	if m.presence != nil {
		return m.presence.Mounted()
	}
	return m.open
}

// OnChange registers fn to observe transitions.
func (m *Menu) OnChange(fn func(MenuChange)) {
	m.onChange = append(m.onChange, fn)
}

// Toggle opens a closed menu or closes an open one.
func (m *Menu) Toggle() {
	if m.open {
		m.close(TriggerToggle)
		return
	}
	m.openWith(TriggerToggle)
}

// Open opens the menu. Opening an open menu is a no-op.
func (m *Menu) Open() {
	m.openWith(TriggerProgrammatic)
}

// Close closes the menu. Closing a closed menu is a no-op.
func (m *Menu) Close() {
	m.close(TriggerProgrammatic)
}

// Update advances the presence animation, if any.
func (m *Menu) Update(dt time.Duration) {
	if m.presence != nil && !m.disposed {
		m.presence.Update(dt)
	}
}

// Dispose tears the menu down. An open menu is closed first so its listeners
// are removed; afterwards every method and callback is a no-op.
func (m *Menu) Dispose() {
	if m.disposed {
		return
	}
	if m.open {
		m.close(TriggerTeardown)
	}
	m.d.RemoveControl(m.toggle)
	if m.closeCtrl != nil {
		m.d.RemoveControl(m.closeCtrl)
	}
	for _, c := range m.links {
		m.d.RemoveControl(c)
	}
	m.disposed = true
	m.gen++
}

func (m *Menu) openWith(trigger MenuTrigger) bool {
	if m.disposed || m.open {
		return false
	}
	m.open = true

	gen := m.gen
	m.listeners = append(m.listeners,
		m.d.OnClick(func(ctx ClickContext) {
			if m.disposed || m.gen != gen || !m.open {
				return
			}
			if m.isOutside(ctx.X, ctx.Y) {
				m.close(TriggerOutside)
			}
		}),
		m.d.OnKey(func(ctx KeyContext) {
			if m.disposed || m.gen != gen || !m.open {
				return
			}
			if ctx.Key == m.cancelKey {
				m.close(TriggerCancelKey)
			}
		}),
	)
	m.setPanelControls(true)
	if m.presence != nil {
		m.presence.Show()
	}
	m.notify(trigger)
	return true
}

func (m *Menu) close(trigger MenuTrigger) bool {
	if m.disposed || !m.open {
		return false
	}
	m.open = false

	for _, h := range m.listeners {
		h.Remove()
	}
	m.listeners = m.listeners[:0]
	m.setPanelControls(false)
	if m.presence != nil {
		m.presence.Hide()
	}
	m.notify(trigger)
	return true
}

// isOutside reports whether (x, y) is outside both the panel and the toggle.
// Clicks on the toggle belong to Toggle alone.
func (m *Menu) isOutside(x, y float64) bool {
	return !m.panel.Contains(x, y) && !m.toggle.Contains(x, y)
}

func (m *Menu) setPanelControls(enabled bool) {
	if m.closeCtrl != nil {
		m.closeCtrl.Disabled = !enabled
	}
	for _, c := range m.links {
		c.Disabled = !enabled
	}
}

func (m *Menu) notify(trigger MenuTrigger) {
	m.transitions++
	change := MenuChange{Open: m.open, Trigger: trigger}
	for _, fn := range m.onChange {
		fn(change)
	}
}
