package cadence

import "testing"

var (
	toggleRect = Rect{X: 700, Y: 10, Width: 40, Height: 40}
	panelRect  = Rect{X: 500, Y: 60, Width: 280, Height: 300}
	closeRect  = Rect{X: 740, Y: 70, Width: 30, Height: 30}
	linkRect   = Rect{X: 520, Y: 120, Width: 200, Height: 40}
)

func newTestMenu(d *Dispatcher) *Menu {
	return NewMenu(d, MenuConfig{
		Name:   "nav",
		Toggle: toggleRect,
		Panel:  panelRect,
		Close:  closeRect,
		Links:  []MenuLink{{Name: "features", Bounds: linkRect}},
	})
}

func clickCenter(d *Dispatcher, r Rect) {
	d.DispatchClick(r.X+r.Width/2, r.Y+r.Height/2, MouseButtonLeft)
}

func TestMenuStartsClosed(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)
	if m.IsOpen() {
		t.Error("menu should start closed")
	}
	if d.ListenerCount() != 0 || m.ListenerCount() != 0 {
		t.Error("closed menu should hold no listeners")
	}
}

func TestMenuOpenRegistersListeners(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)

	clickCenter(d, toggleRect)
	if !m.IsOpen() {
		t.Fatal("toggle click should open the menu")
	}
	if d.ListenerCount() != 2 || m.ListenerCount() != 2 {
		t.Errorf("open menu listeners = %d/%d, want 2", d.ListenerCount(), m.ListenerCount())
	}
}

func TestMenuCloseSequences(t *testing.T) {
	tests := []struct {
		name    string
		close   func(d *Dispatcher, m *Menu)
		trigger MenuTrigger
	}{
		{"outside click", func(d *Dispatcher, m *Menu) { d.DispatchClick(100, 500, MouseButtonLeft) }, TriggerOutside},
		{"cancel key", func(d *Dispatcher, m *Menu) { d.DispatchKey(KeyEscape) }, TriggerCancelKey},
		{"toggle click", func(d *Dispatcher, m *Menu) { clickCenter(d, toggleRect) }, TriggerToggle},
		{"close control", func(d *Dispatcher, m *Menu) { clickCenter(d, closeRect) }, TriggerCloseControl},
		{"nav link", func(d *Dispatcher, m *Menu) { clickCenter(d, linkRect) }, TriggerLink},
		{"programmatic", func(d *Dispatcher, m *Menu) { m.Close() }, TriggerProgrammatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher()
			m := newTestMenu(d)
			var changes []MenuChange
			m.OnChange(func(c MenuChange) { changes = append(changes, c) })

			clickCenter(d, toggleRect)
			tt.close(d, m)

			if m.IsOpen() {
				t.Fatal("menu should be closed")
			}
			if d.ListenerCount() != 0 {
				t.Errorf("listeners after close = %d, want 0", d.ListenerCount())
			}
			if len(changes) != 2 {
				t.Fatalf("changes = %v, want open then close", changes)
			}
			if changes[1].Open || changes[1].Trigger != tt.trigger {
				t.Errorf("close change = %+v, want trigger %v", changes[1], tt.trigger)
			}
		})
	}
}

func TestMenuClickInsidePanelStaysOpen(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)
	clickCenter(d, toggleRect)

	d.DispatchClick(panelRect.X+5, panelRect.Y+250, MouseButtonLeft)
	if !m.IsOpen() {
		t.Error("click inside the panel should not close the menu")
	}
}

func TestMenuToggleClickIsSingleTransition(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)

	clickCenter(d, toggleRect)
	if m.Transitions() != 1 {
		t.Fatalf("open transitions = %d, want 1", m.Transitions())
	}
	// The outside listener registered by this click must not see it, and the
	// toggle is never outside, so one click is exactly one transition.
	clickCenter(d, toggleRect)
	if m.IsOpen() {
		t.Error("toggle while open should close")
	}
	if m.Transitions() != 2 {
		t.Errorf("transitions = %d, want 2", m.Transitions())
	}
}

func TestMenuIdempotentTransitions(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)

	m.Close()
	if m.Transitions() != 0 {
		t.Error("closing a closed menu should be a no-op")
	}
	m.Open()
	m.Open()
	if m.Transitions() != 1 || d.ListenerCount() != 2 {
		t.Errorf("double open: transitions=%d listeners=%d", m.Transitions(), d.ListenerCount())
	}

	// Two close triggers in one batch collapse into one transition.
	d.DispatchKey(KeyEscape)
	d.DispatchKey(KeyEscape)
	if m.Transitions() != 2 {
		t.Errorf("transitions = %d, want 2", m.Transitions())
	}
}

func TestMenuOtherKeysIgnored(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)
	m.Open()
	d.DispatchKey(KeyEnter)
	if !m.IsOpen() {
		t.Error("non-cancel key should not close the menu")
	}
}

func TestMenuCustomCancelKey(t *testing.T) {
	d := NewDispatcher()
	m := NewMenu(d, MenuConfig{Name: "m", Toggle: toggleRect, Panel: panelRect, CancelKey: KeyTab})
	m.Open()
	d.DispatchKey(KeyEscape)
	if !m.IsOpen() {
		t.Fatal("escape should not close a menu bound to tab")
	}
	d.DispatchKey(KeyTab)
	if m.IsOpen() {
		t.Error("tab should close the menu")
	}
}

func TestMenuPanelControlsOnlyWhileOpen(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)

	if !m.CloseControl().Disabled || !m.LinkControls()[0].Disabled {
		t.Error("panel controls should start disabled")
	}
	// A click on the hidden link does nothing.
	clickCenter(d, linkRect)
	if m.Transitions() != 0 {
		t.Error("click on a hidden link should not transition")
	}
	m.Open()
	if m.CloseControl().Disabled || m.LinkControls()[0].Disabled {
		t.Error("panel controls should be enabled while open")
	}
}

func TestMenuDisposeWhileOpen(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)
	var last MenuChange
	m.OnChange(func(c MenuChange) { last = c })

	m.Open()
	m.Dispose()

	if m.IsOpen() {
		t.Error("disposed menu should be closed")
	}
	if last.Trigger != TriggerTeardown {
		t.Errorf("last trigger = %v, want teardown", last.Trigger)
	}
	if d.ListenerCount() != 0 {
		t.Errorf("listeners after dispose = %d, want 0", d.ListenerCount())
	}
	if len(d.Controls()) != 0 {
		t.Errorf("controls after dispose = %d, want 0", len(d.Controls()))
	}

	transitions := m.Transitions()
	m.Open()
	m.Toggle()
	clickCenter(d, toggleRect)
	if m.IsOpen() || m.Transitions() != transitions {
		t.Error("disposed menu must ignore every action")
	}
	m.Dispose()
}

func TestMenuStaleHandlerAfterDispose(t *testing.T) {
	d := NewDispatcher()
	m := newTestMenu(d)
	handler := m.ToggleControl().OnClick
	m.Dispose()

	handler(ClickContext{})
	if m.IsOpen() {
		t.Error("stale toggle handler reopened a disposed menu")
	}
}

func TestMenuWithPresenceStaysMountedDuringExit(t *testing.T) {
	d := NewDispatcher()
	cfg := HeroMenuPresence(3)
	m := NewMenu(d, MenuConfig{Name: "nav", Toggle: toggleRect, Panel: panelRect, Presence: &cfg})

	m.Open()
	for range 100 {
		m.Update(ms10)
	}
	if m.Presence().State() != PresenceShown {
		t.Fatalf("presence = %v, want shown", m.Presence().State())
	}

	m.Close()
	if m.IsOpen() {
		t.Fatal("menu should be closed")
	}
	if !m.Mounted() {
		t.Fatal("panel should stay mounted while the exit animation runs")
	}
	m.Update(ms10)
	for range 20 {
		m.Update(ms10)
	}
	if m.Mounted() {
		t.Error("panel should unmount after the exit animation")
	}
}

func TestMenuTriggerString(t *testing.T) {
	if TriggerOutside.String() != "outside" {
		t.Errorf("String = %q", TriggerOutside.String())
	}
	if MenuTrigger(200).String() != "unknown" {
		t.Error("unknown trigger")
	}
}
