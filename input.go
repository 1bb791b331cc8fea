package cadence

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// ClickContext carries click event data. Control is the topmost control under
// the pointer, or nil when the click landed on empty page.
type ClickContext struct {
	Control *Control
	X, Y    float64
	Button  MouseButton
}

// KeyContext carries key event data.
type KeyContext struct {
	Key Key
}

// Control is a clickable screen-space rectangle such as a button or link.
// Controls are hit-tested in reverse registration order (last added is on top).
type Control struct {
	Name   string
	Bounds Rect
	// Disabled controls are skipped by hit testing.
	Disabled bool
	OnClick  func(ClickContext)
}

// Contains reports whether the screen point lies inside the control.
func (c *Control) Contains(x, y float64) bool {
	return c.Bounds.Contains(x, y)
}

// --- Listener registry ---

type listenerKind uint8

const (
	listenClick listenerKind = iota
	listenKey
)

type clickListener struct {
	id uint32
	fn func(ClickContext)
}

type keyListener struct {
	id uint32
	fn func(KeyContext)
}

type listenerRegistry struct {
	click  []clickListener
	key    []keyListener
	nextID uint32
}

// ListenerHandle allows removing a registered document-level listener.
type ListenerHandle struct {
	id   uint32
	reg  *listenerRegistry
	kind listenerKind
}

// Remove unregisters the listener so it no longer fires, including later in a
// dispatch that is currently running. Removing twice is a no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case listenClick:
		h.reg.click = removeClickListener(h.reg.click, h.id)
	case listenKey:
		h.reg.key = removeKeyListener(h.reg.key, h.id)
	}
}

// Active reports whether the listener is still registered.
func (h ListenerHandle) Active() bool {
	if h.reg == nil {
		return false
	}
	switch h.kind {
	case listenClick:
		return h.reg.hasClick(h.id)
	case listenKey:
		return h.reg.hasKey(h.id)
	}
	return false
}

func removeClickListener(s []clickListener, id uint32) []clickListener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickListener{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeKeyListener(s []keyListener, id uint32) []keyListener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = keyListener{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *listenerRegistry) hasClick(id uint32) bool {
	for i := range r.click {
		if r.click[i].id == id {
			return true
		}
	}
	return false
}

func (r *listenerRegistry) hasKey(id uint32) bool {
	for i := range r.key {
		if r.key[i].id == id {
			return true
		}
	}
	return false
}

// --- Dispatcher ---

// Dispatcher routes clicks and key presses. A click first reaches the
// topmost control under the pointer, then every document-level click
// listener. Listeners registered while an event is being dispatched do not
// see that event; listeners removed during it do not fire later in it.
type Dispatcher struct {
	reg      listenerRegistry
	controls []*Control

	// Reused listener snapshots for the outermost dispatch. A dispatch
	// started from inside a listener takes its own copy.
	clickBuf []clickListener
	keyBuf   []keyListener
	depth    int
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnClick registers a document-level click listener.
func (d *Dispatcher) OnClick(fn func(ClickContext)) ListenerHandle {
	d.reg.nextID++
	id := d.reg.nextID
	d.reg.click = append(d.reg.click, clickListener{id: id, fn: fn})
	return ListenerHandle{id: id, reg: &d.reg, kind: listenClick}
}

// OnKey registers a document-level key listener.
func (d *Dispatcher) OnKey(fn func(KeyContext)) ListenerHandle {
	d.reg.nextID++
	id := d.reg.nextID
	d.reg.key = append(d.reg.key, keyListener{id: id, fn: fn})
	return ListenerHandle{id: id, reg: &d.reg, kind: listenKey}
}

// ListenerCount returns the number of registered document-level listeners.
func (d *Dispatcher) ListenerCount() int {
	return len(d.reg.click) + len(d.reg.key)
}

// AddControl registers a control on top of all existing ones.
func (d *Dispatcher) AddControl(c *Control) {
	d.controls = append(d.controls, c)
}

// RemoveControl unregisters a control.
func (d *Dispatcher) RemoveControl(c *Control) {
	for i, existing := range d.controls {
		if existing == c {
			d.controls = append(d.controls[:i], d.controls[i+1:]...)
			return
		}
	}
}

// Controls returns the registered controls. The returned slice MUST NOT be
// mutated.
func (d *Dispatcher) Controls() []*Control {
	return d.controls
}

// HitTest returns the topmost enabled control containing (x, y), or nil.
func (d *Dispatcher) HitTest(x, y float64) *Control {
	for i := len(d.controls) - 1; i >= 0; i-- {
		c := d.controls[i]
		if !c.Disabled && c.Contains(x, y) {
			return c
		}
	}
	return nil
}

// DispatchClick delivers a click at screen coordinates (x, y).
func (d *Dispatcher) DispatchClick(x, y float64, button MouseButton) {
	limit := d.reg.nextID
	ctx := ClickContext{Control: d.HitTest(x, y), X: x, Y: y, Button: button}

	// Target first.
	if ctx.Control != nil && ctx.Control.OnClick != nil {
		ctx.Control.OnClick(ctx)
	}

	// Then document listeners, from a snapshot so handlers may register or
	// remove listeners while we iterate.
	var buf []clickListener
	if d.depth == 0 {
		buf = d.clickBuf[:0]
	}
	buf = append(buf, d.reg.click...)
	if d.depth == 0 {
		d.clickBuf = buf
	}
	d.depth++
	defer func() { d.depth-- }()

	for _, l := range buf {
		if l.id > limit || !d.reg.hasClick(l.id) {
			continue
		}
		l.fn(ctx)
	}
}

// DispatchKey delivers a key press to every document-level key listener.
func (d *Dispatcher) DispatchKey(key Key) {
	limit := d.reg.nextID
	ctx := KeyContext{Key: key}

	var buf []keyListener
	if d.depth == 0 {
		buf = d.keyBuf[:0]
	}
	buf = append(buf, d.reg.key...)
	if d.depth == 0 {
		d.keyBuf = buf
	}
	d.depth++
	defer func() { d.depth-- }()

	for _, l := range buf {
		if l.id > limit || !d.reg.hasKey(l.id) {
			continue
		}
		l.fn(ctx)
	}
}
