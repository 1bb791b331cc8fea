package cadence

type syntheticKind uint8

const (
	injectClick syntheticKind = iota
	injectKey
	injectScrollTo
	injectScrollBy
	injectResize
)

// syntheticEvent is a single queued input event. Pointer events use screen
// coordinates; scroll events use page coordinates.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	key    Key
}

// InjectClick queues a left-button click at the given screen coordinates.
// Queued input is applied at the start of the next Tick.
func (s *Stage) InjectClick(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectClick, x: x, y: y, button: MouseButtonLeft})
}

// InjectButtonClick queues a click with the given button.
func (s *Stage) InjectButtonClick(x, y float64, button MouseButton) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectClick, x: x, y: y, button: button})
}

// InjectKey queues a key press.
func (s *Stage) InjectKey(key Key) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectKey, key: key})
}

// InjectScroll queues an absolute scroll to page offset (x, y).
func (s *Stage) InjectScroll(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectScrollTo, x: x, y: y})
}

// InjectScrollBy queues a relative scroll.
func (s *Stage) InjectScrollBy(dx, dy float64) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectScrollBy, x: dx, y: dy})
}

// InjectResize queues a viewport resize.
func (s *Stage) InjectResize(width, height float64) {
	s.injectQ = append(s.injectQ, syntheticEvent{kind: injectResize, x: width, y: height})
}

// PendingInput returns the number of queued input events.
func (s *Stage) PendingInput() int {
	return len(s.injectQ)
}

// processInjectedInput applies every queued event in arrival order. Events
// queued by handlers while draining wait for the next tick.
func (s *Stage) processInjectedInput() {
	n := len(s.injectQ)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		evt := s.injectQ[i]
		switch evt.kind {
		case injectClick:
			s.dispatcher.DispatchClick(evt.x, evt.y, evt.button)
		case injectKey:
			s.dispatcher.DispatchKey(evt.key)
		case injectScrollTo:
			s.setScroll(Vec2{X: evt.x, Y: evt.y})
		case injectScrollBy:
			s.setScroll(Vec2{X: s.scroll.X + evt.x, Y: s.scroll.Y + evt.y})
		case injectResize:
			s.setViewport(Size{Width: evt.x, Height: evt.y})
		}
	}
	rest := copy(s.injectQ, s.injectQ[n:])
	s.injectQ = s.injectQ[:rest]
}
