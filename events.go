package cadence

// EventSink is the interface for optional integrations (ECS bridges,
// analytics, test recorders). When set on a Stage, engine events are
// forwarded to it synchronously, in the order they occur within a tick.
type EventSink interface {
	Emit(event Event)
}

// Event carries engine event data for an EventSink.
type Event struct {
	Type EventType
	Tick uint64
	// Region is the owning region's name (visibility, task and counter events).
	Region string
	// Target is the task name (EventTaskComplete) or counter name
	// (EventCounterWrap) or menu name (menu events).
	Target string
	// Visible is the new visibility (EventVisibility).
	Visible bool
	// Trigger is what caused the change (menu events).
	Trigger MenuTrigger
	// Wraps is the counter's total wrap count (EventCounterWrap).
	Wraps uint64
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event Event) {
	f(event)
}

// EventRecorder is an EventSink that keeps every event in memory.
type EventRecorder struct {
	Events []Event
}

// Emit appends event.
func (r *EventRecorder) Emit(event Event) {
	r.Events = append(r.Events, event)
}

// Count returns how many recorded events have type t.
func (r *EventRecorder) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
