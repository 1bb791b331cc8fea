package cadence

import "testing"

func TestInjectClick(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})

	var clicked bool
	s.Dispatcher().AddControl(&Control{
		Name:   "btn",
		Bounds: Rect{Width: 100, Height: 100},
		OnClick: func(ctx ClickContext) {
			clicked = true
			if ctx.Button != MouseButtonLeft {
				t.Error("expected left button")
			}
		},
	})

	s.InjectClick(50, 50)
	if s.PendingInput() != 1 {
		t.Fatalf("expected 1 queued event, got %d", s.PendingInput())
	}
	if clicked {
		t.Fatal("click should not fire before the next tick")
	}

	s.processInjectedInput()
	if s.PendingInput() != 0 {
		t.Fatalf("expected 0 remaining events, got %d", s.PendingInput())
	}
	if !clicked {
		t.Error("click should fire when the queue drains")
	}
}

func TestInjectPreservesArrivalOrder(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	s.SetPageSize(Size{Width: 800, Height: 5000})

	var seen []float64
	s.Dispatcher().OnClick(func(ClickContext) { seen = append(seen, s.Scroll().Y) })

	s.InjectScroll(0, 100)
	s.InjectClick(1, 1)
	s.InjectScrollBy(0, 50)
	s.InjectClick(1, 1)
	s.processInjectedInput()

	if len(seen) != 2 || seen[0] != 100 || seen[1] != 150 {
		t.Errorf("scroll seen by clicks = %v, want [100 150]", seen)
	}
}

func TestInjectDuringDrainWaitsForNextTick(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	keys := 0
	s.Dispatcher().OnKey(func(KeyContext) {
		keys++
		if keys == 1 {
			s.InjectKey(KeyEnter)
		}
	})

	s.InjectKey(KeyEscape)
	s.processInjectedInput()
	if keys != 1 {
		t.Fatalf("keys = %d, want 1", keys)
	}
	if s.PendingInput() != 1 {
		t.Fatalf("re-queued key should wait, pending %d", s.PendingInput())
	}
	s.processInjectedInput()
	if keys != 2 {
		t.Errorf("keys = %d, want 2", keys)
	}
}

func TestInjectResize(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	s.InjectResize(1024, 768)
	s.processInjectedInput()
	if s.Viewport() != (Size{Width: 1024, Height: 768}) {
		t.Errorf("viewport = %+v", s.Viewport())
	}
}

func TestInjectButtonClick(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	var got MouseButton
	s.Dispatcher().OnClick(func(ctx ClickContext) { got = ctx.Button })
	s.InjectButtonClick(0, 0, MouseButtonRight)
	s.processInjectedInput()
	if got != MouseButtonRight {
		t.Errorf("button = %v, want right", got)
	}
}
