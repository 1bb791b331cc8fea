package cadence

import (
	"testing"
	"time"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "escape"},
			{"action": "snapshot", "label": "after"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "snapshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Key != "escape" {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_BadSteps(t *testing.T) {
	for _, data := range []string{
		`{"steps": [{"action": "teleport"}]}`,
		`{"steps": [{"action": "key", "key": "f13"}]}`,
		`{"steps": [{"action": "resize", "width": 0, "height": 10}]}`,
	} {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("expected error for %s", data)
		}
	}
}

func TestTestRunner_MenuScenario(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	s.SetPageSize(Size{Width: 800, Height: 3000})
	m := s.AddMenu(MenuConfig{Name: "nav", Toggle: toggleRect, Panel: panelRect})

	runner, err := LoadTestScript([]byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "click", "x": 710, "y": 20},
			{"action": "snapshot", "label": "open"},
			{"action": "click", "x": 50, "y": 500},
			{"action": "snapshot", "label": "closed"},
			{"action": "scroll", "x": 0, "y": 900},
			{"action": "wait", "frames": 2},
			{"action": "snapshot", "label": "scrolled"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 50 && !runner.Done(); i++ {
		s.Tick(10 * time.Millisecond)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if m.IsOpen() {
		t.Error("menu should end closed")
	}
	if len(runner.Snapshots()) != 4 {
		t.Fatalf("snapshots = %d, want 4", len(runner.Snapshots()))
	}

	check := func(label string, open bool) {
		f, ok := runner.Snapshot(label)
		if !ok {
			t.Fatalf("missing snapshot %q", label)
		}
		if f.Menus["nav"].Open != open {
			t.Errorf("%s: open = %v, want %v", label, f.Menus["nav"].Open, open)
		}
	}
	check("initial", false)
	check("open", true)
	check("closed", false)

	f, _ := runner.Snapshot("scrolled")
	if f.Scroll.Y != 900 {
		t.Errorf("scrolled snapshot scroll = %v, want 900", f.Scroll.Y)
	}
}

func TestTestRunner_WaitsForQueue(t *testing.T) {
	s := NewStage(Size{Width: 800, Height: 600})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "resize", "width": 400, "height": 300}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	s.Tick(10 * time.Millisecond)
	if s.Viewport().Width != 400 {
		t.Fatalf("resize should be applied in the tick it was injected, got %v", s.Viewport())
	}
	s.Tick(10 * time.Millisecond)
	if !runner.Done() {
		t.Error("runner should be done once the queue is empty")
	}
}
