package cadence

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// LabeledFrame is a snapshot captured by a "snapshot" step.
type LabeledFrame struct {
	Label string
	Frame Frame
}

// TestRunner sequences injected input and snapshots across ticks for
// scripted scenario tests. Attach to a Stage via SetTestRunner.
//
// Supported actions: click (x, y, button), key (key), scroll (x, y),
// scrollBy (x, y), resize (width, height), wait (frames) and
// snapshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	snapshots []LabeledFrame
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "click", "scroll", "scrollBy", "wait", "snapshot":
	case "key":
		if KeyByName(st.Key) == KeyUnknown {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	case "resize":
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize needs a positive width and height")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner's step method
// is called from Stage.Tick before queued input is applied.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Snapshots returns the frames captured so far, in script order.
func (r *TestRunner) Snapshots() []LabeledFrame {
	return r.snapshots
}

// Snapshot returns the first captured frame with the given label.
func (r *TestRunner) Snapshot(label string) (Frame, bool) {
	for _, lf := range r.snapshots {
		if lf.Label == label {
			return lf.Frame, true
		}
	}
	return Frame{}, false
}

// step advances the test runner by one tick. Called from Stage.Tick.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQ) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		// Captured before this tick advances anything, so it reflects the
		// state left by the previous tick.
		r.snapshots = append(r.snapshots, LabeledFrame{Label: st.Label, Frame: s.Snapshot()})
	case "click":
		s.InjectButtonClick(st.X, st.Y, buttonByName(st.Button))
	case "key":
		s.InjectKey(KeyByName(st.Key))
	case "scroll":
		s.InjectScroll(st.X, st.Y)
	case "scrollBy":
		s.InjectScrollBy(st.X, st.Y)
	case "resize":
		s.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQ) == 0 {
		r.done = true
	}
}

func buttonByName(name string) MouseButton {
	switch name {
	case "right":
		return MouseButtonRight
	case "middle":
		return MouseButtonMiddle
	default:
		return MouseButtonLeft
	}
}
