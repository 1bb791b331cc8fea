package cadence

import (
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	vp := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{X: 10, Y: 10, Width: 10, Height: 10}, true},
		{"partially below", Rect{X: 0, Y: 90, Width: 10, Height: 50}, true},
		{"touching bottom edge", Rect{X: 0, Y: 100, Width: 10, Height: 10}, false},
		{"fully below", Rect{X: 0, Y: 200, Width: 10, Height: 10}, false},
		{"zero height inside", Rect{X: 10, Y: 50, Width: 10}, true},
		{"zero height on edge", Rect{X: 10, Y: 100, Width: 10}, true},
		{"zero height outside", Rect{X: 10, Y: 101, Width: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Overlaps(vp); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOverlapsEmptyViewport(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if r.Overlaps(Rect{X: 0, Y: 0, Width: 100}) {
		t.Error("nothing overlaps a collapsed viewport")
	}
}

func TestRectExpand(t *testing.T) {
	vp := Rect{X: 0, Y: 100, Width: 200, Height: 400}

	got := vp.Expand(UniformMargin(-50))
	want := Rect{X: 50, Y: 150, Width: 100, Height: 300}
	if got != want {
		t.Errorf("Expand(-50) = %+v, want %+v", got, want)
	}

	got = vp.Expand(Margin{Bottom: Pct(-20)})
	want = Rect{X: 0, Y: 100, Width: 200, Height: 320}
	if got != want {
		t.Errorf("Expand(bottom -20%%) = %+v, want %+v", got, want)
	}

	got = vp.Expand(UniformMargin(10))
	want = Rect{X: -10, Y: 90, Width: 220, Height: 420}
	if got != want {
		t.Errorf("Expand(10) = %+v, want %+v", got, want)
	}
}

func TestRectExpandCollapses(t *testing.T) {
	vp := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	got := vp.Expand(UniformMargin(-80))
	if got.Width != 0 || got.Height != 0 {
		t.Fatalf("expected collapsed rect, got %+v", got)
	}
	if got.X != 50 || got.Y != 50 {
		t.Errorf("collapsed rect should sit at center, got (%v,%v)", got.X, got.Y)
	}
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		in   string
		want Margin
	}{
		{"", Margin{}},
		{"-100px", UniformMargin(-100)},
		{"-50", UniformMargin(-50)},
		{"10px 20px", Margin{Top: Px(10), Right: Px(20), Bottom: Px(10), Left: Px(20)}},
		{"1px 2px 3px", Margin{Top: Px(1), Right: Px(2), Bottom: Px(3), Left: Px(2)}},
		{"0px 0px -20% 0px", Margin{Top: Px(0), Right: Px(0), Bottom: Pct(-20), Left: Px(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMargin(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMargin(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMargin_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "10em", "1px 2px 3px 4px 5px", "px"} {
		if _, err := ParseMargin(in); err == nil {
			t.Errorf("ParseMargin(%q): expected error", in)
		}
	}
}

func TestMarginString(t *testing.T) {
	m := Margin{Top: Px(0), Right: Px(0), Bottom: Pct(-20), Left: Px(0)}
	if got := m.String(); got != "0px 0px -20% 0px" {
		t.Errorf("String = %q", got)
	}
}

func TestPropsCloneIsIndependent(t *testing.T) {
	p := Props{PropOpacity: 1}
	c := p.Clone()
	c[PropOpacity] = 0
	if p[PropOpacity] != 1 {
		t.Error("Clone shares storage with the original")
	}
	if Props(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestPropsGet(t *testing.T) {
	p := Props{PropY: 3}
	if p.Get(PropY, 0) != 3 {
		t.Error("Get should return the stored value")
	}
	if p.Get(PropOpacity, 1) != 1 {
		t.Error("Get should return the default for missing keys")
	}
}

func TestKeyByName(t *testing.T) {
	if KeyByName("escape") != KeyEscape || KeyByName("esc") != KeyEscape {
		t.Error("escape aliases")
	}
	if KeyByName("nope") != KeyUnknown {
		t.Error("unknown key")
	}
	if KeyEscape.String() != "escape" {
		t.Errorf("KeyEscape.String() = %q", KeyEscape.String())
	}
}
