package cadence

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEasingByName(t *testing.T) {
	tests := []struct {
		name string
		want ease.TweenFunc
	}{
		{"", ease.Linear},
		{"linear", ease.Linear},
		{"easeOut", ease.OutQuad},
		{"ease-in", ease.InQuad},
		{"easeInOut", ease.InOutQuad},
		{"OutCubic", ease.OutCubic},
		{"in_out_sine", ease.InOutSine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := EasingByName(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Compare by sampling; funcs are not comparable.
			for _, x := range []float32{0.1, 0.5, 0.9} {
				if got, want := fn(x, 0, 1, 1), tt.want(x, 0, 1, 1); got != want {
					t.Errorf("f(%v) = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestEasingByName_Unknown(t *testing.T) {
	if _, err := EasingByName("wobble"); err == nil {
		t.Error("expected error for unknown easing")
	}
}

func TestEasingNamesSorted(t *testing.T) {
	names := EasingNames()
	if len(names) == 0 {
		t.Fatal("no easings registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
