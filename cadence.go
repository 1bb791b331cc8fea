package cadence

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair, used for viewport dimensions.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Overlaps reports whether r and other share a region of positive area.
// A degenerate rectangle (zero width or height) overlaps other when it lies
// inside or on the edge of it, so that zero-height markers can still be
// observed.
func (r Rect) Overlaps(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return r.Intersects(other)
	}
	if other.Width <= 0 || other.Height <= 0 {
		return false
	}
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Expand grows (positive values) or shrinks (negative values) the rectangle on
// each side by the resolved margin. The result never has negative dimensions.
func (r Rect) Expand(m Margin) Rect {
	top := m.Top.Resolve(r.Height)
	right := m.Right.Resolve(r.Width)
	bottom := m.Bottom.Resolve(r.Height)
	left := m.Left.Resolve(r.Width)

	out := Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
	if out.Width < 0 {
		out.X += out.Width / 2
		out.Width = 0
	}
	if out.Height < 0 {
		out.Y += out.Height / 2
		out.Height = 0
	}
	return out
}

// Unit selects how a Length is resolved.
type Unit uint8

const (
	UnitPixels  Unit = iota // absolute pixels
	UnitPercent             // percentage of the reference dimension
)

// Length is a single margin distance, in pixels or percent.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixels} }

// Pct returns a percentage length.
func Pct(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Resolve converts the length to pixels against the reference dimension.
func (l Length) Resolve(ref float64) float64 {
	if l.Unit == UnitPercent {
		return ref * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Unit == UnitPercent {
		return v + "%"
	}
	return v + "px"
}

// Margin is a four-sided proximity margin. Positive sides extend the observed
// area past the viewport edge; negative sides pull it inward, so a region must
// travel further into view before it counts as visible.
type Margin struct {
	Top, Right, Bottom, Left Length
}

// UniformMargin returns a margin with the same pixel distance on every side.
func UniformMargin(px float64) Margin {
	l := Px(px)
	return Margin{Top: l, Right: l, Bottom: l, Left: l}
}

// IsZero reports whether every side resolves to zero.
func (m Margin) IsZero() bool {
	return m.Top.Value == 0 && m.Right.Value == 0 && m.Bottom.Value == 0 && m.Left.Value == 0
}

func (m Margin) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// ParseMargin parses CSS-style margin shorthand with one to four values, each
// suffixed with "px" or "%". A bare number is read as pixels.
//
//	"-100px"            all sides
//	"10px 20px"         vertical, horizontal
//	"0px 0px -20% 0px"  top, right, bottom, left
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("parse margin %q: too many values", s)
	}
	parts := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return Margin{}, fmt.Errorf("parse margin %q: %w", s, err)
		}
		parts[i] = l
	}

	switch len(parts) {
	case 1:
		return Margin{parts[0], parts[0], parts[0], parts[0]}, nil
	case 2:
		return Margin{parts[0], parts[1], parts[0], parts[1]}, nil
	case 3:
		return Margin{parts[0], parts[1], parts[2], parts[1]}, nil
	default:
		return Margin{parts[0], parts[1], parts[2], parts[3]}, nil
	}
}

func parseLength(s string) (Length, error) {
	unit := UnitPixels
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPercent
		num = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Well-known animated property names.
const (
	PropOpacity = "opacity"
	PropX       = "x"
	PropY       = "y"
	PropScale   = "scale"
	PropWidth   = "width"
)

// Props is a named property→value map, the unit of animation state handed to
// the rendering layer.
type Props map[string]float64

// Clone returns an independent copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Merge copies every entry of other into p, overwriting existing keys.
func (p Props) Merge(other Props) {
	for k, v := range other {
		p[k] = v
	}
}

// Get returns the value for key, or def when the key is absent.
func (p Props) Get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Repeat selects what a task does after its first run completes.
type Repeat uint8

const (
	RepeatNone     Repeat = iota // freeze at To
	RepeatInfinite               // loop until the owning region is disposed
)

func (r Repeat) String() string {
	if r == RepeatInfinite {
		return "infinite"
	}
	return "none"
}

// Direction selects how a repeating task plays each loop.
type Direction uint8

const (
	DirectionNormal    Direction = iota // every loop plays From→To
	DirectionAlternate                  // odd loops play To→From
)

func (d Direction) String() string {
	if d == DirectionAlternate {
		return "alternate"
	}
	return "normal"
}

// EventType identifies a kind of engine event delivered to an EventSink.
type EventType uint8

const (
	EventVisibility   EventType = iota // a tracked region changed visibility
	EventTaskComplete                  // a non-repeating task reached To
	EventCounterWrap                   // a counter reset to zero
	EventMenuOpen                      // the menu transitioned Closed→Open
	EventMenuClose                     // the menu transitioned Open→Closed
)

func (e EventType) String() string {
	switch e {
	case EventVisibility:
		return "visibility"
	case EventTaskComplete:
		return "task-complete"
	case EventCounterWrap:
		return "counter-wrap"
	case EventMenuOpen:
		return "menu-open"
	case EventMenuClose:
		return "menu-close"
	default:
		return "unknown"
	}
}

// Key identifies a keyboard key delivered through DispatchKey.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape      // cancel key
	KeyEnter
	KeySpace
	KeyTab
)

var keyNames = [...]string{"unknown", "escape", "enter", "space", "tab"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// KeyByName returns the key with the given lower-case name, or KeyUnknown.
func KeyByName(name string) Key {
	switch name {
	case "escape", "esc":
		return KeyEscape
	case "enter", "return":
		return KeyEnter
	case "space":
		return KeySpace
	case "tab":
		return KeyTab
	default:
		return KeyUnknown
	}
}
