package cadence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// easings maps lower-cased names to gween easing functions. The short CSS
// style names map onto the quadratic curves.
var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"easein":    ease.InQuad,
	"easeout":   ease.OutQuad,
	"easeinout": ease.InOutQuad,

	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"outbounce":  ease.OutBounce,
}

// EasingByName looks up an easing function. Names are case-insensitive and
// may use dashes or underscores ("ease-out", "in_out_cubic"). An empty name
// returns ease.Linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// EasingNames returns the registered easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
