package cadence

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/tanema/gween/ease"
)

// FadeUp reveals an element by fading it in while it rises dy pixels into
// place.
func FadeUp(name string, dy float64, duration, delay time.Duration) TaskConfig {
	return TaskConfig{
		Name:     name,
		From:     Props{PropOpacity: 0, PropY: dy},
		To:       Props{PropOpacity: 1, PropY: 0},
		Duration: duration,
		Delay:    delay,
		Ease:     ease.OutQuad,
	}
}

// FadeIn reveals an element by opacity alone.
func FadeIn(name string, duration, delay time.Duration) TaskConfig {
	return TaskConfig{
		Name:     name,
		From:     Props{PropOpacity: 0},
		To:       Props{PropOpacity: 1},
		Duration: duration,
		Delay:    delay,
		Ease:     ease.OutQuad,
	}
}

// SlideX reveals an element by fading it in while it slides dx pixels
// horizontally into place.
func SlideX(name string, dx float64, duration, delay time.Duration) TaskConfig {
	return TaskConfig{
		Name:     name,
		From:     Props{PropOpacity: 0, PropX: dx},
		To:       Props{PropOpacity: 1, PropX: 0},
		Duration: duration,
		Delay:    delay,
		Ease:     ease.Linear,
	}
}

// Bob is an ambient loop moving an element down dy pixels and back.
func Bob(name string, dy float64, period time.Duration) TaskConfig {
	return TaskConfig{
		Name:      name,
		Keyframes: map[string][]float64{PropY: {0, dy, 0}},
		Duration:  period,
		Ease:      ease.InOutQuad,
		Repeat:    RepeatInfinite,
	}
}

// Pulse is an ambient opacity loop lo→hi→lo.
func Pulse(name string, lo, hi float64, period, delay time.Duration) TaskConfig {
	return TaskConfig{
		Name:      name,
		Keyframes: map[string][]float64{PropOpacity: {lo, hi, lo}},
		Duration:  period,
		Delay:     delay,
		Ease:      ease.InOutQuad,
		Repeat:    RepeatInfinite,
	}
}

// Sweep is an ambient loop moving an element horizontally from one offset to
// another, restarting at from each loop.
func Sweep(name string, from, to float64, period time.Duration) TaskConfig {
	return TaskConfig{
		Name:     name,
		From:     Props{PropX: from},
		To:       Props{PropX: to},
		Duration: period,
		Ease:     ease.InOutQuad,
		Repeat:   RepeatInfinite,
	}
}

// presencePresets are the presence configs a page file can name, each built
// for a given number of links.
var presencePresets = map[string]func(links int) PresenceConfig{
	"hero": HeroMenuPresence,
}

// PresencePresets returns the preset names accepted by a menu's
// presence.preset, sorted.
func PresencePresets() []string {
	return slices.Sorted(maps.Keys(presencePresets))
}

// HeroMenuPresence is the dropdown enter/exit used by the hero page: the
// panel fades and scales in from slightly above over 200ms and leaves over
// 150ms, while the links rise in 100ms apart after a 100ms lead.
func HeroMenuPresence(links int) PresenceConfig {
	hidden := Props{PropOpacity: 0, PropY: -10, PropScale: 0.95}
	shown := Props{PropOpacity: 1, PropY: 0, PropScale: 1}
	cfg := PresenceConfig{
		Enter: TaskConfig{
			Name:     "dropdown",
			From:     hidden,
			To:       shown,
			Duration: 200 * time.Millisecond,
			Ease:     ease.OutQuad,
		},
		Exit: TaskConfig{
			Name:     "dropdown",
			To:       hidden,
			Duration: 150 * time.Millisecond,
			Ease:     ease.InQuad,
		},
		ChildDelay:   100 * time.Millisecond,
		ChildStagger: 100 * time.Millisecond,
	}
	for i := range links {
		cfg.Children = append(cfg.Children, TaskConfig{
			Name:     fmt.Sprintf("dropdown-link-%d", i),
			From:     Props{PropOpacity: 0, PropY: 10},
			To:       Props{PropOpacity: 1, PropY: 0},
			Duration: 400 * time.Millisecond,
			Ease:     ease.OutQuad,
		})
	}
	return cfg
}
