package host

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-right corner.
// It refreshes its text every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	since time.Duration
	dirty bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), dirty: true}
}

func (o *fpsOverlay) update(dt time.Duration) {
	o.since += dt
	if o.since < 500*time.Millisecond {
		return
	}
	o.since = 0
	o.dirty = true
}

func (o *fpsOverlay) draw(screen *ebiten.Image, screenW int) {
	if o.dirty {
		o.dirty = false
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screenW-104), 4)
	screen.DrawImage(o.img, op)
}
