// Package host runs a cadence Stage inside an Ebitengine window: it turns
// mouse, keyboard, wheel and window events into injected stage input, ticks
// the stage at a fixed rate, and draws each snapshot as flat shapes.
package host

import (
	"fmt"
	"image/color"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/cadence"
)

var (
	colorBackground = color.RGBA{0x12, 0x12, 0x1a, 0xff}
	colorRegion     = color.RGBA{0x40, 0x40, 0x58, 0xff}
	colorTarget     = color.RGBA{0x66, 0xc2, 0xff, 0xff}
	colorBar        = color.RGBA{0x7c, 0xe0, 0x7c, 0xff}
	colorMenu       = color.RGBA{0x24, 0x24, 0x34, 0xff}
	colorControl    = color.RGBA{0xff, 0xb0, 0x40, 0xff}
	colorBackdrop   = color.RGBA{0x1c, 0x1c, 0x2a, 0xff}
)

// backdropFactor is how fast the first region's backdrop scrolls relative to
// the page.
const backdropFactor = 0.5

// keyMap lists the keys forwarded to the stage.
var keyMap = map[ebiten.Key]cadence.Key{
	ebiten.KeyEscape: cadence.KeyEscape,
	ebiten.KeyEnter:  cadence.KeyEnter,
	ebiten.KeySpace:  cadence.KeySpace,
	ebiten.KeyTab:    cadence.KeyTab,
}

// Game adapts a Stage to ebiten.Game.
type Game struct {
	stage  *cadence.Stage
	cfg    RunConfig
	dt     time.Duration
	width  int
	height int
	fps    *fpsOverlay
}

// NewGame wraps stage for the given config.
func NewGame(stage *cadence.Stage, cfg RunConfig) *Game {
	g := &Game{
		stage:  stage,
		cfg:    cfg,
		dt:     time.Second / time.Duration(cfg.TPS),
		width:  cfg.Width,
		height: cfg.Height,
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Update reads this frame's input, queues it on the stage and advances the
// stage by one fixed tick.
func (g *Game) Update() error {
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(b) {
			x, y := ebiten.CursorPosition()
			g.stage.InjectButtonClick(float64(x), float64(y), mouseButton(b))
		}
	}
	for k, key := range keyMap {
		if inpututil.IsKeyJustPressed(k) {
			g.stage.InjectKey(key)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.stage.InjectScrollBy(0, -dy*g.cfg.WheelStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.stage.InjectScrollBy(0, float64(g.height))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.stage.InjectScrollBy(0, -float64(g.height))
	}

	g.stage.Tick(g.dt)
	if g.fps != nil {
		g.fps.update(g.dt)
	}
	return nil
}

func mouseButton(b ebiten.MouseButton) cadence.MouseButton {
	switch b {
	case ebiten.MouseButtonRight:
		return cadence.MouseButtonRight
	case ebiten.MouseButtonMiddle:
		return cadence.MouseButtonMiddle
	default:
		return cadence.MouseButtonLeft
	}
}

// Draw renders the current snapshot. Regions are outlined at their scrolled
// position; each task is a bar inside its region driven by its x, y, scale
// and opacity values.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	frame := g.stage.Snapshot()
	scroll := frame.Scroll

	if regions := g.stage.Regions(); len(regions) > 0 {
		g.drawBackdrop(screen, regions[0].Bounds)
	}

	for _, r := range g.stage.Regions() {
		b := r.Bounds
		x, y := float32(b.X-scroll.X), float32(b.Y-scroll.Y)
		vector.StrokeRect(screen, x, y, float32(b.Width), float32(b.Height), 1, colorRegion, false)
		ebitenutil.DebugPrintAt(screen, r.Name, int(x)+4, int(y)+2)

		for i, t := range r.Tasks() {
			drawTarget(screen, t.Value(), b, scroll, i)
		}
	}

	for row, name := range slices.Sorted(maps.Keys(frame.Counters)) {
		c := frame.Counters[name]
		y := g.height - 24 - row*20
		w := float32(200 * c.Fraction)
		vector.DrawFilledRect(screen, 8, float32(y), w, 12, colorBar, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  LEVEL %d  %d%%", name, c.Level, c.Percent), 216, y-2)
	}

	for _, m := range g.stage.Menus() {
		drawMenu(screen, m, frame.Menus[m.Name])
	}

	if g.fps != nil {
		g.fps.draw(screen, g.width)
	}
}

// backdropY returns the screen y of a backdrop layer anchored at pageY. It
// moves backdropFactor times as fast as the page scroll.
func (g *Game) backdropY(pageY float64) float64 {
	return pageY - g.stage.Scroll().Y + g.stage.Parallax(1-backdropFactor)
}

// drawBackdrop fills the region with horizontal bands that trail the scroll.
func (g *Game) drawBackdrop(screen *ebiten.Image, b cadence.Rect) {
	top := g.backdropY(b.Y)
	for y := 0.0; y < b.Height; y += 48 {
		vector.DrawFilledRect(screen, float32(b.X-g.stage.Scroll().X), float32(top+y), float32(b.Width), 24, colorBackdrop, false)
	}
}

func drawTarget(screen *ebiten.Image, p cadence.Props, bounds cadence.Rect, scroll cadence.Vec2, index int) {
	alpha := clamp01(p.Get(cadence.PropOpacity, 1))
	if alpha == 0 {
		return
	}
	scale := p.Get(cadence.PropScale, 1)
	w := min(bounds.Width-32, 240) * scale
	h := 24 * scale
	x := bounds.X + 16 + p.Get(cadence.PropX, 0) - scroll.X
	y := bounds.Y + 24 + float64(index)*32 + p.Get(cadence.PropY, 0) - scroll.Y

	c := colorTarget
	c.A = uint8(255 * alpha)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), premultiply(c), false)
}

func drawMenu(screen *ebiten.Image, m *cadence.Menu, snap cadence.MenuSnapshot) {
	t := m.ToggleControl().Bounds
	vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(t.Width), float32(t.Height), colorControl, false)
	if !snap.Mounted {
		return
	}

	panel := m.PanelBounds()
	alpha := 1.0
	dy, scale := 0.0, 1.0
	if snap.Panel != nil {
		alpha = clamp01(snap.Panel.Get(cadence.PropOpacity, 1))
		dy = snap.Panel.Get(cadence.PropY, 0)
		scale = snap.Panel.Get(cadence.PropScale, 1)
	}
	c := colorMenu
	c.A = uint8(255 * alpha)
	w, h := panel.Width*scale, panel.Height*scale
	x := panel.X + (panel.Width-w)/2
	y := panel.Y + dy
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), premultiply(c), false)

	for i, l := range m.LinkControls() {
		la := alpha
		ly := l.Bounds.Y + dy
		if i < len(snap.Links) {
			la *= clamp01(snap.Links[i].Get(cadence.PropOpacity, 1))
			ly += snap.Links[i].Get(cadence.PropY, 0)
		}
		lc := colorTarget
		lc.A = uint8(255 * la)
		vector.StrokeRect(screen, float32(l.Bounds.X), float32(ly), float32(l.Bounds.Width), float32(l.Bounds.Height), 1, premultiply(lc), false)
		ebitenutil.DebugPrintAt(screen, l.Name, int(l.Bounds.X)+6, int(ly)+4)
	}
}

// Layout forwards window resizes to the stage.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.stage.InjectResize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// Run opens a window and drives stage until the window is closed.
func Run(stage *cadence.Stage, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	stage.SetDebugMode(cfg.Debug)
	logger := stage.Logger()

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("failed to read script %s: %w", cfg.Script, err)
		}
		runner, err := cadence.LoadTestScript(data)
		if err != nil {
			return err
		}
		stage.SetTestRunner(runner)
		logger.Info("script attached", "path", cfg.Script)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	logger.Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "tps", cfg.TPS)
	return ebiten.RunGame(NewGame(stage, cfg))
}
