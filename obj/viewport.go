package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Viewport maps the Y-up simulation world onto the Y-down screen. It
// guarantees a minimum visible world extent and extends one axis to match
// the window's aspect ratio, so resizing never squashes the scene.
type Viewport struct {
	minW, minH float64

	screenW, screenH int
	ppu              float64
	worldW, worldH   float64
}

// NewViewport creates a viewport with the given minimum world extent.
func NewViewport(minWorldW, minWorldH float64) *Viewport {
	return &Viewport{minW: minWorldW, minH: minWorldH}
}

// Resize recomputes the world extent for a new screen size. Returns true
// when the visible world size changed.
func (v *Viewport) Resize(screenW, screenH int) bool {
	if v == nil || screenW <= 0 || screenH <= 0 {
		return false
	}
	if screenW == v.screenW && screenH == v.screenH {
		return false
	}
	v.screenW = screenW
	v.screenH = screenH

	ppuX := float64(screenW) / v.minW
	ppuY := float64(screenH) / v.minH
	v.ppu = ppuX
	if ppuY < ppuX {
		v.ppu = ppuY
	}

	oldW, oldH := v.worldW, v.worldH
	v.worldW = float64(screenW) / v.ppu
	v.worldH = float64(screenH) / v.ppu
	return v.worldW != oldW || v.worldH != oldH
}

// WorldSize returns the currently visible world extent in world units.
func (v *Viewport) WorldSize() (float64, float64) {
	if v == nil {
		return 0, 0
	}
	return v.worldW, v.worldH
}

// ScreenSize returns the screen size in pixels.
func (v *Viewport) ScreenSize() (int, int) {
	if v == nil {
		return 0, 0
	}
	return v.screenW, v.screenH
}

// PixelsPerUnit returns the current world-to-screen scale factor.
func (v *Viewport) PixelsPerUnit() float64 {
	if v == nil {
		return 0
	}
	return v.ppu
}

// Apply appends the world-to-screen transform to a geometry matrix that
// already positions a quad in world space.
func (v *Viewport) Apply(geom *ebiten.GeoM) {
	if v == nil || geom == nil || v.ppu == 0 {
		return
	}
	geom.Scale(v.ppu, -v.ppu)
	geom.Translate(0, float64(v.screenH))
}

// Project converts a world point to screen pixels.
func (v *Viewport) Project(p cp.Vector) (float64, float64) {
	if v == nil || v.ppu == 0 {
		return 0, 0
	}
	return p.X * v.ppu, float64(v.screenH) - p.Y*v.ppu
}
