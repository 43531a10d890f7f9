package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a renderable quad over an atlas sub-image, sized in world units
// with its origin at the bottom-left corner (matching how shape template
// vertices are authored). The image is shared; the pose is per-instance.
type Sprite struct {
	Image         *ebiten.Image
	Width, Height float64

	X, Y  float64
	Angle float64
}

// NewSprite wraps an atlas sub-image, scaling its pixel size to world units.
func NewSprite(img *ebiten.Image, scale float64) *Sprite {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	return &Sprite{
		Image:  img,
		Width:  float64(b.Dx()) * scale,
		Height: float64(b.Dy()) * scale,
	}
}

// Clone returns a new sprite sharing the image with a fresh pose. The cache
// holds one sprite per region; each fruit draws through its own clone.
func (s *Sprite) Clone() *Sprite {
	if s == nil {
		return nil
	}
	c := *s
	c.X, c.Y, c.Angle = 0, 0, 0
	return &c
}

// SetPose positions the sprite's origin at the given world coordinates with
// the given rotation in radians.
func (s *Sprite) SetPose(x, y, angle float64) {
	if s == nil {
		return
	}
	s.X = x
	s.Y = y
	s.Angle = angle
}

// Draw renders the sprite through the viewport.
func (s *Sprite) Draw(screen *ebiten.Image, view *Viewport) {
	if s == nil || s.Image == nil || screen == nil || view == nil {
		return
	}
	b := s.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	// image pixels (Y-down, top-left origin) to world units (Y-up,
	// bottom-left origin)
	op.GeoM.Translate(0, -float64(b.Dy()))
	op.GeoM.Scale(s.Width/float64(b.Dx()), -s.Height/float64(b.Dy()))
	op.GeoM.Rotate(s.Angle)
	op.GeoM.Translate(s.X, s.Y)
	view.Apply(&op.GeoM)
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(s.Image, op)
}
