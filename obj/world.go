package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fruitfall/common"
)

// World owns the chipmunk space and the static ground slab. Fruit bodies are
// created into the space by the shape cache and tracked by the game; the
// ground is the world's own concern because it follows the viewport width.
type World struct {
	space *cp.Space

	ground      *cp.Body
	groundShape *cp.Shape
	groundWidth float64
}

// NewWorld creates the physics space with demo gravity and solver settings.
func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = common.SpaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	space.SleepTimeThreshold = 0.5
	return &World{space: space}
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Step advances the simulation by dt seconds. Callers must only pass the
// fixed timestep.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// GroundWidth returns the world width the current ground slab was built for,
// or 0 when no ground exists yet.
func (w *World) GroundWidth() float64 {
	if w == nil {
		return 0
	}
	return w.groundWidth
}

// RebuildGround replaces the static ground slab with one spanning the given
// world width. Without it the fruit would fall forever. The slab is centered
// on the origin and twice the view width across, so fruit can't slip off the
// edge after a resize.
func (w *World) RebuildGround(worldWidth float64) {
	if w == nil || w.space == nil || worldWidth <= 0 {
		return
	}

	if w.ground != nil {
		w.space.RemoveShape(w.groundShape)
		w.space.RemoveBody(w.ground)
		w.ground = nil
		w.groundShape = nil
	}

	ground := cp.NewStaticBody()
	shape := cp.NewBox(ground, worldWidth*2, common.GroundHalfHeight*2, 0)
	shape.SetFriction(common.GroundFriction)

	w.space.AddBody(ground)
	w.space.AddShape(shape)

	w.ground = ground
	w.groundShape = shape
	w.groundWidth = worldWidth
}

// RemoveBody removes a dynamic body and all its shapes from the space.
func (w *World) RemoveBody(body *cp.Body) {
	if w == nil || w.space == nil || body == nil {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
}

// Dispose tears the space down: every shape and body, ground included, is
// removed so nothing keeps referencing freed render resources.
func (w *World) Dispose() {
	if w == nil || w.space == nil {
		return
	}
	var shapes []*cp.Shape
	w.space.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	var bodies []*cp.Body
	w.space.EachBody(func(b *cp.Body) {
		bodies = append(bodies, b)
	})
	for _, b := range bodies {
		w.space.RemoveBody(b)
	}
	w.ground = nil
	w.groundShape = nil
	w.groundWidth = 0
	w.space = nil
}
