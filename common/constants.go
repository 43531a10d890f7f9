package common

// Tuning constants for the drop demo. World coordinates are in meters with
// +Y up; the viewport flips to screen space at draw time.
const (
	// StepTime is the fixed physics timestep in seconds. Matches the
	// expected display rate; raise to 1/120 for higher-precision stacking.
	StepTime = 1.0 / 60.0

	// MaxFrameDelta caps how much wall-clock time a single frame may bank
	// into the accumulator, so a long hitch can't trigger a step avalanche.
	MaxFrameDelta = 0.25

	// SpriteScale converts sprite-sheet pixels to world units. Shape
	// template vertices are authored in sprite pixels and use the same
	// factor.
	SpriteScale = 0.05

	// Gravity is the world gravity along -Y, in world units per second^2.
	Gravity = -120.0

	// SpaceIterations is the chipmunk solver iteration count.
	SpaceIterations = 8

	// FruitCount is how many bodies drop at spawn time.
	FruitCount = 25

	// MinWorldWidth and MinWorldHeight are the guaranteed visible extent;
	// the viewport extends one axis to preserve the window's aspect ratio.
	MinWorldWidth  = 50.0
	MinWorldHeight = 50.0

	// GroundHalfHeight is the ground slab's half-height in world units.
	GroundHalfHeight = 1.0

	// GroundFriction keeps settled fruit from sliding.
	GroundFriction = 1.0
)
