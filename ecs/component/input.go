package component

// Input stores per-frame input state for an entity.
type Input struct {
	// Forward and Right are camera-relative movement axes in [-1, 1].
	Forward float64
	Right   float64
	Dash    bool
	Attack  bool

	// Captured is true while the cursor is grabbed; movement is ignored
	// otherwise.
	Captured bool
	// OrbitDX is the horizontal mouse motion this frame, in pixels.
	OrbitDX float64
	// Wheel is the vertical scroll amount this frame, in lines.
	Wheel float64
}

var InputComponent = NewComponent[Input]()
