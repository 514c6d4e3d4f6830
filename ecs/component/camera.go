package component

// Camera is a follow camera orbiting its target. Yaw defines the forward
// direction for movement; Radius is the current view distance and Zoom the
// distance the player asked for.
type Camera struct {
	TargetName        string
	Yaw               float64
	Radius            float64
	Zoom              float64
	MinZoom           float64
	MaxZoom           float64
	RotateSensitivity float64
	WheelSensitivity  float64
	// PixelsPerUnit at Radius == ReferenceRadius.
	PixelsPerUnit   float64
	ReferenceRadius float64
	// CenterX/CenterY is the world point drawn at the screen centre.
	CenterX float64
	CenterY float64
}

var CameraComponent = NewComponent[Camera]()
