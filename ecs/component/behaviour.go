package component

import "time"

// Behaviour drives an enemy through a script. The script decides each step
// whether to replace the stored Force.
type Behaviour struct {
	Script   string
	Strength float64
	Elapsed  time.Duration
}

var BehaviourComponent = NewComponent[Behaviour]()
