package component

import "time"

type DashState int

const (
	DashIdle DashState = iota
	DashRequested
	DashActive
)

func (s DashState) String() string {
	switch s {
	case DashIdle:
		return "idle"
	case DashRequested:
		return "requested"
	case DashActive:
		return "active"
	default:
		return "unknown"
	}
}

// CharacterDash animates a dash along a fixed direction. Activation is gated
// by its own AbilityCooldown; playback is a separate Idle -> Requested ->
// Active -> Idle machine.
type CharacterDash struct {
	State    DashState
	Progress float64
	Duration time.Duration
	DirX     float64
	DirY     float64
	Cooldown AbilityCooldown
}

// Request asks for a dash along (dirX, dirY). Ignored while a dash plays.
func (d *CharacterDash) Request(dirX, dirY float64) {
	if d.State == DashActive {
		return
	}
	d.State = DashRequested
	d.DirX, d.DirY = dirX, dirY
}

// Steer updates the direction a future dash will take. Ignored while a dash
// plays or for a zero vector.
func (d *CharacterDash) Steer(dirX, dirY float64) {
	if d.State == DashActive || (dirX == 0 && dirY == 0) {
		return
	}
	d.DirX, d.DirY = dirX, dirY
}

// TryActivate runs the cooldown gate for a requested (or pending) dash and
// starts playback when it is granted. A request that is not granted is
// dropped; the cooldown remembers it if it fell in the grace window.
func (d *CharacterDash) TryActivate(now time.Duration) bool {
	if d.State == DashActive {
		return false
	}
	if d.State != DashRequested && !d.Cooldown.IsPending() {
		return false
	}

	d.Cooldown.RequestActivation(now)
	if !d.Cooldown.Consume(now) {
		d.State = DashIdle
		return false
	}

	d.State = DashActive
	d.Progress = 0
	return true
}

// Advance moves playback forward by dt. It returns the progress used for this
// step and whether the dash drove movement during it. The step that reaches
// full progress still moves and leaves the dash Idle.
func (d *CharacterDash) Advance(dt time.Duration) (float64, bool) {
	if d.State != DashActive {
		return 0, false
	}
	if d.Duration <= 0 {
		d.Progress = 1
	} else {
		d.Progress += dt.Seconds() / d.Duration.Seconds()
	}
	if d.Progress >= 1 {
		d.Progress = 1
		d.State = DashIdle
	}
	return d.Progress, true
}

func (d *CharacterDash) Active() bool {
	return d.State == DashActive
}

var CharacterDashComponent = NewComponent[CharacterDash]()
