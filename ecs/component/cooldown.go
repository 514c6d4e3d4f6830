package component

import "time"

// DefaultGraceFraction is the share of a cooldown, counted back from expiry,
// during which an early request is remembered instead of dropped.
const DefaultGraceFraction = 0.25

// AbilityCooldown gates how often an ability may fire.
//
// Callers request activation on every frame the ability is wanted and call
// Consume once per frame. A request that arrives inside the grace window just
// before expiry is remembered as pending; the caller keeps re-requesting while
// IsPending is true, so the ability fires on the first frame it is legal.
//
// Timestamps are offsets from the start of the game clock.
type AbilityCooldown struct {
	ready          bool
	pending        bool
	lastActivation time.Duration
	cooldown       time.Duration
	graceFraction  float64
}

// NewAbilityCooldown returns a controller whose last activation is the start
// of the clock. graceFraction is clamped to [0, 1].
func NewAbilityCooldown(cooldown time.Duration, graceFraction float64) AbilityCooldown {
	if cooldown < 0 {
		cooldown = 0
	}
	return AbilityCooldown{
		cooldown:      cooldown,
		graceFraction: clamp01(graceFraction),
	}
}

// RequestActivation records a wish to fire the ability at now.
func (c *AbilityCooldown) RequestActivation(now time.Duration) {
	if c.ready || now <= c.lastActivation {
		return
	}

	elapsed := now - c.lastActivation
	if elapsed >= c.cooldown {
		c.ready = true
		return
	}

	if !c.pending && elapsed >= c.graceStart() {
		c.pending = true
	}
}

// Consume fires the ability if it is ready. On success ready and pending are
// cleared and the cooldown restarts at now.
func (c *AbilityCooldown) Consume(now time.Duration) bool {
	if !c.ready {
		return false
	}
	c.ready = false
	c.pending = false
	if now > c.lastActivation {
		c.lastActivation = now
	}
	return true
}

// IsPending reports whether a grace-window request is waiting for expiry.
func (c *AbilityCooldown) IsPending() bool {
	return c.pending
}

// Ready reports whether the next Consume will succeed.
func (c *AbilityCooldown) Ready() bool {
	return c.ready
}

func (c *AbilityCooldown) LastActivation() time.Duration {
	return c.lastActivation
}

func (c *AbilityCooldown) Cooldown() time.Duration {
	return c.cooldown
}

func (c *AbilityCooldown) GraceFraction() float64 {
	return c.graceFraction
}

// Remaining returns how long until a request at now would be granted.
func (c *AbilityCooldown) Remaining(now time.Duration) time.Duration {
	if c.ready {
		return 0
	}
	left := c.cooldown - (now - c.lastActivation)
	if left < 0 {
		return 0
	}
	return left
}

// Retuned returns a controller with new timings that keeps the current
// activation state. Used when tuning files are reloaded.
func (c AbilityCooldown) Retuned(cooldown time.Duration, graceFraction float64) AbilityCooldown {
	next := NewAbilityCooldown(cooldown, graceFraction)
	next.ready = c.ready
	next.pending = c.pending
	next.lastActivation = c.lastActivation
	return next
}

func (c *AbilityCooldown) graceStart() time.Duration {
	return time.Duration(float64(c.cooldown) * (1 - c.graceFraction))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AttackCooldownComponent gates the player's ranged attack.
var AttackCooldownComponent = NewComponent[AbilityCooldown]()
