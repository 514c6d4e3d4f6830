package component

import "time"

// TTL removes its entity after a fixed lifetime.
type TTL struct {
	Remaining time.Duration
}

// Tick spends dt of the lifetime and reports whether it is used up.
func (t *TTL) Tick(dt time.Duration) (expired bool) {
	t.Remaining -= dt
	return t.Remaining <= 0
}

var TTLComponent = NewComponent[TTL]()
