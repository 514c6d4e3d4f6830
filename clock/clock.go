// Package clock supplies game time to systems. Time is measured as an offset
// from the start of the clock and only advances while the game is unpaused.
package clock

import "time"

// Clock is read by systems once per frame.
type Clock interface {
	// Now is the game time at the start of the current frame.
	Now() time.Duration
	// Delta is the length of the current frame.
	Delta() time.Duration
}

// FrameClock advances by a fixed step each tick, matching a fixed-TPS update
// loop. It can be paused; paused ticks do not advance time.
type FrameClock struct {
	now    time.Duration
	step   time.Duration
	delta  time.Duration
	paused bool
}

// NewFrameClock returns a clock ticking tps times per game second.
func NewFrameClock(tps int) *FrameClock {
	if tps <= 0 {
		tps = 60
	}
	return &FrameClock{step: time.Second / time.Duration(tps)}
}

// Tick starts a new frame.
func (c *FrameClock) Tick() {
	if c.paused {
		c.delta = 0
		return
	}
	c.now += c.step
	c.delta = c.step
}

func (c *FrameClock) Now() time.Duration   { return c.now }
func (c *FrameClock) Delta() time.Duration { return c.delta }

func (c *FrameClock) Pause()         { c.paused = true }
func (c *FrameClock) Resume()        { c.paused = false }
func (c *FrameClock) IsPaused() bool { return c.paused }

// Manual is a Clock driven by hand, for tests.
type Manual struct {
	now   time.Duration
	delta time.Duration
}

func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Advance moves time forward by d and makes d the frame delta.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	m.delta = d
}

// Set jumps to t. The delta becomes the distance moved, which may be
// negative.
func (m *Manual) Set(t time.Duration) {
	m.delta = t - m.now
	m.now = t
}

func (m *Manual) Now() time.Duration   { return m.now }
func (m *Manual) Delta() time.Duration { return m.delta }
