package component

import (
	"testing"
	"time"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestAbilityCooldownRequestWindows(t *testing.T) {
	// 500ms cooldown, grace window opens at 375ms.
	tests := []struct {
		name        string
		now         time.Duration
		wantReady   bool
		wantPending bool
	}{
		{"same_instant", 0, false, false},
		{"too_early", ms(100), false, false},
		{"just_before_grace", ms(374), false, false},
		{"grace_start", ms(375), false, true},
		{"inside_grace", ms(450), false, true},
		{"at_expiry", ms(500), true, false},
		{"long_after", 3 * time.Second, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewAbilityCooldown(ms(500), DefaultGraceFraction)
			c.RequestActivation(tc.now)
			if c.Ready() != tc.wantReady || c.IsPending() != tc.wantPending {
				t.Fatalf("ready=%v pending=%v, want ready=%v pending=%v",
					c.Ready(), c.IsPending(), tc.wantReady, tc.wantPending)
			}
		})
	}
}

func TestAbilityCooldownGraceScenario(t *testing.T) {
	c := NewAbilityCooldown(ms(500), 0.25)

	c.RequestActivation(ms(400))
	if !c.IsPending() || c.Ready() {
		t.Fatalf("expected pending after grace request, ready=%v pending=%v", c.Ready(), c.IsPending())
	}
	if c.Consume(ms(400)) {
		t.Fatalf("consume must fail while only pending")
	}
	if !c.IsPending() {
		t.Fatalf("failed consume must not clear pending")
	}

	c.RequestActivation(ms(500))
	if !c.Ready() {
		t.Fatalf("expected ready at expiry")
	}
	if !c.Consume(ms(500)) {
		t.Fatalf("expected consume to succeed")
	}
	if c.Ready() || c.IsPending() || c.LastActivation() != ms(500) {
		t.Fatalf("unexpected state after consume: ready=%v pending=%v last=%v",
			c.Ready(), c.IsPending(), c.LastActivation())
	}
}

func TestAbilityCooldownReadyOverridesPending(t *testing.T) {
	c := NewAbilityCooldown(ms(1200), DefaultGraceFraction)
	c.RequestActivation(ms(1000))
	if !c.IsPending() {
		t.Fatalf("expected pending")
	}
	c.RequestActivation(ms(1200))
	if !c.Ready() {
		t.Fatalf("expected ready regardless of pending")
	}
}

func TestAbilityCooldownIdempotentWhileReady(t *testing.T) {
	c := NewAbilityCooldown(ms(500), DefaultGraceFraction)
	c.RequestActivation(ms(600))
	before := c

	for _, now := range []time.Duration{ms(600), ms(700), ms(5000)} {
		c.RequestActivation(now)
	}
	if c != before {
		t.Fatalf("state changed while ready: %+v -> %+v", before, c)
	}
	if !c.Consume(ms(800)) {
		t.Fatalf("expected a single successful consume")
	}
	if c.Consume(ms(800)) {
		t.Fatalf("second consume in same instant must fail")
	}
}

func TestAbilityCooldownNonMonotonicClock(t *testing.T) {
	c := NewAbilityCooldown(ms(500), DefaultGraceFraction)
	c.RequestActivation(ms(600))
	c.Consume(ms(600))

	for _, now := range []time.Duration{ms(600), ms(100), 0} {
		c.RequestActivation(now)
		if c.Ready() || c.IsPending() {
			t.Fatalf("request at %v must be a no-op", now)
		}
	}
	if c.LastActivation() != ms(600) {
		t.Fatalf("last activation regressed to %v", c.LastActivation())
	}
}

func TestAbilityCooldownConsumeWithoutReady(t *testing.T) {
	c := NewAbilityCooldown(ms(500), DefaultGraceFraction)
	if c.Consume(ms(900)) {
		t.Fatalf("consume without request must fail")
	}
	if c.LastActivation() != 0 {
		t.Fatalf("failed consume changed last activation to %v", c.LastActivation())
	}
}

func TestAbilityCooldownGraceClamp(t *testing.T) {
	tests := []struct {
		grace float64
		want  float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tc := range tests {
		c := NewAbilityCooldown(time.Second, tc.grace)
		if c.GraceFraction() != tc.want {
			t.Fatalf("grace %v: got %v want %v", tc.grace, c.GraceFraction(), tc.want)
		}
	}

	// zero grace never remembers an early request
	c := NewAbilityCooldown(time.Second, 0)
	c.RequestActivation(ms(999))
	if c.IsPending() {
		t.Fatalf("zero grace must not set pending")
	}
}

func TestAbilityCooldownRemainingAndRetune(t *testing.T) {
	c := NewAbilityCooldown(ms(500), DefaultGraceFraction)
	if got := c.Remaining(ms(200)); got != ms(300) {
		t.Fatalf("remaining = %v, want 300ms", got)
	}
	c.RequestActivation(ms(400))

	r := c.Retuned(ms(800), 0.5)
	if r.Cooldown() != ms(800) || r.GraceFraction() != 0.5 {
		t.Fatalf("retune did not apply: %v %v", r.Cooldown(), r.GraceFraction())
	}
	if !r.IsPending() || r.LastActivation() != c.LastActivation() {
		t.Fatalf("retune lost state")
	}
	if got := r.Remaining(ms(900)); got != 0 {
		t.Fatalf("remaining after expiry = %v", got)
	}
}
