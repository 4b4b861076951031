// Package sim owns the simulation state: the clock, the coordinate frame,
// the view transform, trail history, and the per-tick pipeline that binds
// them to an ephemeris provider. There are no package-level globals; every
// orrery instance is an explicit value.
package sim

import (
	"time"

	"github.com/opd-ai/go-orrery/pkg/ephemeris"
)

// Direction is the sign of time's advance while playing.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Clock owns the single time variable: days since the reference epoch,
// signed and unbounded in both directions. The clock is a two-state
// machine: Paused (speed == 0) and Playing (speed > 0, days advancing with
// direction's sign each tick).
type Clock struct {
	days      float64
	speed     float64 // simulated days per 1000 ticks; 0 means paused
	direction Direction
}

// NewClock creates a paused clock at the reference epoch, set to run
// forward.
func NewClock() *Clock {
	return &Clock{direction: Forward}
}

// Days returns the current epoch-relative time.
func (c *Clock) Days() float64 { return c.days }

// SetDays replaces the current time outright. Callers decide whether the
// jump invalidates trail history.
func (c *Clock) SetDays(days float64) { c.days = days }

// Nudge shifts the current time by delta days.
func (c *Clock) Nudge(delta float64) { c.days += delta }

// Speed returns the current speed setting.
func (c *Clock) Speed() float64 { return c.speed }

// SetSpeed sets the play speed. Negative values are treated as zero;
// direction is a separate control.
func (c *Clock) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	c.speed = speed
}

// Direction returns the current direction of play.
func (c *Clock) Direction() Direction { return c.direction }

// SetDirection sets the direction of play. Flipping direction is a
// continuous change of the time derivative, not a jump.
func (c *Clock) SetDirection(d Direction) {
	if d >= 0 {
		c.direction = Forward
	} else {
		c.direction = Reverse
	}
}

// Playing reports whether the clock advances on tick.
func (c *Clock) Playing() bool { return c.speed > 0 }

// Advance applies one tick: days moves by speed/1000 in the current
// direction. Paused clocks do not move.
func (c *Clock) Advance() {
	if c.speed == 0 {
		return
	}
	c.days += (c.speed / 1000) * float64(c.direction)
}

// SyncTo sets the clock to the epoch-relative offset of a wall-clock
// instant.
func (c *Clock) SyncTo(t time.Time) {
	c.days = ephemeris.DaysFromTime(t)
}
