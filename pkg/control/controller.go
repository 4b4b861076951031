// Package control translates raw interaction gestures into simulation
// mutations. It is the single mutation path for every host: graphical,
// terminal, and scripted drivers all go through the Controller, so the
// trail-clearing and zoom policies live in exactly one place.
package control

import (
	"context"
	"time"

	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/sim"
	"github.com/opd-ai/go-orrery/pkg/validation"
)

// Unit selects the increment applied by unit-targeted wheel gestures and
// keyboard nudges.
type Unit int

const (
	UnitYear Unit = iota
	UnitMonth
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

// Increment returns the unit's size in days. Year and month use mean
// lengths so repeated nudges track the calendar on average.
func (u Unit) Increment() float64 {
	switch u {
	case UnitYear:
		return 365.25
	case UnitMonth:
		return 30.44
	case UnitDay:
		return 1
	case UnitHour:
		return 1.0 / 24
	case UnitMinute:
		return 1.0 / 1440
	case UnitSecond:
		return 1.0 / 86400
	default:
		return 1
	}
}

// String returns the unit name.
func (u Unit) String() string {
	switch u {
	case UnitYear:
		return "year"
	case UnitMonth:
		return "month"
	case UnitDay:
		return "day"
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitSecond:
		return "second"
	default:
		return "unknown"
	}
}

// Controller drives an Orrery from interaction gestures. It also tracks
// the interaction-only state that does not belong in the simulation: the
// selected nudge unit and the speed remembered across pause.
type Controller struct {
	orrery *sim.Orrery
	logger *logging.Logger

	unit        Unit
	pausedSpeed float64
}

// NewController wraps an Orrery. The initial unit is days.
func NewController(orrery *sim.Orrery) *Controller {
	return &Controller{
		orrery: orrery,
		logger: logging.NewLogger(),
		unit:   UnitDay,
	}
}

// Orrery exposes the wrapped simulation for hosts that read state.
func (c *Controller) Orrery() *sim.Orrery { return c.orrery }

// WheelViewport applies a zoom step for a wheel gesture over the scene.
// Positive delta zooms in.
func (c *Controller) WheelViewport(delta float64) {
	view := c.orrery.Config().View
	if delta > 0 {
		c.orrery.View().ZoomBy(view.ZoomStepIn)
	} else if delta < 0 {
		c.orrery.View().ZoomBy(view.ZoomStepOut)
	}
}

// WheelUnit nudges the clock by the selected unit for a wheel gesture
// over a date field. Positive delta moves forward in time.
func (c *Controller) WheelUnit(delta float64) {
	if delta == 0 {
		return
	}
	inc := c.unit.Increment()
	if delta < 0 {
		inc = -inc
	}
	c.orrery.NudgeDays(inc)
}

// SetUnit selects the unit for subsequent nudges.
func (c *Controller) SetUnit(u Unit) { c.unit = u }

// SelectedUnit returns the current nudge unit.
func (c *Controller) SelectedUnit() Unit { return c.unit }

// CycleUnit steps the selected unit from coarse to fine and wraps.
func (c *Controller) CycleUnit() {
	c.unit = (c.unit + 1) % 6
}

// DragPan offsets the view by a drag delta in screen pixels.
func (c *Controller) DragPan(dx, dy float64) {
	c.orrery.View().PanBy(physics.Vector2D{X: dx, Y: dy})
}

// CommitDate validates a complete calendar entry and, if acceptable, sets
// the clock to it. Invalid fields leave the clock untouched and return
// the validation error for the host to surface.
func (c *Controller) CommitDate(year, month, day, hour, minute, second int) error {
	if err := validation.ValidateDate(year, month, day); err != nil {
		return err
	}
	if err := validation.ValidateTime(hour, minute, second); err != nil {
		return err
	}
	c.orrery.SetDays(ephemeris.DaysFromCalendar(year, month, day, hour, minute, second))
	c.logger.Info(context.Background(), "date committed",
		"year", year, "month", month, "day", day)
	return nil
}

// SyncNow jumps the clock to the host's current wall time.
func (c *Controller) SyncNow() {
	c.orrery.SyncNow(time.Now().UTC())
}

// SetFrame switches the anchoring frame.
func (c *Controller) SetFrame(mode sim.FrameMode) {
	c.orrery.SetFrame(mode)
}

// ToggleFrame flips between heliocentric and geocentric.
func (c *Controller) ToggleFrame() {
	if c.orrery.Frame() == sim.Heliocentric {
		c.orrery.SetFrame(sim.Geocentric)
	} else {
		c.orrery.SetFrame(sim.Heliocentric)
	}
}

// SetDirection sets playback direction.
func (c *Controller) SetDirection(d sim.Direction) {
	c.orrery.SetDirection(d)
}

// ToggleDirection flips playback direction.
func (c *Controller) ToggleDirection() {
	if c.orrery.State().Direction == sim.Forward {
		c.orrery.SetDirection(sim.Reverse)
	} else {
		c.orrery.SetDirection(sim.Forward)
	}
}

// SetSpeed sets the playback speed in days-per-tick thousandths.
func (c *Controller) SetSpeed(speed float64) {
	c.orrery.SetSpeed(speed)
}

// TogglePause stops the clock, remembering the running speed, or restores
// it. Resuming from a start-up pause falls back to a speed of 1.
func (c *Controller) TogglePause() {
	st := c.orrery.State()
	if st.Speed > 0 {
		c.pausedSpeed = st.Speed
		c.orrery.SetSpeed(0)
		return
	}
	if c.pausedSpeed <= 0 {
		c.pausedSpeed = 1
	}
	c.orrery.SetSpeed(c.pausedSpeed)
}

// ResetView restores default pan and fit-to-viewport zoom.
func (c *Controller) ResetView(viewportW, viewportH float64) {
	c.orrery.ResetView(viewportW, viewportH)
}

// ToggleTrails flips trail drawing.
func (c *Controller) ToggleTrails() {
	c.orrery.SetShowTrails(!c.orrery.ShowTrails())
}

// ToggleOrbits flips orbit ring drawing.
func (c *Controller) ToggleOrbits() {
	c.orrery.SetShowOrbits(!c.orrery.ShowOrbits())
}
