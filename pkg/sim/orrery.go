package sim

import (
	"context"
	"time"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Orrery is the simulation aggregate: one instance owns a clock, a view
// transform, a frame mode, trail history, and a position provider. All
// mutation goes through its methods so the trail-invalidation policy lives
// in exactly one place.
type Orrery struct {
	cfg      *config.SimConfig
	clock    *Clock
	view     *View
	frame    FrameMode
	trails   *TrailHistory
	provider ephemeris.Provider
	bus      *event.Bus
	logger   *logging.Logger

	showTrails bool
	showOrbits bool

	positions ephemeris.PositionSet
	anchor    physics.Vector2D
}

// State is an immutable snapshot of everything a renderer or HUD needs for
// one frame.
type State struct {
	Days      float64
	Speed     float64
	Direction Direction
	Frame     FrameMode
	Zoom      float64
	Pan       physics.Vector2D

	Positions ephemeris.PositionSet
	Anchor    physics.Vector2D
	Trails    map[string][]physics.Vector2D

	ShowTrails bool
	ShowOrbits bool

	ProviderName string
}

// NewOrrery creates a simulation instance. provider is typically an
// ephemeris.Guard; bus may be nil.
func NewOrrery(cfg *config.SimConfig, provider ephemeris.Provider, bus *event.Bus) *Orrery {
	return &Orrery{
		cfg:        cfg,
		clock:      NewClock(),
		view:       NewView(),
		frame:      Heliocentric,
		trails:     NewTrailHistory(cfg.TrailCapacity),
		provider:   provider,
		bus:        bus,
		logger:     logging.NewLogger(),
		showTrails: true,
		showOrbits: true,
	}
}

// Tick runs one simulation step: advance the clock, fetch positions,
// resolve the anchor, and append trail history. The renderer consumes the
// result via State.
func (o *Orrery) Tick(ctx context.Context) error {
	o.clock.Advance()

	positions, err := o.provider.Compute(ctx, o.clock.Days())
	if err != nil {
		// Only context cancellation reaches here; provider faults are
		// absorbed by the guard.
		return logging.WrapError(err, "computing positions at days=%v", o.clock.Days())
	}

	o.positions = positions
	o.anchor = ResolveAnchor(positions, o.frame)

	for _, b := range o.cfg.Bodies {
		if pos, ok := positions.Bodies[b.ID]; ok {
			o.trails.Append(b.ID, pos.Sub(o.anchor))
		}
	}
	return nil
}

// State snapshots the current simulation state.
func (o *Orrery) State() State {
	return State{
		Days:         o.clock.Days(),
		Speed:        o.clock.Speed(),
		Direction:    o.clock.Direction(),
		Frame:        o.frame,
		Zoom:         o.view.Zoom(),
		Pan:          o.view.Pan(),
		Positions:    o.positions,
		Anchor:       o.anchor,
		Trails:       o.trailsSnapshot(),
		ShowTrails:   o.showTrails,
		ShowOrbits:   o.showOrbits,
		ProviderName: o.provider.Name(),
	}
}

func (o *Orrery) trailsSnapshot() map[string][]physics.Vector2D {
	snap := make(map[string][]physics.Vector2D, len(o.cfg.Bodies))
	for _, b := range o.cfg.Bodies {
		if pts := o.trails.Points(b.ID); len(pts) > 0 {
			snap[b.ID] = pts
		}
	}
	return snap
}

// Config returns the configuration this instance was built with.
func (o *Orrery) Config() *config.SimConfig { return o.cfg }

// Frame returns the active coordinate frame.
func (o *Orrery) Frame() FrameMode { return o.frame }

// SetFrame switches the coordinate frame. Trails are relative to the
// anchor body and become meaningless across a frame switch, so history is
// cleared.
func (o *Orrery) SetFrame(mode FrameMode) {
	if mode == o.frame {
		return
	}
	o.frame = mode
	o.clearTrails()
	o.publish(event.NewFrameEvent(o, mode.String()))
}

// SetSpeed sets the play speed; 0 pauses.
func (o *Orrery) SetSpeed(speed float64) {
	o.clock.SetSpeed(speed)
	o.publishClock(event.SpeedChanged)
}

// SetDirection flips time's sign without clearing trails: the clock still
// moves continuously, only its derivative changes.
func (o *Orrery) SetDirection(d Direction) {
	o.clock.SetDirection(d)
	o.publishClock(event.DirectionChanged)
}

// SetDays replaces simulated time outright, as from an explicit date
// commit. The jump is discontinuous, so trail history is cleared.
func (o *Orrery) SetDays(days float64) {
	o.clock.SetDays(days)
	o.clearTrails()
	o.publishClock(event.DateSet)
}

// NudgeDays shifts simulated time by a unit increment from the scrubbing
// control. A nudge is a discontinuous jump; trails are cleared to avoid a
// teleporting trail segment.
func (o *Orrery) NudgeDays(delta float64) {
	o.clock.Nudge(delta)
	o.clearTrails()
	o.publishClock(event.ClockChanged)
}

// SyncNow sets simulated time to the current wall-clock offset from the
// epoch. This is a discontinuous jump like any explicit set, so it clears
// trail history too.
func (o *Orrery) SyncNow(now time.Time) {
	o.clock.SyncTo(now)
	o.clearTrails()
	o.publishClock(event.DateSet)
}

// Days returns the current simulated time.
func (o *Orrery) Days() float64 { return o.clock.Days() }

// View returns the mutable view transform. Pan and zoom changes never
// invalidate trails.
func (o *Orrery) View() *View { return o.view }

// ResetView fits the outer ring into the viewport and centers the view.
func (o *Orrery) ResetView(viewportW, viewportH float64) {
	o.view.Reset(viewportW, viewportH, o.cfg.View, o.cfg.Rings.OuterRadius)
	o.publish(&event.BaseEvent{EventType: event.ViewReset, Source: o})
}

// SetShowTrails toggles the trail layer.
func (o *Orrery) SetShowTrails(show bool) { o.showTrails = show }

// SetShowOrbits toggles the orbit-ring layer.
func (o *Orrery) SetShowOrbits(show bool) { o.showOrbits = show }

// ShowTrails reports the trail layer toggle.
func (o *Orrery) ShowTrails() bool { return o.showTrails }

// ShowOrbits reports the orbit-ring layer toggle.
func (o *Orrery) ShowOrbits() bool { return o.showOrbits }

// TrailLen reports the recorded trail length for a body.
func (o *Orrery) TrailLen(id string) int { return o.trails.Len(id) }

func (o *Orrery) clearTrails() {
	o.trails.Clear()
	o.publish(&event.BaseEvent{EventType: event.TrailsCleared, Source: o})
}

func (o *Orrery) publish(e event.Event) {
	if o.bus != nil {
		o.bus.Publish(e)
	}
}

func (o *Orrery) publishClock(t event.Type) {
	o.publish(event.NewClockEvent(t, o, o.clock.Days(), o.clock.Speed(), int(o.clock.Direction())))
}
