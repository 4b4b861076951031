package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/event"
)

func newTestOrrery(bus *event.Bus) *Orrery {
	cfg := config.DefaultConfig()
	linear := ephemeris.NewLinear(cfg.Bodies)
	guard := ephemeris.NewGuard(nil, linear, cfg.BodyIDs(), bus)
	return NewOrrery(cfg, guard, bus)
}

func TestOrreryTickPipeline(t *testing.T) {
	o := newTestOrrery(nil)
	o.SetSpeed(1)

	if err := o.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	st := o.State()
	if st.Days != 0.001 {
		t.Errorf("Days after one tick at speed 1 = %v, expected 0.001", st.Days)
	}
	if len(st.Positions.Bodies) == 0 {
		t.Fatal("tick produced no positions")
	}
	if st.Anchor != st.Positions.Bodies[ephemeris.Sun] {
		t.Errorf("heliocentric anchor = %v, expected sun position", st.Anchor)
	}
	for _, id := range o.Config().BodyIDs() {
		if o.TrailLen(id) != 1 {
			t.Errorf("trail for %s has %d points after one tick, expected 1", id, o.TrailLen(id))
		}
	}
}

func TestOrreryTrailBoundDuringPlay(t *testing.T) {
	o := newTestOrrery(nil)
	o.SetSpeed(5)

	ctx := context.Background()
	for i := 0; i < 250; i++ {
		if err := o.Tick(ctx); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	if got := o.TrailLen("mars"); got != 200 {
		t.Errorf("trail length after 250 ticks = %d, expected the 200 bound", got)
	}
}

func TestOrreryTrailClearingPolicy(t *testing.T) {
	tests := []struct {
		name   string
		action func(o *Orrery)
		clears bool
	}{
		{"frame_switch", func(o *Orrery) { o.SetFrame(Geocentric) }, true},
		{"explicit_date_set", func(o *Orrery) { o.SetDays(1000) }, true},
		{"unit_nudge", func(o *Orrery) { o.NudgeDays(365.25) }, true},
		{"sync_now", func(o *Orrery) { o.SyncNow(time.Now()) }, true},
		{"direction_flip", func(o *Orrery) { o.SetDirection(Reverse) }, false},
		{"speed_change", func(o *Orrery) { o.SetSpeed(3) }, false},
		{"zoom", func(o *Orrery) { o.View().ZoomBy(1.1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrrery(nil)
			o.SetSpeed(1)
			ctx := context.Background()
			for i := 0; i < 10; i++ {
				if err := o.Tick(ctx); err != nil {
					t.Fatalf("Tick() failed: %v", err)
				}
			}

			tt.action(o)

			got := o.TrailLen("earth")
			if tt.clears && got != 0 {
				t.Errorf("trail length after %s = %d, expected cleared", tt.name, got)
			}
			if !tt.clears && got == 0 {
				t.Errorf("trail cleared by %s, expected preserved", tt.name)
			}
		})
	}
}

func TestOrreryGeocentricAnchor(t *testing.T) {
	o := newTestOrrery(nil)
	o.SetFrame(Geocentric)

	if err := o.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	st := o.State()
	if st.Anchor != st.Positions.Bodies[ephemeris.Earth] {
		t.Errorf("anchor = %v, expected earth at %v", st.Anchor, st.Positions.Bodies[ephemeris.Earth])
	}

	// Earth relative to the anchor sits at the render origin.
	rel := st.Positions.Bodies[ephemeris.Earth].Sub(st.Anchor)
	if rel.Length() != 0 {
		t.Errorf("earth relative position = %v, expected origin", rel)
	}
}

func TestOrreryReversePlayback(t *testing.T) {
	o := newTestOrrery(nil)
	o.SetDirection(Reverse)
	o.SetSpeed(2)

	ctx := context.Background()
	prev := o.Days()
	for i := 0; i < 20; i++ {
		if err := o.Tick(ctx); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
		if o.Days() >= prev {
			t.Fatalf("days did not decrease in reverse play: %v -> %v", prev, o.Days())
		}
		prev = o.Days()
	}
	if math.Abs(o.Days()-(-0.04)) > 1e-9 {
		t.Errorf("days after 20 reverse ticks at speed 2 = %v, expected -0.04", o.Days())
	}
}

func TestOrreryPublishesEvents(t *testing.T) {
	bus := event.NewEventBus()
	var types []event.Type
	for _, et := range []event.Type{
		event.FrameChanged, event.TrailsCleared, event.SpeedChanged,
		event.DirectionChanged, event.DateSet, event.ViewReset,
	} {
		et := et
		bus.Subscribe(et, func(event.Event) { types = append(types, et) })
	}

	o := newTestOrrery(bus)
	o.SetFrame(Geocentric)
	o.SetSpeed(1)
	o.SetDirection(Reverse)
	o.SetDays(50)
	o.ResetView(1024, 768)

	want := map[event.Type]bool{
		event.FrameChanged:     true,
		event.TrailsCleared:    true,
		event.SpeedChanged:     true,
		event.DirectionChanged: true,
		event.DateSet:          true,
		event.ViewReset:        true,
	}
	got := make(map[event.Type]bool)
	for _, et := range types {
		got[et] = true
	}
	for et := range want {
		if !got[et] {
			t.Errorf("event %s not published", et)
		}
	}
}

func TestOrrerySetFrameSameModeNoClear(t *testing.T) {
	o := newTestOrrery(nil)
	o.SetSpeed(1)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := o.Tick(ctx); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	o.SetFrame(Heliocentric) // already active

	if o.TrailLen("earth") != 5 {
		t.Errorf("re-selecting the active frame cleared trails")
	}
}
