package ephemeris

import (
	"context"
	"math"
	"testing"

	"github.com/opd-ai/go-orrery/pkg/config"
)

func defaultLinear() *Linear {
	return NewLinear(config.DefaultConfig().Bodies)
}

func TestLinearSunAlwaysAtOrigin(t *testing.T) {
	model := defaultLinear()
	for _, days := range []float64{0, 1, -1, 365.25, -100000, 1e7} {
		ps := model.At(days)
		sun := ps.Bodies[Sun]
		if sun.X != 0 || sun.Y != 0 {
			t.Errorf("sun at days=%v is %v, expected origin", days, sun)
		}
	}
}

func TestLinearRadiusIsExact(t *testing.T) {
	cfg := config.DefaultConfig()
	model := NewLinear(cfg.Bodies)

	for _, days := range []float64{0, 17.3, -9125.25, 36525} {
		ps := model.At(days)
		for _, b := range cfg.Bodies {
			r := ps.Bodies[b.ID].Length()
			if math.Abs(r-b.Distance) > 1e-9 {
				t.Errorf("%s at days=%v: radius %v, expected %v", b.ID, days, r, b.Distance)
			}
		}
	}
}

func TestLinearMercuryAtEpoch(t *testing.T) {
	ps := defaultLinear().At(0)
	mercury := ps.Bodies["mercury"]

	wantX := 350 * math.Cos(252.2*math.Pi/180)
	wantY := 350 * math.Sin(252.2*math.Pi/180)
	if math.Abs(mercury.X-wantX) > 1e-9 || math.Abs(mercury.Y-wantY) > 1e-9 {
		t.Errorf("mercury at epoch = %v, expected (%v, %v)", mercury, wantX, wantY)
	}
	// Sanity against the known third-quadrant placement.
	if mercury.X > -106 || mercury.X < -108 || mercury.Y > -333 || mercury.Y < -334 {
		t.Errorf("mercury at epoch = %v, expected roughly (-107, -333.3)", mercury)
	}
}

func TestLinearLunarAngles(t *testing.T) {
	model := defaultLinear()

	ps := model.At(27.321)
	if math.Abs(ps.MoonAbsAng-2*math.Pi) > 1e-9 {
		t.Errorf("moon angle after one sidereal period = %v, expected 2π", ps.MoonAbsAng)
	}

	ps = model.At(100)
	if ps.MoonAbsAng <= 0 {
		t.Errorf("moon angle at positive days should be positive (prograde), got %v", ps.MoonAbsAng)
	}
	if ps.NodeAbsAng >= 0 {
		t.Errorf("node angle at positive days should be negative (retrograde), got %v", ps.NodeAbsAng)
	}

	ps = model.At(6793.5)
	if math.Abs(ps.NodeAbsAng+2*math.Pi) > 1e-9 {
		t.Errorf("node angle after one regression period = %v, expected -2π", ps.NodeAbsAng)
	}
}

func TestLinearComputeNeverFails(t *testing.T) {
	model := defaultLinear()
	ps, err := model.Compute(context.Background(), -12345.6)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	if err := ps.Validate(config.DefaultConfig().BodyIDs()); err != nil {
		t.Errorf("linear result failed validation: %v", err)
	}
}

func TestPositionSetValidate(t *testing.T) {
	ids := []string{"mercury", "earth"}

	tests := []struct {
		name    string
		mutate  func(*PositionSet)
		wantErr bool
	}{
		{"complete", func(*PositionSet) {}, false},
		{"missing_sun", func(ps *PositionSet) { delete(ps.Bodies, Sun) }, true},
		{"missing_body", func(ps *PositionSet) { delete(ps.Bodies, "earth") }, true},
		{"nan_position", func(ps *PositionSet) {
			p := ps.Bodies["mercury"]
			p.X = math.NaN()
			ps.Bodies["mercury"] = p
		}, true},
		{"nan_angle", func(ps *PositionSet) { ps.MoonAbsAng = math.NaN() }, true},
		{"nil_map", func(ps *PositionSet) { ps.Bodies = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh := defaultLinear().At(0)
			tt.mutate(&fresh)
			err := fresh.Validate(ids)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
