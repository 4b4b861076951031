package ephemeris

import (
	"context"
	"math"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Lunar periods driving the two synthetic angles.
const (
	siderealLunarPeriod  = 27.321  // days, prograde
	nodeRegressionPeriod = 6793.5  // days, retrograde
)

// Linear is the built-in ephemeris model: each body moves on a perfect
// circle at its configured mean rate. It is exact by construction, never
// fails, and serves as both the default provider and the fallback target.
type Linear struct {
	bodies []config.BodyConfig
}

// NewLinear creates a linear provider from the configured body table.
func NewLinear(bodies []config.BodyConfig) *Linear {
	return &Linear{bodies: bodies}
}

// Name implements Provider.
func (l *Linear) Name() string { return "linear" }

// Compute implements Provider. It is a pure function of days and never
// returns an error; the Provider signature is kept for interchangeability
// with external providers.
func (l *Linear) Compute(_ context.Context, days float64) (PositionSet, error) {
	return l.At(days), nil
}

// At evaluates the model at the given epoch-relative days.
func (l *Linear) At(days float64) PositionSet {
	T := JulianCenturies(days)

	ps := PositionSet{
		Bodies:     make(map[string]physics.Vector2D, len(l.bodies)+1),
		MoonAbsAng: days * (360 / siderealLunarPeriod) * math.Pi / 180,
		NodeAbsAng: -days * (360 / nodeRegressionPeriod) * math.Pi / 180,
	}
	ps.Bodies[Sun] = physics.Vector2D{}

	for _, b := range l.bodies {
		lon := math.Mod(b.BaseLongitude+b.Rate*T, 360)
		ps.Bodies[b.ID] = physics.FromAngle(lon*math.Pi/180, b.Distance)
	}
	return ps
}
