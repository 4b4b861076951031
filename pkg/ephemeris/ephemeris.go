// Package ephemeris computes body positions for the orrery. It defines the
// provider contract, the always-available linear-rate model, an optional
// VSOP87-backed high-precision provider, and the guard that falls back to
// the linear model permanently once the external provider fails.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Well-known body identifiers. Sun is the synthetic entry every PositionSet
// carries, always at the origin in heliocentric display units. Earth is the
// geocentric anchor body.
const (
	Sun   = "sun"
	Earth = "earth"
)

// Sentinel errors for provider failure classification.
var (
	ErrIncompletePositions = errors.New("position set is missing required entries")
	ErrProviderDisabled    = errors.New("external provider disabled for this session")
)

// PositionSet maps body identifiers to display-unit coordinates for one
// instant, plus the two lunar angles. It is derived state: recomputed from
// days on demand, never accumulated.
type PositionSet struct {
	Bodies     map[string]physics.Vector2D
	MoonAbsAng float64 // radians, prograde
	NodeAbsAng float64 // radians, retrograde (negative rate)
}

// Provider computes positions for a simulated time, expressed as days since
// the reference epoch (2000-01-01 12:00 UTC). Implementations may suspend;
// the context bounds any underlying I/O.
type Provider interface {
	Name() string
	Compute(ctx context.Context, days float64) (PositionSet, error)
}

// Validate checks that the set carries every configured body, the sun entry,
// and finite values. A set failing validation is treated as a provider
// failure by the guard.
func (ps PositionSet) Validate(ids []string) error {
	if ps.Bodies == nil {
		return fmt.Errorf("%w: nil body map", ErrIncompletePositions)
	}
	if _, ok := ps.Bodies[Sun]; !ok {
		return fmt.Errorf("%w: %s", ErrIncompletePositions, Sun)
	}
	for _, id := range ids {
		p, ok := ps.Bodies[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrIncompletePositions, id)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: non-finite position for %s", ErrIncompletePositions, id)
		}
	}
	if math.IsNaN(ps.MoonAbsAng) || math.IsNaN(ps.NodeAbsAng) {
		return fmt.Errorf("%w: non-finite lunar angles", ErrIncompletePositions)
	}
	return nil
}
