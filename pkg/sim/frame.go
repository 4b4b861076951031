package sim

import (
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// FrameMode selects the coordinate frame displayed coordinates are
// relative to.
type FrameMode int

const (
	Heliocentric FrameMode = iota
	Geocentric
)

// String returns the frame name.
func (m FrameMode) String() string {
	switch m {
	case Heliocentric:
		return "heliocentric"
	case Geocentric:
		return "geocentric"
	default:
		return "unknown"
	}
}

// ResolveAnchor computes the point subtracted from every body's raw
// coordinate before display. Heliocentric anchors at the origin;
// Geocentric anchors at Earth, falling back to the origin if Earth is not
// in the set. This keeps Earth at the render origin in geocentric mode
// without touching the underlying position model.
func ResolveAnchor(positions ephemeris.PositionSet, mode FrameMode) physics.Vector2D {
	if mode == Geocentric {
		if earth, ok := positions.Bodies[ephemeris.Earth]; ok {
			return earth
		}
	}
	return physics.Vector2D{}
}
