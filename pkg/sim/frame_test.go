package sim

import (
	"testing"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

func TestResolveAnchorHeliocentric(t *testing.T) {
	model := ephemeris.NewLinear(config.DefaultConfig().Bodies)
	for _, days := range []float64{0, 100, -9999.5} {
		ps := model.At(days)
		anchor := ResolveAnchor(ps, Heliocentric)
		if anchor != (physics.Vector2D{}) {
			t.Errorf("heliocentric anchor at days=%v is %v, expected origin", days, anchor)
		}
	}
}

func TestResolveAnchorGeocentric(t *testing.T) {
	model := ephemeris.NewLinear(config.DefaultConfig().Bodies)
	ps := model.At(42.5)

	anchor := ResolveAnchor(ps, Geocentric)
	if anchor != ps.Bodies[ephemeris.Earth] {
		t.Errorf("geocentric anchor = %v, expected earth position %v", anchor, ps.Bodies[ephemeris.Earth])
	}
}

func TestResolveAnchorGeocentricWithoutEarth(t *testing.T) {
	ps := ephemeris.PositionSet{
		Bodies: map[string]physics.Vector2D{
			ephemeris.Sun: {},
			"mercury":     {X: 1, Y: 2},
		},
	}
	anchor := ResolveAnchor(ps, Geocentric)
	if anchor != (physics.Vector2D{}) {
		t.Errorf("anchor without earth = %v, expected defensive origin", anchor)
	}
}

func TestFrameModeString(t *testing.T) {
	if Heliocentric.String() != "heliocentric" || Geocentric.String() != "geocentric" {
		t.Errorf("unexpected frame names: %q, %q", Heliocentric.String(), Geocentric.String())
	}
}
