package ephemeris

import (
	"context"
	"fmt"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/unit"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// vsopIndex maps body identifiers to planetposition table indices.
var vsopIndex = map[string]int{
	"mercury": planetposition.Mercury,
	"venus":   planetposition.Venus,
	"earth":   planetposition.Earth,
	"mars":    planetposition.Mars,
	"jupiter": planetposition.Jupiter,
	"saturn":  planetposition.Saturn,
	"uranus":  planetposition.Uranus,
	"neptune": planetposition.Neptune,
}

// VSOP87 is the optional high-precision provider. It takes each body's true
// heliocentric ecliptic longitude from the VSOP87 series and projects it
// onto the configured display radius, so bearings are real while the
// display geometry stays the stylized one. The lunar angle comes from the
// ELP-derived moonposition series; the node angle from the mean-node
// polynomial.
type VSOP87 struct {
	bodies  []config.BodyConfig
	planets map[string]*planetposition.V87Planet
}

// NewVSOP87 loads the VSOP87 data files for every configured body from dir.
// It fails if the data is missing or a configured body has no VSOP87 series;
// callers then run without an external provider.
func NewVSOP87(dir string, bodies []config.BodyConfig) (*VSOP87, error) {
	v := &VSOP87{
		bodies:  bodies,
		planets: make(map[string]*planetposition.V87Planet, len(bodies)),
	}
	for _, b := range bodies {
		idx, ok := vsopIndex[b.ID]
		if !ok {
			return nil, fmt.Errorf("no VSOP87 series for body %q", b.ID)
		}
		p, err := planetposition.LoadPlanetPath(idx, dir)
		if err != nil {
			return nil, fmt.Errorf("loading VSOP87 data for %s: %w", b.ID, err)
		}
		v.planets[b.ID] = p
	}
	return v, nil
}

// Name implements Provider.
func (v *VSOP87) Name() string { return "vsop87" }

// Compute implements Provider.
func (v *VSOP87) Compute(ctx context.Context, days float64) (PositionSet, error) {
	if err := ctx.Err(); err != nil {
		return PositionSet{}, err
	}

	jde := base.J2000 + days
	ps := PositionSet{
		Bodies: make(map[string]physics.Vector2D, len(v.bodies)+1),
	}
	ps.Bodies[Sun] = physics.Vector2D{}

	for _, b := range v.bodies {
		p, ok := v.planets[b.ID]
		if !ok {
			return PositionSet{}, fmt.Errorf("%w: %s", ErrIncompletePositions, b.ID)
		}
		lon, _, _ := p.Position2000(jde)
		ps.Bodies[b.ID] = physics.FromAngle(lon.Rad(), b.Distance)
	}

	moonLon, _, _ := moonposition.Position(jde)
	ps.MoonAbsAng = moonLon.Rad()
	ps.NodeAbsAng = meanNodeLongitude(JulianCenturies(days)).Rad()

	return ps, nil
}

// meanNodeLongitude evaluates the mean longitude of the Moon's ascending
// node (Meeus eq. 47.7) for a Julian-century fraction T.
func meanNodeLongitude(T float64) unit.Angle {
	deg := 125.0445479 +
		T*(-1934.1362891+
			T*(0.0020754+
				T*(1.0/467441-
					T/60616000)))
	return unit.AngleFromDeg(deg)
}
