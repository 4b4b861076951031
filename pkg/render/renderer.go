package render

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/sim"
)

// Base sizes for world-space drawables, in display units. They pass
// through the level-of-detail scale before projection so markers stay
// legible at extreme zoom-out without overwhelming the scene zoomed in.
const (
	baseMarkerRadius    = 22
	baseGlyphSize       = 34
	baseSunRadius       = 30
	baseMoonRadius      = 9
	baseLabelSize       = 28
	baseNodeGlyphSize   = 24
	baseRingStroke      = 1.0
	baseTrailStroke     = 1.2
	baseConnectorStroke = 0.6
)

// Screen-space zodiac furniture, in pixels. Fixed visual size regardless
// of zoom.
const (
	zodiacStrokePx = 1.0
	zodiacLabelPx  = 14
)

var zodiacGlyphs = [12]string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}

// LODSize applies sub-linear zoom compensation to a world-space size:
// glyphs and markers shrink more slowly than strict inverse zoom.
func LODSize(v, zoom float64) float64 {
	return v / math.Pow(zoom, 0.6)
}

// LODStroke applies plain inverse-zoom compensation to a world-space
// stroke width, keeping line weights constant on screen.
func LODStroke(w, zoom float64) float64 {
	return w / zoom
}

// bodyDrawables holds the fixed primitive set allocated per body.
type bodyDrawables struct {
	orbit      ID
	marker     ID
	glyph      ID
	trail      ID
	connector  ID
	outerLabel ID
}

// SceneRenderer owns the DrawablePool exclusively: it creates every
// primitive once at construction and afterwards only updates attributes
// and visibility. It consumes sim.State snapshots; it never mutates the
// simulation.
type SceneRenderer struct {
	port ScenePort
	cfg  *config.SimConfig

	bodies map[string]bodyDrawables
	colors map[string]color.RGBA

	sunMarker ID
	sunGlyph  ID

	outerRing      ID
	zodiacRing     ID
	zodiacDividers [12]ID
	zodiacLabels   [12]ID

	moonOrbit  ID
	moonMarker ID
	nodeAsc    ID
	nodeDesc   ID
}

// NewSceneRenderer builds the drawable pool on the given port. Creation
// order fixes z-order on hosts that paint in insertion order: rings and
// trails below markers, labels on top.
func NewSceneRenderer(port ScenePort, cfg *config.SimConfig) *SceneRenderer {
	r := &SceneRenderer{
		port:   port,
		cfg:    cfg,
		bodies: make(map[string]bodyDrawables, len(cfg.Bodies)),
		colors: make(map[string]color.RGBA, len(cfg.Bodies)),
	}

	r.outerRing = port.Create(KindCircle)

	for _, b := range cfg.Bodies {
		r.colors[b.ID] = ParseHexColor(b.Color)
		r.bodies[b.ID] = bodyDrawables{
			orbit:      port.Create(KindCircle),
			trail:      port.Create(KindPolyline),
			connector:  port.Create(KindLine),
			marker:     port.Create(KindCircle),
			glyph:      port.Create(KindText),
			outerLabel: port.Create(KindText),
		}
	}

	r.moonOrbit = port.Create(KindCircle)
	r.moonMarker = port.Create(KindCircle)
	r.nodeAsc = port.Create(KindText)
	r.nodeDesc = port.Create(KindText)

	r.sunMarker = port.Create(KindCircle)
	r.sunGlyph = port.Create(KindText)

	r.zodiacRing = port.Create(KindCircle)
	for i := range r.zodiacDividers {
		r.zodiacDividers[i] = port.Create(KindLine)
	}
	for i := range r.zodiacLabels {
		r.zodiacLabels[i] = port.Create(KindText)
	}

	return r
}

// UpdateScene maps one simulation snapshot onto the pool. Called once per
// tick; allocates no primitives.
func (r *SceneRenderer) UpdateScene(st *sim.State) {
	vw, vh := r.port.Viewport()
	center := physics.Vector2D{X: vw / 2, Y: vh / 2}.Add(st.Pan)
	zoom := st.Zoom

	// The anchor projects to the pan-adjusted viewport center; every
	// world-space drawable is positioned relative to it.
	toScreen := func(world physics.Vector2D) physics.Vector2D {
		return world.Sub(st.Anchor).Scale(zoom).Add(center)
	}

	geocentric := st.Frame == sim.Geocentric

	r.updateOuterRing(center, zoom)
	r.updateBodies(st, toScreen, center, zoom, geocentric)
	r.updateSun(st, toScreen, zoom)
	r.updateMoonSystem(st, toScreen, zoom)
	r.updateZodiac(st, toScreen)
}

// updateOuterRing draws the fixed-radius bearing ring. Its center follows
// the anchor, which projects to the viewport center in both frames.
func (r *SceneRenderer) updateOuterRing(center physics.Vector2D, zoom float64) {
	r.port.Set(r.outerRing, Attrs{
		X:      center.X,
		Y:      center.Y,
		Radius: r.cfg.Rings.OuterRadius * zoom,
		Stroke: LODStroke(baseRingStroke, zoom) * zoom,
		Color:  color.RGBA{90, 90, 110, 255},
	})
}

func (r *SceneRenderer) updateBodies(st *sim.State, toScreen func(physics.Vector2D) physics.Vector2D, center physics.Vector2D, zoom float64, geocentric bool) {
	markerR := LODSize(baseMarkerRadius, zoom) * zoom
	glyphS := LODSize(baseGlyphSize, zoom) * zoom
	labelS := LODSize(baseLabelSize, zoom) * zoom
	ringW := LODStroke(baseRingStroke, zoom) * zoom
	trailW := LODStroke(baseTrailStroke, zoom) * zoom
	connW := LODStroke(baseConnectorStroke, zoom) * zoom

	for _, b := range r.cfg.Bodies {
		d := r.bodies[b.ID]
		pos, ok := st.Positions.Bodies[b.ID]
		if !ok {
			r.hideBody(d)
			continue
		}

		hidden := geocentric && b.ID == ephemeris.Earth
		screen := toScreen(pos)
		col := r.colors[b.ID]

		// Orbit ring: centered on the sun's projection, which is the
		// world origin in both frames.
		r.port.SetVisible(d.orbit, st.ShowOrbits && !hidden)
		r.port.Set(d.orbit, Attrs{
			X:      toScreen(physics.Vector2D{}).X,
			Y:      toScreen(physics.Vector2D{}).Y,
			Radius: b.Distance * zoom,
			Stroke: ringW,
			Color:  dim(col),
		})

		r.port.SetVisible(d.marker, !hidden)
		r.port.Set(d.marker, Attrs{
			X:      screen.X,
			Y:      screen.Y,
			Radius: markerR,
			Color:  col,
		})

		r.port.SetVisible(d.glyph, !hidden)
		r.port.Set(d.glyph, Attrs{
			X:     screen.X,
			Y:     screen.Y - markerR*1.8,
			Size:  glyphS,
			Color: col,
			Text:  b.Symbol,
		})

		// Trail: anchor-relative history projected fresh each tick so
		// it stays consistent with markers under pan/zoom.
		trail := st.Trails[b.ID]
		showTrail := st.ShowTrails && !hidden && len(trail) >= 2
		r.port.SetVisible(d.trail, showTrail)
		if showTrail {
			pts := make([]physics.Vector2D, len(trail))
			for i, rel := range trail {
				pts[i] = rel.Scale(zoom).Add(center)
			}
			r.port.Set(d.trail, Attrs{
				Points: pts,
				Stroke: trailW,
				Color:  dim(col),
			})
		}

		// Outer bearing marker: the body's angle from the ring center,
		// projected to the constant label radius, with a faint
		// connector back to the true position.
		bearing := pos.Sub(st.Anchor).Angle()
		labelPos := physics.FromAngle(bearing, r.cfg.Rings.OuterRadius).Scale(zoom).Add(center)
		connEnd := physics.FromAngle(bearing, r.cfg.Rings.ConnectorRadius).Scale(zoom).Add(center)

		r.port.SetVisible(d.outerLabel, !hidden)
		r.port.Set(d.outerLabel, Attrs{
			X:     labelPos.X,
			Y:     labelPos.Y,
			Size:  labelS,
			Color: col,
			Text:  b.Symbol,
		})

		r.port.SetVisible(d.connector, !hidden)
		r.port.Set(d.connector, Attrs{
			X:      screen.X,
			Y:      screen.Y,
			X2:     connEnd.X,
			Y2:     connEnd.Y,
			Stroke: connW,
			Color:  faint(col),
		})
	}
}

// updateSun positions the sun marker. The sun never gets an orbit ring or
// outer-ring placement; it has no orbit around itself.
func (r *SceneRenderer) updateSun(st *sim.State, toScreen func(physics.Vector2D) physics.Vector2D, zoom float64) {
	sunPos, ok := st.Positions.Bodies[ephemeris.Sun]
	if !ok {
		r.port.SetVisible(r.sunMarker, false)
		r.port.SetVisible(r.sunGlyph, false)
		return
	}
	screen := toScreen(sunPos)
	radius := LODSize(baseSunRadius, zoom) * zoom

	r.port.SetVisible(r.sunMarker, true)
	r.port.Set(r.sunMarker, Attrs{
		X:      screen.X,
		Y:      screen.Y,
		Radius: radius,
		Color:  color.RGBA{253, 184, 19, 255},
	})

	r.port.SetVisible(r.sunGlyph, true)
	r.port.Set(r.sunGlyph, Attrs{
		X:     screen.X,
		Y:     screen.Y - radius*1.6,
		Size:  LODSize(baseGlyphSize, zoom) * zoom,
		Color: color.RGBA{253, 184, 19, 255},
		Text:  "☉",
	})
}

// updateMoonSystem draws the moon's display orbit around Earth plus the
// two node glyphs. The subsystem is world-space: it scales and pans with
// the rest of the scene.
func (r *SceneRenderer) updateMoonSystem(st *sim.State, toScreen func(physics.Vector2D) physics.Vector2D, zoom float64) {
	earthPos, ok := st.Positions.Bodies[ephemeris.Earth]
	if !ok {
		r.port.SetVisible(r.moonOrbit, false)
		r.port.SetVisible(r.moonMarker, false)
		r.port.SetVisible(r.nodeAsc, false)
		r.port.SetVisible(r.nodeDesc, false)
		return
	}

	earthScreen := toScreen(earthPos)
	orbitR := r.cfg.Rings.MoonOrbitRadius

	r.port.SetVisible(r.moonOrbit, true)
	r.port.Set(r.moonOrbit, Attrs{
		X:      earthScreen.X,
		Y:      earthScreen.Y,
		Radius: orbitR * zoom,
		Stroke: LODStroke(baseRingStroke, zoom) * zoom,
		Color:  color.RGBA{120, 120, 130, 255},
	})

	moonPos := toScreen(earthPos.Add(physics.FromAngle(st.Positions.MoonAbsAng, orbitR)))
	r.port.SetVisible(r.moonMarker, true)
	r.port.Set(r.moonMarker, Attrs{
		X:      moonPos.X,
		Y:      moonPos.Y,
		Radius: LODSize(baseMoonRadius, zoom) * zoom,
		Color:  color.RGBA{220, 220, 220, 255},
	})

	nodeR := r.cfg.Rings.NodeMarkerRadius
	nodeSize := LODSize(baseNodeGlyphSize, zoom) * zoom
	asc := toScreen(earthPos.Add(physics.FromAngle(st.Positions.NodeAbsAng, nodeR)))
	desc := toScreen(earthPos.Add(physics.FromAngle(st.Positions.NodeAbsAng+math.Pi, nodeR)))

	r.port.SetVisible(r.nodeAsc, true)
	r.port.Set(r.nodeAsc, Attrs{
		X: asc.X, Y: asc.Y, Size: nodeSize,
		Color: color.RGBA{170, 170, 190, 255},
		Text:  "☊",
	})
	r.port.SetVisible(r.nodeDesc, true)
	r.port.Set(r.nodeDesc, Attrs{
		X: desc.X, Y: desc.Y, Size: nodeSize,
		Color: color.RGBA{170, 170, 190, 255},
		Text:  "☋",
	})
}

// updateZodiac draws the screen-space ring: fixed pixel radius anchored to
// Earth's current screen projection, so it never scales with zoom while
// its dividers still track Earth.
func (r *SceneRenderer) updateZodiac(st *sim.State, toScreen func(physics.Vector2D) physics.Vector2D) {
	earthPos, ok := st.Positions.Bodies[ephemeris.Earth]
	if !ok {
		r.port.SetVisible(r.zodiacRing, false)
		for i := range r.zodiacDividers {
			r.port.SetVisible(r.zodiacDividers[i], false)
			r.port.SetVisible(r.zodiacLabels[i], false)
		}
		return
	}

	earthScreen := toScreen(earthPos)
	radius := r.cfg.Rings.ZodiacScreenRadius
	ringColor := color.RGBA{80, 90, 120, 255}

	r.port.SetVisible(r.zodiacRing, true)
	r.port.Set(r.zodiacRing, Attrs{
		X:      earthScreen.X,
		Y:      earthScreen.Y,
		Radius: radius,
		Stroke: zodiacStrokePx,
		Color:  ringColor,
	})

	boundaries := r.cfg.Rings.ZodiacBoundaries
	for i := 0; i < 12; i++ {
		start := float64(i) * 30
		if len(boundaries) == 12 {
			start = boundaries[i]
		}
		angle := start * math.Pi / 180
		end := physics.FromAngle(angle, radius).Add(earthScreen)

		r.port.SetVisible(r.zodiacDividers[i], true)
		r.port.Set(r.zodiacDividers[i], Attrs{
			X:      earthScreen.X,
			Y:      earthScreen.Y,
			X2:     end.X,
			Y2:     end.Y,
			Stroke: zodiacStrokePx,
			Color:  ringColor,
		})

		labelPos := physics.FromAngle(angle+15*math.Pi/180, radius*0.9).Add(earthScreen)
		r.port.SetVisible(r.zodiacLabels[i], true)
		r.port.Set(r.zodiacLabels[i], Attrs{
			X:     labelPos.X,
			Y:     labelPos.Y,
			Size:  zodiacLabelPx,
			Color: ringColor,
			Text:  zodiacGlyphs[i],
		})
	}
}

func (r *SceneRenderer) hideBody(d bodyDrawables) {
	r.port.SetVisible(d.orbit, false)
	r.port.SetVisible(d.marker, false)
	r.port.SetVisible(d.glyph, false)
	r.port.SetVisible(d.trail, false)
	r.port.SetVisible(d.connector, false)
	r.port.SetVisible(d.outerLabel, false)
}

// ParseHexColor parses "#RRGGBB" into an opaque RGBA, returning a neutral
// gray for anything unparseable.
func ParseHexColor(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{128, 128, 128, 255}
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(s[1+i*2])
		lo, ok2 := hexVal(s[2+i*2])
		if !ok1 || !ok2 {
			return color.RGBA{128, 128, 128, 255}
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}
}

func hexVal(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// dim halves a color's intensity for secondary strokes.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
}

// faint quarters a color's intensity for the bearing connectors.
func faint(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 4, c.G / 4, c.B / 4, 255}
}
