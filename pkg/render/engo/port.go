// Package engo hosts the scene on the Engo game engine. Each drawable
// primitive becomes one ECS entity in a common.RenderSystem; the port
// updates components in place so the entity set stays fixed for the life
// of the window, matching the pool contract.
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/render"
)

// fontSize is the size the HUD font atlas is generated at. Text
// primitives scale relative to it.
const fontSize = 32

type primitive struct {
	kind   render.Kind
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent

	// polyline segment entities, grown on demand and recycled
	segments []*segment
	used     int

	z       float32
	visible bool
}

type segment struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// Port implements render.ScenePort on an Engo world.
type Port struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	font         *common.Font
	prims        []*primitive
}

// NewPort creates a port bound to a world whose RenderSystem is already
// registered. The font must be preloaded.
func NewPort(world *ecs.World, renderSystem *common.RenderSystem, font *common.Font) *Port {
	return &Port{
		world:        world,
		renderSystem: renderSystem,
		font:         font,
	}
}

// Create implements render.ScenePort.
func (p *Port) Create(kind render.Kind) render.ID {
	prim := &primitive{
		kind:    kind,
		basic:   ecs.NewBasic(),
		visible: true,
	}

	switch kind {
	case render.KindCircle:
		prim.render = common.RenderComponent{Drawable: common.Circle{}}
	case render.KindLine:
		prim.render = common.RenderComponent{Drawable: common.Rectangle{}}
	case render.KindPolyline:
		// Segments are added lazily in Set; the parent entity itself
		// draws nothing.
		prim.render = common.RenderComponent{Drawable: common.Rectangle{}, Hidden: true}
	case render.KindText:
		prim.render = common.RenderComponent{Drawable: common.Text{Font: p.font}}
	}
	prim.z = float32(len(p.prims))
	prim.render.SetZIndex(prim.z)
	prim.space = common.SpaceComponent{}

	p.renderSystem.Add(&prim.basic, &prim.render, &prim.space)

	id := render.ID(len(p.prims))
	p.prims = append(p.prims, prim)
	return id
}

// Set implements render.ScenePort.
func (p *Port) Set(id render.ID, attrs render.Attrs) {
	prim := p.prims[id]

	switch prim.kind {
	case render.KindCircle:
		p.setCircle(prim, attrs)
	case render.KindLine:
		p.setLine(prim, attrs)
	case render.KindPolyline:
		p.setPolyline(prim, attrs)
	case render.KindText:
		p.setText(prim, attrs)
	}
	p.applyVisibility(prim)
}

// SetVisible implements render.ScenePort.
func (p *Port) SetVisible(id render.ID, visible bool) {
	prim := p.prims[id]
	prim.visible = visible
	p.applyVisibility(prim)
}

// Viewport implements render.ScenePort.
func (p *Port) Viewport() (float64, float64) {
	return float64(engo.GameWidth()), float64(engo.GameHeight())
}

func (p *Port) applyVisibility(prim *primitive) {
	hidden := !prim.visible
	if prim.kind != render.KindPolyline {
		prim.render.Hidden = hidden
		return
	}
	for i, seg := range prim.segments {
		seg.render.Hidden = hidden || i >= prim.used
	}
}

func (p *Port) setCircle(prim *primitive, a render.Attrs) {
	circle := common.Circle{}
	if a.Stroke > 0 {
		circle.BorderWidth = float32(a.Stroke)
		circle.BorderColor = a.Color
		prim.render.Color = color.RGBA{0, 0, 0, 0}
	} else {
		prim.render.Color = a.Color
	}
	prim.render.Drawable = circle
	prim.space.Position = engo.Point{X: float32(a.X - a.Radius), Y: float32(a.Y - a.Radius)}
	prim.space.Width = float32(2 * a.Radius)
	prim.space.Height = float32(2 * a.Radius)
}

func (p *Port) setLine(prim *primitive, a render.Attrs) {
	dx, dy := a.X2-a.X, a.Y2-a.Y
	length := math.Hypot(dx, dy)
	stroke := a.Stroke
	if stroke <= 0 {
		stroke = 1
	}
	prim.render.Color = a.Color
	prim.space.Position = engo.Point{X: float32(a.X), Y: float32(a.Y)}
	prim.space.Width = float32(length)
	prim.space.Height = float32(stroke)
	prim.space.Rotation = float32(math.Atan2(dy, dx) * 180 / math.Pi)
}

// setPolyline lays trail dots along the vertex list. Dot entities are
// created the first time a longer trail appears and recycled afterwards,
// so steady-state updates allocate nothing.
func (p *Port) setPolyline(prim *primitive, a render.Attrs) {
	size := a.Stroke * 2
	if size < 2 {
		size = 2
	}
	for len(prim.segments) < len(a.Points) {
		seg := &segment{basic: ecs.NewBasic()}
		seg.render = common.RenderComponent{Drawable: common.Circle{}, Hidden: true}
		seg.render.SetZIndex(prim.z)
		p.renderSystem.Add(&seg.basic, &seg.render, &seg.space)
		prim.segments = append(prim.segments, seg)
	}
	prim.used = len(a.Points)
	for i, seg := range prim.segments {
		if i >= prim.used {
			continue
		}
		pt := a.Points[i]
		seg.render.Color = a.Color
		seg.space.Position = engo.Point{X: float32(pt.X - size/2), Y: float32(pt.Y - size/2)}
		seg.space.Width = float32(size)
		seg.space.Height = float32(size)
	}
}

func (p *Port) setText(prim *primitive, a render.Attrs) {
	prim.render.Drawable = common.Text{Font: p.font, Text: a.Text}
	prim.render.Color = a.Color
	scale := float32(a.Size / fontSize)
	if scale <= 0 {
		scale = 1
	}
	prim.render.Scale = engo.Point{X: scale, Y: scale}
	prim.space.Position = engo.Point{X: float32(a.X), Y: float32(a.Y)}
}
