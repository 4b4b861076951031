package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/control"
	"github.com/opd-ai/go-orrery/pkg/hud"
	"github.com/opd-ai/go-orrery/pkg/sim"
)

const hudScale = 0.5

// hudSystem owns the fixed text entities in the corner overlay. Like the
// scene pool, the entities are created once and only their text changes.
type hudSystem struct {
	font  *common.Font
	lines []*hudLine
}

type hudLine struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

func newHUDSystem(world *ecs.World, renderSystem *common.RenderSystem, font *common.Font) *hudSystem {
	h := &hudSystem{font: font}
	for i := 0; i < 4; i++ {
		line := &hudLine{basic: ecs.NewBasic()}
		line.render = common.RenderComponent{
			Drawable: common.Text{Font: font},
			Color:    color.RGBA{200, 200, 210, 255},
			Scale:    engo.Point{X: hudScale, Y: hudScale},
		}
		line.render.SetZIndex(1000)
		line.space = common.SpaceComponent{
			Position: engo.Point{X: 12, Y: float32(12 + i*20)},
		}
		renderSystem.Add(&line.basic, &line.render, &line.space)
		h.lines = append(h.lines, line)
	}
	return h
}

func (h *hudSystem) update(st *sim.State, unit control.Unit) {
	s := hud.Format(st)
	h.set(0, fmt.Sprintf("%s %s", s.Date, s.Time))
	h.set(1, fmt.Sprintf("%s | %s @ %s", s.Frame, s.Direction, s.Speed))
	h.set(2, fmt.Sprintf("zoom %s | step: %s", s.Zoom, unit))
	h.set(3, fmt.Sprintf("model: %s", s.Provider))
}

func (h *hudSystem) set(i int, text string) {
	h.lines[i].render.Drawable = common.Text{Font: h.font, Text: text}
}
