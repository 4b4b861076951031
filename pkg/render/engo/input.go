package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/control"
)

// inputSystem translates engine input into controller gestures. All
// simulation mutation goes through the controller; this system holds only
// transient gesture state.
type inputSystem struct {
	controller *control.Controller

	dragging         bool
	lastMouseX       float32
	lastMouseY       float32
	speedNotch       int
	availableNotches []float64
}

func newInputSystem(controller *control.Controller) *inputSystem {
	return &inputSystem{
		controller:       controller,
		availableNotches: []float64{0, 1, 5, 25, 100, 500},
	}
}

// registerBindings sets up the key map once per window.
func registerBindings() {
	engo.Input.RegisterButton("pause", engo.KeySpace)
	engo.Input.RegisterButton("frame", engo.KeyF)
	engo.Input.RegisterButton("direction", engo.KeyD)
	engo.Input.RegisterButton("resetView", engo.KeyR)
	engo.Input.RegisterButton("trails", engo.KeyT)
	engo.Input.RegisterButton("orbits", engo.KeyO)
	engo.Input.RegisterButton("unit", engo.KeyU)
	engo.Input.RegisterButton("syncNow", engo.KeyN)
	engo.Input.RegisterButton("faster", engo.KeyRightBracket)
	engo.Input.RegisterButton("slower", engo.KeyLeftBracket)
	engo.Input.RegisterButton("nudgeFwd", engo.KeyArrowRight)
	engo.Input.RegisterButton("nudgeBack", engo.KeyArrowLeft)
	engo.Input.RegisterButton("unitWheel", engo.KeyLeftShift)
}

func (is *inputSystem) Add(basic *ecs.BasicEntity, r *common.RenderComponent, sp *common.SpaceComponent) {
}

func (is *inputSystem) Remove(basic ecs.BasicEntity) {}

func (is *inputSystem) Update(dt float32) {
	is.handleWheel()
	is.handleDrag()
	is.handleKeys()
}

// handleWheel routes the scroll wheel: over the scene it zooms, with the
// unit modifier held it nudges the clock by the selected unit.
func (is *inputSystem) handleWheel() {
	scroll := float64(engo.Input.Mouse.ScrollY)
	if scroll == 0 {
		return
	}
	if engo.Input.Button("unitWheel").Down() {
		is.controller.WheelUnit(scroll)
		return
	}
	is.controller.WheelViewport(scroll)
}

func (is *inputSystem) handleDrag() {
	mouse := engo.Input.Mouse
	switch mouse.Action {
	case engo.Press:
		is.dragging = true
		is.lastMouseX, is.lastMouseY = mouse.X, mouse.Y
	case engo.Release:
		is.dragging = false
	case engo.Move:
		if !is.dragging {
			return
		}
		dx := float64(mouse.X - is.lastMouseX)
		dy := float64(mouse.Y - is.lastMouseY)
		is.lastMouseX, is.lastMouseY = mouse.X, mouse.Y
		if dx != 0 || dy != 0 {
			is.controller.DragPan(dx, dy)
		}
	}
}

func (is *inputSystem) handleKeys() {
	if engo.Input.Button("pause").JustPressed() {
		is.controller.TogglePause()
	}
	if engo.Input.Button("frame").JustPressed() {
		is.controller.ToggleFrame()
	}
	if engo.Input.Button("direction").JustPressed() {
		is.controller.ToggleDirection()
	}
	if engo.Input.Button("resetView").JustPressed() {
		w, h := float64(engo.GameWidth()), float64(engo.GameHeight())
		is.controller.ResetView(w, h)
	}
	if engo.Input.Button("trails").JustPressed() {
		is.controller.ToggleTrails()
	}
	if engo.Input.Button("orbits").JustPressed() {
		is.controller.ToggleOrbits()
	}
	if engo.Input.Button("unit").JustPressed() {
		is.controller.CycleUnit()
	}
	if engo.Input.Button("syncNow").JustPressed() {
		is.controller.SyncNow()
	}
	if engo.Input.Button("faster").JustPressed() {
		is.stepSpeed(1)
	}
	if engo.Input.Button("slower").JustPressed() {
		is.stepSpeed(-1)
	}
	if engo.Input.Button("nudgeFwd").JustPressed() {
		is.controller.WheelUnit(1)
	}
	if engo.Input.Button("nudgeBack").JustPressed() {
		is.controller.WheelUnit(-1)
	}
}

func (is *inputSystem) stepSpeed(step int) {
	is.speedNotch += step
	if is.speedNotch < 0 {
		is.speedNotch = 0
	}
	if is.speedNotch >= len(is.availableNotches) {
		is.speedNotch = len(is.availableNotches) - 1
	}
	is.controller.SetSpeed(is.availableNotches[is.speedNotch])
}
