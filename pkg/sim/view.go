package sim

import (
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// ZoomEpsilon is the floor every zoom value is clamped to. Zoom at or
// below zero would collapse or invert the scene.
const ZoomEpsilon = 1e-6

// View is the pan/zoom transform applied to the whole world-space scene.
// Pan is a screen-space offset from the viewport center.
type View struct {
	zoom float64
	pan  physics.Vector2D
}

// NewView creates a view at the default scale with no pan.
func NewView() *View {
	return &View{zoom: 0.1}
}

// Zoom returns the current display-units-to-pixels scale.
func (v *View) Zoom() float64 { return v.zoom }

// Pan returns the current screen-space offset.
func (v *View) Pan() physics.Vector2D { return v.pan }

// SetZoom sets the scale, clamped to the epsilon floor. There is no upper
// bound.
func (v *View) SetZoom(zoom float64) {
	if zoom < ZoomEpsilon {
		zoom = ZoomEpsilon
	}
	v.zoom = zoom
}

// ZoomBy multiplies the scale by factor, clamped at the floor. Wheel
// events use the configured step factors (1.1 in, 0.9 out), giving pure
// exponential zoom.
func (v *View) ZoomBy(factor float64) {
	v.SetZoom(v.zoom * factor)
}

// PanBy accumulates a pointer-movement delta into the pan offset.
func (v *View) PanBy(delta physics.Vector2D) {
	v.pan = v.pan.Add(delta)
}

// Reset recomputes zoom and pan to fit a ring of the given display-unit
// radius into the configured fraction of the usable viewport (width minus
// the sidebar allowance), capping zoom and centering the view.
func (v *View) Reset(viewportW, viewportH float64, cfg config.ViewConfig, ringRadius float64) {
	usableW := viewportW - cfg.SidebarAllowance
	if usableW < 1 {
		usableW = 1
	}
	usable := usableW
	if viewportH < usable {
		usable = viewportH
	}

	zoom := usable * cfg.FitFraction / ringRadius
	if zoom > cfg.MaxResetZoom {
		zoom = cfg.MaxResetZoom
	}
	v.SetZoom(zoom)
	v.pan = physics.Vector2D{}
}
