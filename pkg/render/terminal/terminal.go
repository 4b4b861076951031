// Package terminal implements a ScenePort on a rune buffer, mapping pixel
// coordinates onto character cells. Useful for headless checks and quick
// looks at the scene without a graphics stack.
package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-orrery/pkg/render"
)

// cellAspect compensates for terminal cells being roughly twice as tall
// as they are wide.
const cellAspect = 2.0

type primitive struct {
	kind    render.Kind
	attrs   render.Attrs
	visible bool
}

// Scene is an ASCII-buffer ScenePort. Pixel coordinates are scaled down to
// character cells; a virtual pixel viewport is reported so the renderer's
// geometry stays consistent with graphical hosts.
type Scene struct {
	cols, rows int
	pxPerCell  float64
	buffer     [][]rune
	prims      []primitive
}

// NewScene creates a terminal scene with the given character dimensions.
// pxPerCell sets how many virtual pixels one character column spans.
func NewScene(cols, rows int, pxPerCell float64) *Scene {
	buffer := make([][]rune, rows)
	for i := range buffer {
		buffer[i] = make([]rune, cols)
	}
	return &Scene{
		cols:      cols,
		rows:      rows,
		pxPerCell: pxPerCell,
		buffer:    buffer,
	}
}

// Create implements render.ScenePort.
func (s *Scene) Create(kind render.Kind) render.ID {
	id := render.ID(len(s.prims))
	s.prims = append(s.prims, primitive{kind: kind, visible: true})
	return id
}

// Set implements render.ScenePort.
func (s *Scene) Set(id render.ID, attrs render.Attrs) {
	s.prims[id].attrs = attrs
}

// SetVisible implements render.ScenePort.
func (s *Scene) SetVisible(id render.ID, visible bool) {
	s.prims[id].visible = visible
}

// Viewport implements render.ScenePort, reporting the virtual pixel size.
func (s *Scene) Viewport() (float64, float64) {
	return float64(s.cols) * s.pxPerCell, float64(s.rows) * s.pxPerCell * cellAspect
}

func (s *Scene) toCell(x, y float64) (int, int) {
	return int(x / s.pxPerCell), int(y / (s.pxPerCell * cellAspect))
}

func (s *Scene) plot(cx, cy int, ch rune) {
	if cx >= 0 && cx < s.cols && cy >= 0 && cy < s.rows {
		s.buffer[cy][cx] = ch
	}
}

// Render rasterizes all visible primitives into the buffer and returns the
// framed frame as a string.
func (s *Scene) Render() string {
	for y := range s.buffer {
		for x := range s.buffer[y] {
			s.buffer[y][x] = ' '
		}
	}

	for _, p := range s.prims {
		if !p.visible {
			continue
		}
		switch p.kind {
		case render.KindCircle:
			s.drawCircle(p.attrs)
		case render.KindLine:
			s.drawLine(p.attrs.X, p.attrs.Y, p.attrs.X2, p.attrs.Y2, '.')
		case render.KindPolyline:
			for i := 1; i < len(p.attrs.Points); i++ {
				a, b := p.attrs.Points[i-1], p.attrs.Points[i]
				s.drawLine(a.X, a.Y, b.X, b.Y, ',')
			}
		case render.KindText:
			cx, cy := s.toCell(p.attrs.X, p.attrs.Y)
			for i, ch := range p.attrs.Text {
				s.plot(cx+i, cy, ch)
			}
		}
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", s.cols) + "+"
	sb.WriteString(border + "\n")
	for y := range s.buffer {
		sb.WriteString("|" + string(s.buffer[y]) + "|\n")
	}
	sb.WriteString(border + "\n")
	return sb.String()
}

// Present clears the terminal and writes the current frame to stdout.
func (s *Scene) Present() {
	fmt.Print("\033[H\033[2J")
	fmt.Print(s.Render())
}

func (s *Scene) drawCircle(a render.Attrs) {
	if a.Stroke == 0 {
		// Filled circles collapse to a single glyph at this resolution.
		cx, cy := s.toCell(a.X, a.Y)
		s.plot(cx, cy, 'O')
		return
	}
	// Stroked rings: step the circumference at cell resolution.
	steps := int(a.Radius/s.pxPerCell) * 8
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		theta := float64(i) / float64(steps) * 2 * math.Pi
		px := a.X + a.Radius*math.Cos(theta)
		py := a.Y + a.Radius*math.Sin(theta)
		cx, cy := s.toCell(px, py)
		s.plot(cx, cy, 'o')
	}
}

func (s *Scene) drawLine(x1, y1, x2, y2 float64, ch rune) {
	ax, ay := s.toCell(x1, y1)
	bx, by := s.toCell(x2, y2)
	dx, dy := abs(bx-ax), abs(by-ay)
	steps := dx
	if dy > steps {
		steps = dy
	}
	if steps == 0 {
		s.plot(ax, ay, ch)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.plot(ax+int(t*float64(bx-ax)), ay+int(t*float64(by-ay)), ch)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
