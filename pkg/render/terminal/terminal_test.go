package terminal

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/render"
)

func TestViewportReportsVirtualPixels(t *testing.T) {
	s := NewScene(80, 24, 10)
	w, h := s.Viewport()
	if w != 800 {
		t.Errorf("viewport width = %v, want 800", w)
	}
	if h != 480 {
		t.Errorf("viewport height = %v, want 480", h)
	}
}

func TestFilledCircleLandsInCell(t *testing.T) {
	s := NewScene(40, 20, 10)
	id := s.Create(render.KindCircle)
	s.Set(id, render.Attrs{X: 205, Y: 205, Radius: 8})

	frame := s.Render()
	lines := strings.Split(frame, "\n")
	// Cell row 10 is frame line 11 inside the border; column 20 is at
	// offset 21 past the left border rune.
	if lines[11][21] != 'O' {
		t.Errorf("expected 'O' at row 10 col 20, frame:\n%s", frame)
	}
}

func TestHiddenPrimitiveNotDrawn(t *testing.T) {
	s := NewScene(40, 20, 10)
	id := s.Create(render.KindCircle)
	s.Set(id, render.Attrs{X: 200, Y: 200, Radius: 5})
	s.SetVisible(id, false)

	if strings.ContainsRune(s.Render(), 'O') {
		t.Error("hidden circle was drawn")
	}
}

func TestTextRendersGlyphs(t *testing.T) {
	s := NewScene(40, 20, 10)
	id := s.Create(render.KindText)
	s.Set(id, render.Attrs{X: 100, Y: 100, Text: "ab"})

	frame := s.Render()
	if !strings.Contains(frame, "ab") {
		t.Errorf("text missing from frame:\n%s", frame)
	}
}

func TestLineSpansEndpoints(t *testing.T) {
	s := NewScene(40, 20, 10)
	id := s.Create(render.KindLine)
	s.Set(id, render.Attrs{X: 0, Y: 0, X2: 390, Y2: 0})

	frame := s.Render()
	row := strings.Split(frame, "\n")[1]
	if !strings.Contains(row, strings.Repeat(".", 30)) {
		t.Errorf("horizontal line not continuous:\n%s", frame)
	}
}

func TestPolylineDrawsSegments(t *testing.T) {
	s := NewScene(40, 20, 10)
	id := s.Create(render.KindPolyline)
	s.Set(id, render.Attrs{Points: []physics.Vector2D{
		{X: 0, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 300},
	}})

	if !strings.ContainsRune(s.Render(), ',') {
		t.Error("polyline drew nothing")
	}
}
