// Package render maps simulation state onto a fixed pool of drawable
// primitives. The pool is created once at initialization and only its
// attributes and visibility change afterwards; no primitive is ever created
// or destroyed during a session. The actual drawing surface is behind the
// ScenePort interface, implemented once per host.
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Kind identifies the primitive shapes a host must support.
type Kind int

const (
	KindCircle Kind = iota
	KindLine
	KindPolyline
	KindText
)

// ID identifies one primitive within a ScenePort.
type ID int

// Attrs carries the full attribute set for one primitive. Hosts read the
// fields relevant to the primitive's kind and ignore the rest. All
// coordinates are screen-space pixels.
type Attrs struct {
	X, Y   float64
	X2, Y2 float64 // line endpoint
	Radius float64 // circle radius
	Stroke float64 // stroke width; 0 means filled
	Size   float64 // text size
	Color  color.RGBA
	Text   string
	Points []physics.Vector2D // polyline vertices
}

// ScenePort is the capability interface a visual host implements: create a
// primitive of a kind, update its attributes, toggle its visibility, and
// report the viewport size. Core logic never queries a concrete visual
// tree directly.
type ScenePort interface {
	Create(kind Kind) ID
	Set(id ID, attrs Attrs)
	SetVisible(id ID, visible bool)
	Viewport() (width, height float64)
}

// NullScene is a ScenePort that draws nothing. It records primitive state
// so tests can inspect what a renderer did, and logs at debug level.
type NullScene struct {
	Width, Height float64

	logger  *logging.Logger
	kinds   []Kind
	attrs   map[ID]Attrs
	visible map[ID]bool
}

// NewNullScene creates a NullScene with the given viewport size.
func NewNullScene(width, height float64) *NullScene {
	return &NullScene{
		Width:   width,
		Height:  height,
		logger:  logging.NewLogger(),
		attrs:   make(map[ID]Attrs),
		visible: make(map[ID]bool),
	}
}

// Create implements ScenePort.
func (s *NullScene) Create(kind Kind) ID {
	id := ID(len(s.kinds))
	s.kinds = append(s.kinds, kind)
	s.visible[id] = true
	s.logger.Debug(context.Background(), "primitive created", "id", int(id), "kind", int(kind))
	return id
}

// Set implements ScenePort.
func (s *NullScene) Set(id ID, attrs Attrs) {
	s.attrs[id] = attrs
}

// SetVisible implements ScenePort.
func (s *NullScene) SetVisible(id ID, visible bool) {
	s.visible[id] = visible
}

// Viewport implements ScenePort.
func (s *NullScene) Viewport() (float64, float64) {
	return s.Width, s.Height
}

// Created returns the number of primitives created so far.
func (s *NullScene) Created() int { return len(s.kinds) }

// KindOf returns the kind a primitive was created with.
func (s *NullScene) KindOf(id ID) Kind { return s.kinds[id] }

// AttrsOf returns the last attributes set for a primitive.
func (s *NullScene) AttrsOf(id ID) Attrs { return s.attrs[id] }

// VisibleOf returns the current visibility of a primitive.
func (s *NullScene) VisibleOf(id ID) bool { return s.visible[id] }
