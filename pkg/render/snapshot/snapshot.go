// Package snapshot rasterizes the scene to a PNG. It is a headless
// ScenePort: the renderer paints into it exactly as it would a window,
// then Save writes the accumulated frame to disk.
package snapshot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-orrery/pkg/render"
)

type primitive struct {
	kind    render.Kind
	attrs   render.Attrs
	visible bool
}

// Scene is a PNG-producing ScenePort with a fixed pixel viewport.
type Scene struct {
	width, height int
	background    color.RGBA
	prims         []primitive
	ttf           *truetype.Font
}

// NewScene creates a snapshot scene of the given pixel size.
func NewScene(width, height int) (*Scene, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Scene{
		width:      width,
		height:     height,
		background: color.RGBA{8, 8, 16, 255},
		ttf:        ttf,
	}, nil
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

// Viewport implements render.ScenePort.
func (s *Scene) Viewport() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// Save rasterizes the current frame and writes it to path as a PNG.
func (s *Scene) Save(path string) error {
	dc := gg.NewContext(s.width, s.height)
	dc.SetColor(s.background)
	dc.Clear()

	for _, p := range s.prims {
		if !p.visible {
			continue
		}
		switch p.kind {
		case render.KindCircle:
			s.drawCircle(dc, p.attrs)
		case render.KindLine:
			dc.SetColor(p.attrs.Color)
			dc.SetLineWidth(strokeOr(p.attrs.Stroke, 1))
			dc.DrawLine(p.attrs.X, p.attrs.Y, p.attrs.X2, p.attrs.Y2)
			dc.Stroke()
		case render.KindPolyline:
			if len(p.attrs.Points) < 2 {
				continue
			}
			dc.SetColor(p.attrs.Color)
			dc.SetLineWidth(strokeOr(p.attrs.Stroke, 1))
			dc.MoveTo(p.attrs.Points[0].X, p.attrs.Points[0].Y)
			for _, pt := range p.attrs.Points[1:] {
				dc.LineTo(pt.X, pt.Y)
			}
			dc.Stroke()
		case render.KindText:
			s.drawText(dc, p.attrs)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	return dc.SavePNG(path)
}

// SaveTimestamped writes the frame into dir with a wall-clock filename and
// returns the full path.
func (s *Scene) SaveTimestamped(dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("orrery-%s.png", now.Format("20060102-150405")))
	if err := s.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Scene) drawCircle(dc *gg.Context, a render.Attrs) {
	dc.SetColor(a.Color)
	dc.DrawCircle(a.X, a.Y, a.Radius)
	if a.Stroke > 0 {
		dc.SetLineWidth(a.Stroke)
		dc.Stroke()
		return
	}
	dc.Fill()
}

func (s *Scene) drawText(dc *gg.Context, a render.Attrs) {
	size := a.Size
	if size <= 0 {
		size = 12
	}
	face := truetype.NewFace(s.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(a.Color)
	dc.DrawStringAnchored(a.Text, a.X, a.Y, 0.5, 0.5)
}

func strokeOr(w, fallback float64) float64 {
	if w > 0 {
		return w
	}
	return fallback
}
