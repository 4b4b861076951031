package engo

import (
	"context"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/control"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/render"
)

const fontURL = "go.ttf"

// OrreryScene is the Engo scene hosting the orrery. It owns the tick
// loop: every engine update advances the simulation once and maps the
// resulting snapshot onto the drawable pool.
type OrreryScene struct {
	world      *ecs.World
	controller *control.Controller
	logger     *logging.Logger

	port     *Port
	renderer *render.SceneRenderer
	hud      *hudSystem
}

// NewOrreryScene creates a scene driving the given controller.
func NewOrreryScene(controller *control.Controller) *OrreryScene {
	return &OrreryScene{
		controller: controller,
		logger:     logging.NewLogger(),
	}
}

// Type implements engo.Scene.
func (s *OrreryScene) Type() string { return "OrreryScene" }

// Preload implements engo.Scene.
func (s *OrreryScene) Preload() {
	if err := engo.Files.Load(fontURL); err != nil {
		s.logger.Warn(context.Background(), "font load failed, text disabled", "error", err)
	}
}

// Setup implements engo.Scene.
func (s *OrreryScene) Setup(u engo.Updater) {
	s.world, _ = u.(*ecs.World)

	common.SetBackground(color.RGBA{8, 8, 16, 255})

	renderSystem := &common.RenderSystem{}
	s.world.AddSystem(renderSystem)
	s.world.AddSystem(&common.MouseSystem{})

	font := &common.Font{URL: fontURL, FG: color.White, Size: fontSize}
	if err := font.CreatePreloaded(); err != nil {
		s.logger.Warn(context.Background(), "font atlas failed", "error", err)
	}

	s.port = NewPort(s.world, renderSystem, font)
	s.renderer = render.NewSceneRenderer(s.port, s.controller.Orrery().Config())

	s.hud = newHUDSystem(s.world, renderSystem, font)

	registerBindings()
	s.world.AddSystem(newInputSystem(s.controller))
	s.world.AddSystem(&tickSystem{scene: s})

	// Frame the outer ring before the first draw.
	w, h := s.port.Viewport()
	s.controller.ResetView(w, h)
}

// Exit implements engo.Scene.
func (s *OrreryScene) Exit() {}

// tickSystem advances the simulation once per engine update and pushes
// the snapshot to the scene graph and HUD.
type tickSystem struct {
	scene *OrreryScene
}

func (t *tickSystem) Add(basic *ecs.BasicEntity, r *common.RenderComponent, sp *common.SpaceComponent) {
}

func (t *tickSystem) Remove(basic ecs.BasicEntity) {}

func (t *tickSystem) Update(dt float32) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	o := t.scene.controller.Orrery()
	if err := o.Tick(ctx); err != nil {
		t.scene.logger.Error(ctx, "tick failed", err)
		return
	}
	st := o.State()
	t.scene.renderer.UpdateScene(&st)
	t.scene.hud.update(&st, t.scene.controller.SelectedUnit())
}
