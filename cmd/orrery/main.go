// cmd/orrery/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/control"
	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/event"
	engorender "github.com/opd-ai/go-orrery/pkg/render/engo"
	"github.com/opd-ai/go-orrery/pkg/sim"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	renderer := flag.String("renderer", "tui", "Renderer type: 'tui' or 'engo'")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	flag.Parse()

	var cfg *config.SimConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		cfg = config.DefaultConfig()
	} else {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	env, err := config.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load environment configuration: %v", err)
	}
	if env.TickRate > 0 {
		cfg.TickRate = env.TickRate
	}

	bus := event.NewEventBus()
	orrery := sim.NewOrrery(cfg, buildProvider(cfg, env, bus), bus)
	controller := control.NewController(orrery)

	switch *renderer {
	case "engo":
		startEngoRenderer(controller, *width, *height, *fullscreen)
	case "tui":
		fallthrough
	default:
		if err := startTUIRenderer(controller, bus, env); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}
	}
}

// buildProvider assembles the position provider chain. A VSOP87 data
// directory upgrades precision when present; either way the provider is
// guarded so a failing primary degrades to the linear model instead of
// taking the session down.
func buildProvider(cfg *config.SimConfig, env *config.EnvironmentConfig, bus *event.Bus) ephemeris.Provider {
	fallback := ephemeris.NewLinear(cfg.Bodies)
	ids := cfg.BodyIDs()

	if env.VSOP87Dir == "" {
		return fallback
	}
	primary, err := ephemeris.NewVSOP87(env.VSOP87Dir, cfg.Bodies)
	if err != nil {
		log.Printf("VSOP87 unavailable (%v), using linear model", err)
		return fallback
	}
	return ephemeris.NewGuard(primary, fallback, ids, bus)
}

// startEngoRenderer opens the graphical window.
func startEngoRenderer(controller *control.Controller, width, height int, fullscreen bool) {
	scene := engorender.NewOrreryScene(controller)

	opts := engo.RunOptions{
		Title:      "Orrery",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}
