// Package config defines the orrery configuration: the body table the
// ephemeris models evaluate, the ring geometry the renderer draws, and the
// view-fit parameters. Configuration is plain JSON so a body table can be
// edited without recompiling.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimConfig contains the full configuration for one orrery instance.
type SimConfig struct {
	Bodies        []BodyConfig `json:"bodies"`
	Rings         RingConfig   `json:"rings"`
	View          ViewConfig   `json:"view"`
	TrailCapacity int          `json:"trailCapacity"`
	TickRate      float64      `json:"tickRate"`
}

// BodyConfig describes one displayed body. Rate and BaseLongitude feed the
// linear ephemeris model; Distance is the stylized display-unit radius, not
// a physical distance.
type BodyConfig struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Color         string  `json:"color"`
	Distance      float64 `json:"distance"`      // display units from frame center
	Rate          float64 `json:"rate"`          // degrees per Julian century
	BaseLongitude float64 `json:"baseLongitude"` // degrees at the reference epoch
}

// RingConfig holds the radii of the fixed ring furniture. The outer and
// connector radii were observed to differ between variants of this layout;
// they are configuration here with one canonical default set.
type RingConfig struct {
	ZodiacScreenRadius float64 `json:"zodiacScreenRadius"` // pixels, zoom-independent
	OuterRadius        float64 `json:"outerRadius"`        // display units
	ConnectorRadius    float64 `json:"connectorRadius"`    // display units
	MoonOrbitRadius    float64 `json:"moonOrbitRadius"`    // display units around earth
	NodeMarkerRadius   float64 `json:"nodeMarkerRadius"`   // display units around earth

	// ZodiacBoundaries lists the 12 divider longitudes in degrees. Empty
	// means even 30° spacing from 0. Observed layouts disagree on the
	// exact boundaries, so they are configuration rather than constants.
	ZodiacBoundaries []float64 `json:"zodiacBoundaries,omitempty"`
}

// ViewConfig holds zoom and reset-fit parameters.
type ViewConfig struct {
	FitFraction      float64 `json:"fitFraction"`      // share of usable viewport the zodiac ring fills on reset
	SidebarAllowance float64 `json:"sidebarAllowance"` // pixels reserved for HUD panels
	MaxResetZoom     float64 `json:"maxResetZoom"`
	ZoomStepIn       float64 `json:"zoomStepIn"`
	ZoomStepOut      float64 `json:"zoomStepOut"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the invariants the rest of the system relies on: unique
// body identifiers, positive distances, and sane view parameters.
func (c *SimConfig) Validate() error {
	if len(c.Bodies) == 0 {
		return fmt.Errorf("no bodies configured")
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.ID == "" {
			return fmt.Errorf("body with empty identifier")
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate body identifier %q", b.ID)
		}
		seen[b.ID] = true
		if b.Distance <= 0 {
			return fmt.Errorf("body %q has non-positive distance %v", b.ID, b.Distance)
		}
	}
	if c.TrailCapacity <= 0 {
		return fmt.Errorf("trail capacity must be positive, got %d", c.TrailCapacity)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %v", c.TickRate)
	}
	if c.View.ZoomStepIn <= 1 || c.View.ZoomStepOut <= 0 || c.View.ZoomStepOut >= 1 {
		return fmt.Errorf("zoom steps must satisfy stepIn > 1 and 0 < stepOut < 1")
	}
	return nil
}

// BodyIDs returns the configured identifiers in table order.
func (c *SimConfig) BodyIDs() []string {
	ids := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		ids[i] = b.ID
	}
	return ids
}

// DefaultConfig returns the default orrery configuration: the eight planets
// with mean-longitude rates from the standard J2000 Keplerian table, mapped
// onto stylized display radii.
func DefaultConfig() *SimConfig {
	return &SimConfig{
		Bodies: []BodyConfig{
			{ID: "mercury", Symbol: "☿", Color: "#B5B5B5", Distance: 350, Rate: 149472.674, BaseLongitude: 252.2},
			{ID: "venus", Symbol: "♀", Color: "#E8CDA2", Distance: 650, Rate: 58517.815, BaseLongitude: 181.98},
			{ID: "earth", Symbol: "♁", Color: "#2E86AB", Distance: 1000, Rate: 35999.372, BaseLongitude: 100.46},
			{ID: "mars", Symbol: "♂", Color: "#C1440E", Distance: 1520, Rate: 19140.303, BaseLongitude: 355.45},
			{ID: "jupiter", Symbol: "♃", Color: "#C88B3A", Distance: 2100, Rate: 3034.746, BaseLongitude: 34.40},
			{ID: "saturn", Symbol: "♄", Color: "#E3D4A8", Distance: 2500, Rate: 1222.494, BaseLongitude: 49.94},
			{ID: "uranus", Symbol: "⛢", Color: "#A9D3D8", Distance: 2800, Rate: 428.482, BaseLongitude: 313.23},
			{ID: "neptune", Symbol: "♆", Color: "#4A6FA5", Distance: 3100, Rate: 218.459, BaseLongitude: 304.88},
		},
		Rings: RingConfig{
			ZodiacScreenRadius: 260,
			OuterRadius:        3550,
			ConnectorRadius:    3650,
			MoonOrbitRadius:    120,
			NodeMarkerRadius:   160,
		},
		View: ViewConfig{
			FitFraction:      0.4,
			SidebarAllowance: 280,
			MaxResetZoom:     0.5,
			ZoomStepIn:       1.1,
			ZoomStepOut:      0.9,
		},
		TrailCapacity: 200,
		TickRate:      60,
	}
}
