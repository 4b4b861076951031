package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvironmentConfig holds runtime settings sourced from the environment
// rather than the config file: things that depend on the machine the orrery
// runs on, not on the scene being displayed.
type EnvironmentConfig struct {
	// VSOP87Dir is the directory holding VSOP87 data files for the
	// high-precision ephemeris provider. Empty means the provider is
	// unavailable and the linear model serves every call.
	VSOP87Dir string

	// SnapshotDir is where PNG snapshots are written.
	SnapshotDir string

	// TickRate overrides the config file tick rate when positive.
	TickRate float64
}

// LoadConfigFromEnv reads environment configuration with safe defaults.
// Variables: ORRERY_VSOP87_DIR, ORRERY_SNAPSHOT_DIR, ORRERY_TICK_RATE.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		VSOP87Dir:   os.Getenv("ORRERY_VSOP87_DIR"),
		SnapshotDir: getEnvString("ORRERY_SNAPSHOT_DIR", "."),
	}

	tickRate, err := getEnvFloat("ORRERY_TICK_RATE", 0)
	if err != nil {
		return nil, err
	}
	if tickRate < 0 {
		return nil, fmt.Errorf("ORRERY_TICK_RATE must be non-negative, got %v", tickRate)
	}
	cfg.TickRate = tickRate

	return cfg, nil
}

// getEnvString returns the value of the named variable or a default.
func getEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvFloat parses the named variable as a float or returns a default.
func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return f, nil
}
