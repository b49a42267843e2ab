package aether

import (
	"fmt"
	"os"
	"strconv"
)

// Config configures a Stack. The zero value is not useful; start from
// DefaultConfig or ConfigFromEnv.
type Config struct {
	// Quality is the tier requested for layers added without one. The zero
	// value is QualityLow.
	Quality Quality
	// CacheSize bounds the stack's program cache.
	CacheSize int
	// PowerSave and ReducedMotion seed the stack's environment switches.
	PowerSave     bool
	ReducedMotion bool
	// Disabled forces the fallback path, as if shaders were unsupported.
	Disabled bool
	// Debug logs per-second pipeline stats to stderr.
	Debug bool
}

// DefaultConfig returns HIGH quality, an 8-entry cache and a neutral environment.
func DefaultConfig() Config {
	return Config{Quality: QualityHigh, CacheSize: DefaultCacheSize}
}

// Environment variables read by ConfigFromEnv.
const (
	EnvQuality       = "AETHER_QUALITY"
	EnvCacheSize     = "AETHER_CACHE_SIZE"
	EnvPowerSave     = "AETHER_POWER_SAVE"
	EnvReducedMotion = "AETHER_REDUCED_MOTION"
	EnvDisabled      = "AETHER_DISABLED"
	EnvDebug         = "AETHER_DEBUG"
)

// ConfigFromEnv overlays DefaultConfig with the AETHER_* environment
// variables. Unset variables keep their defaults.
func ConfigFromEnv() (Config, error) {
	return configFrom(os.LookupEnv)
}

func configFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvQuality); ok {
		q, err := ParseQuality(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvQuality, err)
		}
		cfg.Quality = q
	}
	if v, ok := lookup(EnvCacheSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("aether: %s must be a positive integer, got %q", EnvCacheSize, v)
		}
		cfg.CacheSize = n
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{EnvPowerSave, &cfg.PowerSave},
		{EnvReducedMotion, &cfg.ReducedMotion},
		{EnvDisabled, &cfg.Disabled},
		{EnvDebug, &cfg.Debug},
	}
	for _, f := range flags {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("aether: %s: %w", f.name, err)
		}
		*f.dst = b
	}
	return cfg, nil
}
