package aether

import (
	"fmt"
	"strings"
)

// Quality is an ordered rendering tier trading update cadence for CPU/GPU cost.
// The zero value is QualityLow; DefaultConfig requests QualityHigh.
type Quality uint8

const (
	QualityLow    Quality = iota // ~30 updates per second, used under power saving
	QualityMedium                // ~60 updates per second
	QualityHigh                  // ~60 updates per second, capped even on faster displays
)

const nanosPerSecond = 1_000_000_000

// Skip intervals between accepted display ticks.
const (
	skipNanos30FPS int64 = 33_333_333
	skipNanos60FPS int64 = 16_666_667
)

// String returns the lower-case name of the tier.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// ParseQuality parses "low", "medium" or "high" (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium", "med":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	}
	return QualityHigh, fmt.Errorf("aether: unknown quality %q", s)
}

// SkipInterval returns the minimum spacing, in nanoseconds, between two
// accepted display ticks for the tier.
func (q Quality) SkipInterval() int64 {
	if q == QualityLow {
		return skipNanos30FPS
	}
	return skipNanos60FPS
}
