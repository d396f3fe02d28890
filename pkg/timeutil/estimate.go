package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultEstimateMinutes is the fallback effort estimate used when a task
	// carries none, matching the scheduling granule.
	DefaultEstimateMinutes = GranuleMinutes
)

var (
	estimatePattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap         = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
	}
)

// ParseEstimate parses a human-friendly effort estimate (for example "30m",
// "1h", or "1h30m") and returns whole minutes along with a canonical compact
// representation. An empty input yields the default estimate.
func ParseEstimate(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return DefaultEstimateMinutes, FormatEstimate(DefaultEstimateMinutes), nil
	}

	// Bare numbers are read as minutes.
	if value, err := strconv.Atoi(trimmed); err == nil {
		if value <= 0 {
			return 0, "", fmt.Errorf("estimate must be greater than zero")
		}
		return value, FormatEstimate(value), nil
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := estimatePattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid estimate segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid estimate value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported estimate unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("estimate must be greater than zero")
	}
	minutes := int(total / time.Minute)
	return minutes, FormatEstimate(minutes), nil
}

// FormatEstimate renders whole minutes using day/hour/minute tokens.
func FormatEstimate(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	type unit struct {
		label string
		value int
	}
	units := []unit{
		{"d", 24 * 60},
		{"h", 60},
		{"m", 1},
	}

	var parts []string
	remaining := minutes
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, "")
}
