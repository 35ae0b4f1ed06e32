package timex

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
)

// MaxCooldownSeconds bounds parsed cool-downs (a little over 317 years).
const MaxCooldownSeconds int64 = 10_000_000_000

var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
	'y': 525_600 * 60,
}

// ParseCooldown converts text such as "1d 5h 10m 30s" into seconds.
//
// Each whitespace-separated element is an integer followed by one unit letter
// (s, m, h, d or y, case-insensitive). Malformed elements, unknown units,
// empty input and totals at or above MaxCooldownSeconds are rejected with an
// error wrapping common.ErrValidation.
func ParseCooldown(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty duration", common.ErrValidation)
	}

	var seconds int64
	for _, element := range fields {
		if len(element) < 2 {
			return 0, fmt.Errorf("%w: malformed duration element %q", common.ErrValidation, element)
		}

		unit, ok := unitSeconds[strings.ToLower(element[len(element)-1:])[0]]
		if !ok {
			return 0, fmt.Errorf("%w: unknown duration unit in %q", common.ErrValidation, element)
		}

		value, err := strconv.ParseInt(element[:len(element)-1], 10, 64)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("%w: malformed duration element %q", common.ErrValidation, element)
		}
		if value > MaxCooldownSeconds/unit {
			return 0, fmt.Errorf("%w: duration too long", common.ErrValidation)
		}

		seconds += value * unit
		if seconds >= MaxCooldownSeconds {
			return 0, fmt.Errorf("%w: duration too long", common.ErrValidation)
		}
	}

	return seconds, nil
}

// FormatPeriod renders d as "2 days 3 hours 4 minutes" style text. Zero
// components are omitted, and seconds are dropped once the period reaches a
// full day.
func FormatPeriod(d time.Duration) string {
	total := int64(d / time.Second)
	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60

	var parts []string
	if days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if hours != 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes != 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if seconds != 0 && days < 1 {
		parts = append(parts, fmt.Sprintf("%d seconds", seconds))
	}

	return strings.Join(parts, " ")
}
