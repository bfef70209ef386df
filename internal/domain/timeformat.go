package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTimeFormat rewrites a 24-hour evening time in a suggested safe
// variation into 12-hour form when the original command was phrased with
// am/pm. Only the specific " at 20".." at 23" textual pattern triggers the
// rewrite; this is not general time parsing.
func NormalizeTimeFormat(command, variation string) string {
	lower := strings.ToLower(command)
	if !strings.Contains(lower, " pm") && !strings.Contains(lower, " am") {
		return variation
	}
	if !strings.Contains(variation, " 20") && !strings.Contains(variation, " 21") &&
		!strings.Contains(variation, " 22") && !strings.Contains(variation, " 23") {
		return variation
	}

	idx := strings.LastIndex(variation, " at ")
	if idx == -1 {
		return variation
	}
	rest := strings.Fields(variation[idx+len(" at "):])
	if len(rest) == 0 {
		return variation
	}
	hour, err := strconv.Atoi(rest[0])
	if err != nil {
		return variation
	}

	period := "am"
	if hour >= 12 {
		period = "pm"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return strings.Replace(variation, " at "+rest[0], fmt.Sprintf(" at %d %s", hour, period), 1)
}
