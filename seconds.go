package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseSeconds parses a flag time value as seconds.
// Accepts ss, mm:ss and hh:mm:ss where the last part may have decimals,
// e.g. "90", "1:30", "0:01:30.5". Empty is 0.
func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	timeParts := strings.Split(s, ":")
	if len(timeParts) > 3 {
		return 0, fmt.Errorf("invalid time %q, expected [[hh:]mm:]ss", s)
	}

	h, m := float64(0), float64(0)
	secPart := timeParts[len(timeParts)-1]
	sec, err := strconv.ParseFloat(secPart, 64)
	if err != nil || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0, fmt.Errorf("invalid time %q, expected [[hh:]mm:]ss", s)
	}
	// only a plain seconds value may carry a sign
	if len(timeParts) > 1 && strings.ContainsAny(secPart, "+-") {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}
	if len(timeParts) > 1 {
		if m, err = parseTimePart(timeParts[len(timeParts)-2]); err != nil {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
	}
	if len(timeParts) > 2 {
		if h, err = parseTimePart(timeParts[len(timeParts)-3]); err != nil {
			return 0, fmt.Errorf("invalid hours in %q", s)
		}
	}

	return (h * 60 * 60) + (m * 60) + sec, nil
}

func parseTimePart(s string) (float64, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	return float64(n), err
}
