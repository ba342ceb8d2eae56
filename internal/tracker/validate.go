package tracker

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber converts a form field to a number. Blank input is 0 and
// anything unparseable is NaN, so a bad field fails validation instead of
// failing the parse.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func allPositive(vals ...float64) bool {
	for _, v := range vals {
		if !(v > 0) {
			return false
		}
	}
	return true
}
