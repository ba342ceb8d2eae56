package domain

import (
	"fmt"
	"strings"
)

type WorkoutKind string

const (
	KindRunning WorkoutKind = "running"
	KindCycling WorkoutKind = "cycling"
)

// ValidWorkoutKinds is the canonical set of accepted workout type strings.
var ValidWorkoutKinds = map[string]bool{
	"running": true, "cycling": true,
}

// ParseKind maps a form or flag value onto a WorkoutKind.
func ParseKind(s string) (WorkoutKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !ValidWorkoutKinds[v] {
		return "", fmt.Errorf("unknown workout type %q (expected running or cycling)", s)
	}
	return WorkoutKind(v), nil
}

// Title returns the kind with its first letter capitalized ("Running").
func (k WorkoutKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Emoji returns the icon shown next to a workout in popups and the list.
func (k WorkoutKind) Emoji() string {
	if k == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// Other returns the opposite kind. Used by the form's type toggle.
func (k WorkoutKind) Other() WorkoutKind {
	if k == KindRunning {
		return KindCycling
	}
	return KindRunning
}
