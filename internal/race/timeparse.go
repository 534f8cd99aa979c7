package race

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed time string. Callers get a typed error
// instead of a silently propagating NaN.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing time %q: %s", e.Input, e.Reason)
}

// ParseMMSS converts a "MM:SS" string into seconds.
func ParseMMSS(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	minStr, secStr, ok := strings.Cut(trimmed, ":")
	if !ok {
		return 0, &ParseError{Input: s, Reason: "expected MM:SS"}
	}
	minutes, err := strconv.Atoi(minStr)
	if err != nil || minutes < 0 {
		return 0, &ParseError{Input: s, Reason: "invalid minutes"}
	}
	seconds, err := strconv.Atoi(secStr)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, &ParseError{Input: s, Reason: "invalid seconds"}
	}
	return float64(minutes*60 + seconds), nil
}

// FormatSeconds renders a duration in seconds as "MM:SS", or "H:MM:SS" from
// one hour upward. Negative inputs are clamped to zero.
func FormatSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
