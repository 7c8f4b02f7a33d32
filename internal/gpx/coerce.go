package gpx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the canonical GPX timestamp pattern. Timestamps in this
// layout carry no zone and are read in the caller's location.
const TimestampLayout = "2006-01-02T15:04:05"

// zoneless layouts accepted after RFC 3339, most specific first.
var localLayouts = []string{
	TimestampLayout + ".999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseFloat parses a finite decimal number with an optional exponent, such as
// "-7.25" or "1e3". Empty text, NaN, infinities, hex floats and digit
// separators are errors.
func ParseFloat(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	if !isDecimal(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// isDecimal reports whether s matches [+-]?(d+(.d*)?|.d+)([eE][+-]?d+)?.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for ; i < len(s) && isDigit(s[i]); i++ {
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// ToFloat is ParseFloat with the historical behavior of returning 0 on failure.
func ToFloat(text string) float64 {
	v, err := ParseFloat(text)
	if err != nil {
		return 0
	}
	return v
}

// ParseTimestamp parses RFC 3339 text, or a zoneless timestamp (TimestampLayout,
// optional fractional seconds, or the legacy "2006-01-02 15:04" form) interpreted
// in loc. A nil loc means UTC.
func ParseTimestamp(text string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// hasZone reports whether text would be parsed with its own zone offset.
func hasZone(text string) bool {
	_, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(text))
	return err == nil
}
