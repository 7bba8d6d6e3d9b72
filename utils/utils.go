package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a time of day given as HH:MM, HH:MM:SS or HHMMSS
func ParseClock(s string) (hours, minutes, seconds int, err error) {
	s = strings.TrimSpace(s)

	var parts []string
	switch {
	case strings.Contains(s, ":"):
		parts = strings.Split(s, ":")
		if len(parts) == 2 {
			parts = append(parts, "0")
		}
	case len(s) == 6:
		parts = []string{s[0:2], s[2:4], s[4:6]}
	}
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid time of day '%s', expected HH:MM[:SS] or HHMMSS", s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		v, convErr := strconv.Atoi(p)
		if convErr != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("invalid time of day '%s'", s)
		}
		values[i] = v
	}
	if values[0] > 23 || values[1] > 59 || values[2] > 59 {
		return 0, 0, 0, fmt.Errorf("time of day '%s' out of range", s)
	}
	return values[0], values[1], values[2], nil
}

// NormalizeDate turns YYYY-MM-DD or YYYYMMDD into the YYYYMMDD form used
// for interval directories
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"20060102", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("20060102"), nil
		}
	}
	return "", fmt.Errorf("invalid date '%s', expected YYYYMMDD or YYYY-MM-DD", s)
}

// ParseLocation accepts an IANA zone name ("America/Montreal"), "UTC",
// "Local" or a fixed offset such as "-04:00"
func ParseLocation(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.UTC, nil
	}
	if s[0] == '+' || s[0] == '-' {
		t, err := time.Parse("-07:00", s)
		if err != nil {
			return nil, fmt.Errorf("invalid UTC offset '%s'", s)
		}
		_, offset := t.Zone()
		return time.FixedZone(s, offset), nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone '%s': %w", s, err)
	}
	return loc, nil
}
