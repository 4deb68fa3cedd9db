// Package cli holds input parsing shared by sp commands.
package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format the API expects for event dates.
const DateLayout = time.DateOnly

// Matches: "3d", "+2w", "1mo", "-1d"
var offsetRegex = regexp.MustCompile(`^([+-]?)(\d+)(mo|w|d)$`)

// ParseDate turns a date expression into a calendar day in now's location.
// Supports: "2024-06-01", "today", "tomorrow", "yesterday", "saturday",
// "next sat", and offsets such as "3d", "+2w", "1mo" or "-1d".
func ParseDate(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.ParseInLocation(DateLayout, raw, now.Location()); err == nil {
		return t, nil
	}

	input := strings.ToLower(raw)
	today := startOfDay(now)

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if t, ok := parseWeekday(input, today); ok {
		return t, nil
	}

	if m := offsetRegex.FindStringSubmatch(input); len(m) == 4 {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return time.Time{}, fmt.Errorf("invalid date offset %q", raw)
		}
		if m[1] == "-" {
			n = -n
		}
		switch m[3] {
		case "mo":
			return today.AddDate(0, n, 0), nil
		case "w":
			return today.AddDate(0, 0, 7*n), nil
		default:
			return today.AddDate(0, 0, n), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// FormatDate parses s with ParseDate and renders it as YYYY-MM-DD.
func FormatDate(s string, now time.Time) (string, error) {
	t, err := ParseDate(s, now)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseWeekday resolves "fri", "this fri" and "next fri" relative to today.
// A bare weekday is the next occurrence, today included; "next" skips today.
func parseWeekday(input string, today time.Time) (time.Time, bool) {
	next := false
	switch {
	case strings.HasPrefix(input, "next "):
		next = true
		input = strings.TrimSpace(strings.TrimPrefix(input, "next "))
	case strings.HasPrefix(input, "this "):
		input = strings.TrimSpace(strings.TrimPrefix(input, "this "))
	}

	weekday, ok := weekdays[input]
	if !ok {
		return time.Time{}, false
	}
	delta := (int(weekday) - int(today.Weekday()) + 7) % 7
	if next && delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta), true
}

var weekdays = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}
