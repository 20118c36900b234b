package interval

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrMalformedTime = errors.New("interval: malformed time of day")
	ErrMalformedDate = errors.New("interval: malformed date")
)

var timeOfDayPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ToMinutes converts an HH:MM time of day to minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	m := timeOfDayPattern.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", hhmm, ErrMalformedTime)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", hhmm, ErrMalformedTime)
	}
	return hours*60 + minutes, nil
}

// Overlaps reports whether the half-open ranges [startA, endA) and
// [startB, endB) share at least one minute. Touching ranges do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return !(endA <= startB || startA >= endB)
}

// DurationHours returns the length of start..end in hours, never negative.
func DurationHours(start, end string) (float64, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		return 0, nil
	}
	return float64(e-s) / 60, nil
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrMalformedDate)
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrMalformedDate)
	}
	return d, nil
}

// WeekRange returns the Monday and Sunday of the week containing day.
func WeekRange(day time.Time) (time.Time, time.Time) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
