package lesson

import (
	"regexp"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a zero-padded 24-hour "HH:MM" string.
// Zero-padding matters: it makes lexicographic comparison chronological.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}

// ClocksOverlap reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Inputs must be valid clock strings.
func ClocksOverlap(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// DayOfWeek maps a calendar date to the 0=Sunday..6=Saturday index used by
// time slots.
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

// CombineDateClock joins a calendar date and an "HH:MM" clock string into a
// single instant in loc.
func CombineDateClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
