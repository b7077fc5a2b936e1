package skola24

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"skolexport/lib/timezone"
)

// ParseClockTime parses an "HH:MM:SS" time-of-day string into seconds
// since midnight.
func ParseClockTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	secs := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
		secs = secs*60 + n
	}
	return secs, nil
}

// WeekStart returns the Monday at midnight of the given ISO week in the
// portal's timezone. January 4th is always inside week 1, so anchoring
// there and stepping back to Monday honors the ISO-8601 week-date
// rules; asking for week 53 of a 52-week year rolls over into week 1
// of the following year the same way the standard does.
func WeekStart(weekYear, week int) time.Time {
	jan4 := time.Date(weekYear, time.January, 4, 0, 0, 0, 0, timezone.Location)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	return jan4.AddDate(0, 0, -(wd-1)+(week-1)*7)
}

// WeeksInYear reports how many ISO weeks the given week-year has, 52
// or 53. December 28th always sits in the year's last ISO week.
func WeeksInYear(weekYear int) int {
	dec28 := time.Date(weekYear, time.December, 28, 0, 0, 0, 0, timezone.Location)
	_, week := dec28.ISOWeek()
	return week
}

// ResolveWeekTime turns (ISO week, week-year, 1-7 weekday, "HH:MM:SS")
// into an absolute instant in the portal's local calendar.
func ResolveWeekTime(week, weekYear, weekday int, clock string) (time.Time, error) {
	secs, err := ParseClockTime(clock)
	if err != nil {
		return time.Time{}, err
	}

	day := WeekStart(weekYear, week).AddDate(0, 0, weekday-1)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		secs/3600, secs/60%60, secs%60, 0,
		timezone.Location,
	), nil
}
