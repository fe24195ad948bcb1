package dashboard

import (
	"fmt"
	"math"
	"time"
)

// CalendarDayDiff returns the number of calendar days from now to target,
// comparing local midnights in now's location. An event later today is 0,
// anything tomorrow is 1, regardless of the time of day.
func CalendarDayDiff(target, now time.Time) int {
	loc := now.Location()
	t := target.In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	// Round absorbs the 23h/25h days around DST transitions.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// DueLabel is the short label shown next to an alert's due date
func DueLabel(due, now time.Time) string {
	days := CalendarDayDiff(due, now)
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// RelativeDayLabel is the label shown next to a timeline event
func RelativeDayLabel(target, now time.Time) string {
	days := CalendarDayDiff(target, now)
	switch {
	case days == -1:
		return "1 day ago"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 7:
		return fmt.Sprintf("In %d days", days)
	case days < 30:
		return plural("In %d week", ceilDiv(days, 7))
	default:
		return plural("In %d month", ceilDiv(days, 30))
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func plural(format string, n int) string {
	s := fmt.Sprintf(format, n)
	if n != 1 {
		s += "s"
	}
	return s
}
