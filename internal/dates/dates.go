// Package dates formats dates the way export paperwork expects them:
// "DD MON YYYY" with an upper-case month abbreviation.
package dates

import (
	"fmt"
	"time"
)

var monthNames = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// Format renders t as "DD MON YYYY".
func Format(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// Today is the current date in document format.
func Today() string {
	return Format(time.Now())
}

// MonthsAgo walks back n months, clamping the day to the target month's
// length so "30 APR" minus two months never spills into March.
func MonthsAgo(n int) time.Time {
	now := time.Now()
	year, month := now.Year(), int(now.Month())-n
	for month < 1 {
		month += 12
		year--
	}
	day := now.Day()
	if last := lastDay(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
}

func lastDay(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
