// Package timetricks holds small calendar helpers shared by the forecast and
// daylight packages.
package timetricks

import (
	"time"
)

const dayFormat = "20060102"

// SameDay reports whether t and t2 fall on the same calendar day.
func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// TrimClock removes the wall clock component of t, leaving midnight of the
// same calendar day.
func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 *
		(time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second))
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}
