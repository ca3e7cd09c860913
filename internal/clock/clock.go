package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole calendar days from `from` to `to`; negative when `to` is earlier.
// Works on Unix seconds since time.Duration saturates after ~292 years.
func DaysBetween(from, to time.Time) int64 {
	return (Date(to).Unix() - Date(from).Unix()) / secondsPerDay
}
