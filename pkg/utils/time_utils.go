// utils/timeutil.go
package utils

import "time"

const clockLayout = "15:04"

// ParseClock parses an "HH:MM" string onto the zero reference date so that
// clock values can be compared and shifted with plain time arithmetic.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}

func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// SnapDownHalfHour rounds a clock value down to the previous :00 or :30.
func SnapDownHalfHour(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// SnapUpHalfHour rounds a clock value up to the next :00 or :30. Values
// already on a boundary are returned unchanged.
func SnapUpHalfHour(t time.Time) time.Time {
	switch {
	case t.Minute() == 0:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case t.Minute() <= 30:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 30, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
	}
}
