package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed in minutes after midnight.
// EndOfDay (24:00) is valid as the exclusive end of a band.
type TimeOfDay int

const (
	MinutesPerDay           = 24 * 60
	EndOfDay      TimeOfDay = MinutesPerDay
)

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "HH:MM", including "24:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	return NewTimeOfDay(h, m), nil
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= EndOfDay
}

// On returns the instant this time of day falls on the calendar date of day.
// EndOfDay maps to the following midnight.
func (t TimeOfDay) On(day time.Time) time.Time {
	midnight := StartOfDay(day)
	return midnight.Add(time.Duration(t) * time.Minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}

	*t = v
	return nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
