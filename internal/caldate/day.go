package caldate

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days: local calendar day,
// no time component, no timezone offset embedded.
const Layout = "2006-01-02"

// Day is a single calendar day, e.g. "2024-01-07".
// All tracker records are keyed by it.
type Day struct {
	t time.Time
}

func Parse(s string) (Day, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{t: t}, nil
}

func FromTime(t time.Time) Day {
	year, month, day := t.Date()
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, t.Location())}
}

func Today() Day {
	return FromTime(time.Now())
}

func (d Day) String() string {
	return d.t.Format(Layout)
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) AddDays(days int) Day {
	return FromTime(d.t.AddDate(0, 0, days))
}

// DaysBetween returns the whole number of calendar days from `from` to `to`
// (positive when `to` is later).
func DaysBetween(from, to Day) int {
	fromUTC := time.Date(from.t.Year(), from.t.Month(), from.t.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.t.Year(), to.t.Month(), to.t.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}

// MondayFirstIndex maps the day's weekday to 0=Mon .. 6=Sun.
// Go's native weekday numbering has Sunday=0, hence the +6 mod 7 shift.
func (d Day) MondayFirstIndex() int {
	return (int(d.t.Weekday()) + 6) % 7
}

// ISOWeek returns the ISO 8601 year and week number of the day
// (the week containing the year's first Thursday is week 1).
func (d Day) ISOWeek() (year, week int) {
	return d.t.ISOWeek()
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid day value: %s", data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseOrToday resolves an optional `date` query parameter: empty means
// today, anything else must be a valid YYYY-MM-DD day.
func ParseOrToday(s string) (Day, error) {
	if s == "" {
		return Today(), nil
	}
	return Parse(s)
}
