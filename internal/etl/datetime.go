//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"fmt"
	"time"
)

// Date is a normalized calendar day. All date-valued join keys must be
// converted to Date before comparison so that timestamp columns and
// date-only columns meet at the same granularity.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf normalizes any timestamp to its calendar day, discarding the
// clock and the location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a 2006-01-02 formatted day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

// After reports whether d follows o.
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// TimeOfDay is a normalized minute-granularity clock value. The time
// dimension holds one row per hour and minute, so event times are
// truncated to the minute before lookup; seconds and fractional seconds
// must never cause a false non-match.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// TimeOfDayOf truncates a timestamp's clock to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Combine joins a calendar day and a clock value into one timestamp,
// the derived Timestamp_Estado of a fact row.
func Combine(d Date, t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, time.UTC)
}
