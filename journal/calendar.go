package journal

import (
	"fmt"
	"time"
)

// WeekNumbering assigns a week-of-year number to a date. The date has
// already been moved into the calendar's location.
type WeekNumbering interface {
	Week(t time.Time) int
}

// LocaleWeeks numbers weeks starting on Sunday, with week 1 being the week
// that contains January 1. The last days of December can therefore fall in
// week 1 of the next year.
type LocaleWeeks struct{}

func (LocaleWeeks) Week(t time.Time) int {
	d := civil(t)
	start := startOfWeek(d)

	yearStart := startOfWeek(time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC))
	next := startOfWeek(time.Date(d.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC))
	if !d.Before(next) {
		yearStart = next
	}

	days := int(start.Sub(yearStart).Hours() / 24)
	return days/7 + 1
}

// ISOWeeks numbers weeks per ISO-8601 (Monday start, week 1 holds the
// year's first Thursday).
type ISOWeeks struct{}

func (ISOWeeks) Week(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// ParseWeekNumbering maps a config name to a WeekNumbering.
func ParseWeekNumbering(name string) (WeekNumbering, error) {
	switch name {
	case "", "locale":
		return LocaleWeeks{}, nil
	case "iso":
		return ISOWeeks{}, nil
	}
	return nil, fmt.Errorf("unknown week numbering %q", name)
}

// civil returns t's calendar date as midnight UTC so day arithmetic is
// free of DST shifts.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func startOfWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Calendar is the one place days, months and weeks are cut. Every query
// that buckets by day or week goes through the same Calendar so the
// buckets agree with each other.
type Calendar struct {
	loc   *time.Location
	weeks WeekNumbering
}

// NewCalendar returns a calendar in loc. nil arguments select time.Local
// and LocaleWeeks.
func NewCalendar(loc *time.Location, weeks WeekNumbering) Calendar {
	return Calendar{loc: loc, weeks: weeks}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

func (c Calendar) numbering() WeekNumbering {
	if c.weeks == nil {
		return LocaleWeeks{}
	}
	return c.weeks
}

// Day truncates t to midnight of its calendar day in the reference location.
func (c Calendar) Day(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

// SameDay reports whether a and b fall on the same calendar day in the
// reference location, whatever their own offsets.
func (c Calendar) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.Location()).Date()
	by, bm, bd := b.In(c.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// DayKey formats t's calendar day as YYYY-MM-DD.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.Location()).Format(time.DateOnly)
}

// MonthBounds returns the first instant of t's month and the last instant
// of its last day.
func (c Calendar) MonthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.In(c.Location()).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, c.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return first, last
}

// MonthDays lists midnight of every day of t's month, in order.
func (c Calendar) MonthDays(t time.Time) []time.Time {
	first, last := c.MonthBounds(t)
	n := last.Day()
	days := make([]time.Time, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, c.Location()))
	}
	return days
}

// Week returns t's week number in the reference location.
func (c Calendar) Week(t time.Time) int {
	return c.numbering().Week(t.In(c.Location()))
}
