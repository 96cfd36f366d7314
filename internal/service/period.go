package service

import (
	"fmt"
	"time"
)

// Period is a listing window keyword used by buttons.
type Period string

const (
	PeriodToday Period = "hoje"
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
)

// Range resolves the period to [from, to) relative to now in loc.
func (p Period) Range(now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today := StartOfDay(now, loc)
	switch p {
	case PeriodToday:
		return today, today.AddDate(0, 0, 1), nil
	case PeriodWeek:
		return today, today.AddDate(0, 0, 7), nil
	case PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period %q", ErrInvalidInput, p)
	}
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayRange returns [start of day, start of next day).
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(day, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
