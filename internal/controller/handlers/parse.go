package handlers

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidMonth  = errors.New("invalid month")
)

// skipWord lets the user leave an optional field empty.
const skipWord = "pular"

var (
	datePattern  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	timePattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	monthPattern = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// parseDate reads DD/MM/YYYY as a day in loc. Days that do not exist, such
// as 31/02, are rejected.
func parseDate(text string, loc *time.Location) (time.Time, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseClock reads a 24h HH:MM time and returns it zero padded.
func parseClock(text string) (string, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", ErrInvalidTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return "", ErrInvalidTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// parseMonth reads MM/YYYY.
func parseMonth(text string) (int, time.Month, error) {
	m := monthPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, ErrInvalidMonth
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return 0, 0, ErrInvalidMonth
	}
	return year, time.Month(month), nil
}

// parseDecimal accepts both "150.50" and "150,50".
func parseDecimal(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

func parsePositive(text string) (float64, error) {
	v, err := parseDecimal(text)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// parseOrZero reads an "or 0" field: text that is not a number counts as
// zero, a negative number is rejected.
func parseOrZero(text string) (float64, error) {
	v, err := parseDecimal(text)
	if err != nil {
		return 0, nil
	}
	if v < 0 {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// parseCount reads a whole number not below least.
func parseCount(text string, least int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < least {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

func isSkip(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), skipWord)
}

// optional returns nil for the skip word or empty text.
func optional(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" || isSkip(text) {
		return nil
	}
	return &text
}
