package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate(" 05/03/2024 ", testLoc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, testLoc)))

	for _, bad := range []string{"31/02/2024", "2024-03-05", "05/13/2024", "aa/bb/cccc", "05/03/24", "5/3/2024", "05/3/2024", ""} {
		_, err := parseDate(bad, testLoc)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestParseClock(t *testing.T) {
	got, err := parseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	for _, bad := range []string{"24:00", "12:60", "12h", "1205", ""} {
		_, err := parseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := parseMonth("3/2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.March, month)

	_, _, err = parseMonth("00/2024")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestParseNumbers(t *testing.T) {
	v, err := parsePositive("150,50")
	require.NoError(t, err)
	assert.InDelta(t, 150.5, v, 0.0001)

	_, err = parsePositive("0")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = parsePositive("NaN")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	v, err = parseOrZero("sem custo")
	require.NoError(t, err)
	assert.Zero(t, v)
	_, err = parseOrZero("-5")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	n, err := parseCount("12", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	_, err = parseCount("0", 1)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = parseCount("1.5", 0)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional("Pular"))
	assert.Nil(t, optional("  "))
	got := optional(" apto 3 ")
	require.NotNil(t, got)
	assert.Equal(t, "apto 3", *got)
}
