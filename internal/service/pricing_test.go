package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotePrice(t *testing.T) {
	tests := []struct {
		name string
		in   PricingInput
		want float64
	}{
		{
			name: "small group single staff",
			in:   PricingInput{Children: 10, DurationHours: 2, Staff: 1},
			want: 400,
		},
		{
			name: "large group with extras",
			in: PricingInput{
				Children:         20,
				DurationHours:    3,
				Staff:            2,
				HolidayOrWeekend: true,
				TravelCost:       50,
				Discount:         20,
			},
			want: 980,
		},
		{
			name: "fifteen children is still the small rate",
			in:   PricingInput{Children: 15, DurationHours: 1.5, Staff: 1},
			want: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, QuotePrice(tt.in), 0.001)
		})
	}
}

func TestPeriodRange(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, time.February, 27, 22, 30, 0, 0, loc)

	from, to, err := PeriodToday.Range(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 27, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2024, time.February, 28, 0, 0, 0, 0, loc), to)

	from, to, err = PeriodWeek.Range(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, loc), to)
	assert.Equal(t, 27, from.Day())

	from, to, err = PeriodMonth.Range(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), to)

	_, _, err = Period("ano").Range(now, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStartOfDayConvertsZone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	utc := time.Date(2024, time.May, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.May, 9, 0, 0, 0, 0, loc), StartOfDay(utc, loc))
}
