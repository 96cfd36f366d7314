package service

// PricingInput holds the quote fields the price depends on.
type PricingInput struct {
	Children         int
	Staff            int
	DurationHours    float64
	HolidayOrWeekend bool
	TravelCost       float64
	Discount         float64
}

const (
	hourlyRateSmallGroup = 200.0
	hourlyRateLargeGroup = 250.0
	smallGroupMaxKids    = 15
	extraStaffFee        = 150.0
	holidayFee           = 50.0
)

// QuotePrice computes the final quote value. The first staff member is
// included in the hourly rate.
func QuotePrice(in PricingInput) float64 {
	rate := hourlyRateSmallGroup
	if in.Children > smallGroupMaxKids {
		rate = hourlyRateLargeGroup
	}
	base := rate * in.DurationHours

	extraStaff := float64(in.Staff-1) * extraStaffFee

	holiday := 0.0
	if in.HolidayOrWeekend {
		holiday = holidayFee
	}

	return base + extraStaff + holiday + in.TravelCost - in.Discount
}
