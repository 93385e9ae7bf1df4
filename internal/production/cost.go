package production

import "github.com/shopspring/decimal"

var sixty = decimal.NewFromInt(60)

// LaborCost prices a batch by elapsed time only: minutes / 60 * hourlyRate,
// rounded to paise.
func LaborCost(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Mul(hourlyRate).Round(2)
}

// EstimatedHours rounds timeRequiredMins * units / 60 to the nearest hour.
func EstimatedHours(timeRequiredMins int, units int64) int64 {
	if timeRequiredMins <= 0 || units <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(timeRequiredMins)).
		Mul(decimal.NewFromInt(units)).
		Div(sixty).
		Round(0).
		IntPart()
}
