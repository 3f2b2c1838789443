package ratios

import (
	"equity_research/pkg/models"
)

// RatioTrends holds one RatioSet per period, most recent first (index 0).
// No ratio is ever extrapolated beyond the available reporting periods.
type RatioTrends struct {
	Periods int        `json:"periods"`
	Sets    []RatioSet `json:"sets"`
}

// ComputeTrends repeats ComputeRatios for each of the N most recent periods,
// where N = min(requested, periods available in both statements).
func ComputeTrends(income, balance *models.StatementTable, periods int) RatioTrends {
	available := income.NumPeriods()
	if balance.NumPeriods() < available {
		available = balance.NumPeriods()
	}
	if periods < available {
		available = periods
	}
	if available < 0 {
		available = 0
	}

	trends := RatioTrends{Periods: available}
	for period := 0; period < available; period++ {
		trends.Sets = append(trends.Sets, ComputeRatios(income, balance, period))
	}
	return trends
}
