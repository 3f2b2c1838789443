package valuation

import (
	"fmt"
	"math"

	"equity_research/pkg/models"
)

// DDMInput collects the inputs for a Gordon Growth valuation.
type DDMInput struct {
	Dividends    models.DividendSeries
	CostOfEquity float64
	// GrowthRate overrides the historical estimate when set.
	GrowthRate *float64
	// CurrentPrice enables the upside/recommendation fields when set.
	CurrentPrice *float64
}

// DDM values equity as a perpetuity of growing dividends:
// fair value = D1 / (Ke - g), D1 = D0 * (1 + g).
// Non-dividend payers and diverging growth (g >= Ke) yield non-applicable
// results, never errors.
func DDM(input DDMInput) ValuationResult {
	if len(input.Dividends) == 0 {
		return notApplicable(MethodDDM, "Company does not pay dividends")
	}

	growth := defaultDividendGrowth
	if input.GrowthRate != nil {
		growth = *input.GrowthRate
	} else {
		growth = DividendGrowthRate(input.Dividends)
	}

	latest, _ := input.Dividends.Latest()
	d0 := latest.Amount
	d1 := d0 * (1 + growth)

	if growth >= input.CostOfEquity {
		// Model diverges; still surface the diagnostics.
		r := notApplicable(MethodDDM, fmt.Sprintf(
			"Growth rate (%.2f%%) exceeds cost of equity (%.2f%%)",
			growth*100, input.CostOfEquity*100))
		r.GrowthRate = &growth
		r.LatestDividend = &d0
		return r
	}

	fairValue := d1 / (input.CostOfEquity - growth)

	r := ValuationResult{
		Method:         MethodDDM,
		Applicable:     true,
		GrowthRate:     &growth,
		DiscountRate:   floatPtr(input.CostOfEquity),
		LatestDividend: &d0,
		NextDividend:   &d1,
		FairValue:      &fairValue,
	}
	attachPriceComparison(&r, fairValue, input.CurrentPrice)
	return r
}

// dividendGrowthYears bounds how many annual observations feed the CAGR.
const dividendGrowthYears = 5

// DividendGrowthRate estimates dividend growth as the CAGR of calendar-year
// dividend totals over up to the five most recent years, clamped to the
// shared growth bounds. Fewer than two annual observations fall back to the
// 5% default assumption.
func DividendGrowthRate(dividends models.DividendSeries) float64 {
	annual := dividends.AnnualTotals()
	if len(annual) < 2 {
		return defaultDividendGrowth
	}
	if len(annual) > dividendGrowthYears {
		annual = annual[len(annual)-dividendGrowthYears:]
	}

	years := len(annual) - 1
	first := annual[0].Total
	last := annual[len(annual)-1].Total
	if years == 0 || first <= 0 || last <= 0 {
		return defaultDividendGrowth
	}

	cagr := math.Pow(last/first, 1/float64(years)) - 1
	return clampGrowth(cagr)
}
