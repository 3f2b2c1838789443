package valuation

import "equity_research/pkg/models"

// Inputs bundles everything the three models need for one company.
type Inputs struct {
	Dividends models.DividendSeries
	CashFlow  *models.StatementTable
	Balance   *models.StatementTable

	CostOfEquity float64
	WACC         float64

	DividendGrowthOverride *float64
	ForecastYears          int
	TerminalGrowth         *float64
	SharesOutstanding      *float64
	CurrentPrice           *float64
}

// Summary holds the outcome of all three valuation models side by side.
type Summary struct {
	DDM  ValuationResult `json:"ddm"`
	FCF  ValuationResult `json:"fcf"`
	FCFE ValuationResult `json:"fcfe"`
}

// RunAll executes DDM, firm DCF, and equity DCF on the same inputs. Models
// that cannot run report themselves non-applicable; RunAll never fails.
func RunAll(inputs Inputs) Summary {
	ddm := DDM(DDMInput{
		Dividends:    inputs.Dividends,
		CostOfEquity: inputs.CostOfEquity,
		GrowthRate:   inputs.DividendGrowthOverride,
		CurrentPrice: inputs.CurrentPrice,
	})

	fcf := DCFFirm(DCFInput{
		CashFlow:          inputs.CashFlow,
		Balance:           inputs.Balance,
		DiscountRate:      inputs.WACC,
		ForecastYears:     inputs.ForecastYears,
		TerminalGrowth:    inputs.TerminalGrowth,
		SharesOutstanding: inputs.SharesOutstanding,
		CurrentPrice:      inputs.CurrentPrice,
	})

	fcfe := DCFEquity(DCFInput{
		CashFlow:          inputs.CashFlow,
		DiscountRate:      inputs.CostOfEquity,
		ForecastYears:     inputs.ForecastYears,
		TerminalGrowth:    inputs.TerminalGrowth,
		SharesOutstanding: inputs.SharesOutstanding,
		CurrentPrice:      inputs.CurrentPrice,
	})

	return Summary{DDM: ddm, FCF: fcf, FCFE: fcfe}
}

// Applicable counts how many models produced a usable fair value.
func (s Summary) Applicable() int {
	count := 0
	for _, r := range []ValuationResult{s.DDM, s.FCF, s.FCFE} {
		if r.Applicable {
			count++
		}
	}
	return count
}

// Results returns the three results in a stable order for rendering.
func (s Summary) Results() []ValuationResult {
	return []ValuationResult{s.DDM, s.FCF, s.FCFE}
}
