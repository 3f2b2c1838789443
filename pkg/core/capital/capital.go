// Package capital computes required rates of return: CAPM cost of equity,
// market-value-weighted WACC, and historical market risk premium.
package capital

import (
	"math"

	"equity_research/pkg/models"
)

// CAPMResult holds the cost of equity and its components.
type CAPMResult struct {
	CostOfEquity      float64 `json:"cost_of_equity"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
	Beta              float64 `json:"beta"`
	MarketReturn      float64 `json:"market_return"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
}

// CAPM computes cost of equity: Ke = Rf + beta * (Rm - Rf).
func CAPM(beta, riskFreeRate, marketReturn float64) CAPMResult {
	premium := marketReturn - riskFreeRate
	return CAPMResult{
		CostOfEquity:      riskFreeRate + beta*premium,
		RiskFreeRate:      riskFreeRate,
		Beta:              beta,
		MarketReturn:      marketReturn,
		MarketRiskPremium: premium,
	}
}

// WACCResult holds the blended cost of capital and its weights.
type WACCResult struct {
	WACC               float64 `json:"wacc"`
	WeightEquity       float64 `json:"weight_equity"`
	WeightDebt         float64 `json:"weight_debt"`
	CostOfEquity       float64 `json:"cost_of_equity"`
	CostOfDebt         float64 `json:"cost_of_debt"`
	CostOfDebtAfterTax float64 `json:"cost_of_debt_after_tax"`
	TaxRate            float64 `json:"tax_rate"`
}

// WACC blends cost of equity and after-tax cost of debt by market-value
// capital-structure weights. When E+D is zero the result degenerates to the
// cost of equity with a full equity weight; that is a documented fallback,
// not an error.
func WACC(costOfEquity, costOfDebt, marketValueEquity, marketValueDebt, taxRate float64) WACCResult {
	totalValue := marketValueEquity + marketValueDebt
	if totalValue == 0 {
		return WACCResult{
			WACC:         costOfEquity,
			WeightEquity: 1.0,
			WeightDebt:   0.0,
			CostOfEquity: costOfEquity,
			TaxRate:      taxRate,
		}
	}

	weightEquity := marketValueEquity / totalValue
	weightDebt := marketValueDebt / totalValue
	afterTax := costOfDebt * (1 - taxRate)

	return WACCResult{
		WACC:               weightEquity*costOfEquity + weightDebt*afterTax,
		WeightEquity:       weightEquity,
		WeightDebt:         weightDebt,
		CostOfEquity:       costOfEquity,
		CostOfDebt:         costOfDebt,
		CostOfDebtAfterTax: afterTax,
		TaxRate:            taxRate,
	}
}

// RiskPremiumResult summarizes a benchmark's realized return profile.
type RiskPremiumResult struct {
	MarketReturn float64 `json:"market_return"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Premium      float64 `json:"premium"`
	Volatility   float64 `json:"volatility"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	DataPoints   int     `json:"data_points"`
}

// tradingDaysPerYear annualizes daily statistics.
const tradingDaysPerYear = 252

// HistoricalRiskPremium derives the realized market risk premium from a
// benchmark's daily return series: geometric annualization of the mean
// daily return, minus the risk-free rate.
func HistoricalRiskPremium(marketReturns models.ReturnSeries, riskFreeRate float64) RiskPremiumResult {
	n := len(marketReturns)
	result := RiskPremiumResult{RiskFreeRate: riskFreeRate, DataPoints: n}
	if n == 0 {
		result.Premium = -riskFreeRate
		return result
	}

	var sum float64
	for _, p := range marketReturns {
		sum += p.Value
	}
	meanDaily := sum / float64(n)
	annualReturn := math.Pow(1+meanDaily, tradingDaysPerYear) - 1

	var ss float64
	for _, p := range marketReturns {
		d := p.Value - meanDaily
		ss += d * d
	}
	volatility := 0.0
	if n > 1 {
		volatility = math.Sqrt(ss/float64(n-1)) * math.Sqrt(tradingDaysPerYear)
	}

	result.MarketReturn = annualReturn
	result.Premium = annualReturn - riskFreeRate
	result.Volatility = volatility
	if volatility != 0 {
		result.SharpeRatio = (annualReturn - riskFreeRate) / volatility
	}
	return result
}
