package valuation

import (
	"fmt"
	"math"

	"equity_research/pkg/models"
)

// Historical window and projection defaults shared by both DCF variants.
const (
	maxHistoricalYears    = 4
	defaultForecastYears  = 5
	defaultTerminalGrowth = 0.03
)

// Cash-flow and balance line-item synonyms, ordered by preference.
var (
	operatingCashFlowNames = []string{"Operating Cash Flow", "Cash Flow From Continuing Operating Activities",
		"Total Cash From Operating Activities"}
	capexNames = []string{"Capital Expenditure", "Capital Expenditures", "Purchase Of PPE"}
	// Repayments are reported negative; summing issuance and repayment as
	// reported yields net borrowing.
	debtIssuanceNames  = []string{"Issuance Of Debt", "Long Term Debt Issuance"}
	debtRepaymentNames = []string{"Repayment Of Debt", "Long Term Debt Payments"}

	balanceTotalDebtNames = []string{"Total Debt", "Long Term Debt And Capital Lease Obligation"}
	balanceLTDebtNames    = []string{"Long Term Debt"}
	balanceSTDebtNames    = []string{"Current Debt", "Short Term Debt"}
	balanceCashNames      = []string{"Cash And Cash Equivalents", "Cash", "Cash Cash Equivalents And Short Term Investments"}
)

// DCFInput collects the inputs shared by the FCF and FCFE models. The balance
// sheet is only consulted by the firm-level model (for the net-debt bridge)
// and may be nil for FCFE.
type DCFInput struct {
	CashFlow *models.StatementTable
	Balance  *models.StatementTable
	// DiscountRate is WACC for FCF, cost of equity for FCFE.
	DiscountRate float64
	// ForecastYears defaults to 5 when zero.
	ForecastYears int
	// TerminalGrowth defaults to 3% when nil.
	TerminalGrowth    *float64
	SharesOutstanding *float64
	CurrentPrice      *float64
}

// DCFFirm values the whole firm by discounting projected free cash flow to
// the firm (operating cash flow minus capex) at the discount rate, then
// bridges to equity value by subtracting net debt.
func DCFFirm(input DCFInput) ValuationResult {
	historical := historicalFlows(input.CashFlow, freeCashFlowToFirm)
	return runDCF(MethodFCF, input, historical, true)
}

// DCFEquity values equity directly by discounting free cash flow to equity
// (firm free cash flow plus net borrowing) at the cost of equity. No net-debt
// bridge applies.
func DCFEquity(input DCFInput) ValuationResult {
	historical := historicalFlows(input.CashFlow, freeCashFlowToEquity)
	return runDCF(MethodFCFE, input, historical, false)
}

// freeCashFlowToFirm = operating cash flow - |capex|. Capex is reported with
// either sign across vendors; the magnitude is always an outflow.
func freeCashFlowToFirm(cf *models.StatementTable, period int) *float64 {
	ocf := fieldValue(cf, period, operatingCashFlowNames)
	capex := fieldValue(cf, period, capexNames)
	if ocf == nil || capex == nil {
		return nil
	}
	fcf := *ocf - math.Abs(*capex)
	return &fcf
}

// freeCashFlowToEquity adds net borrowing on top of firm free cash flow.
// Missing debt-activity lines are treated as zero borrowing.
func freeCashFlowToEquity(cf *models.StatementTable, period int) *float64 {
	fcf := freeCashFlowToFirm(cf, period)
	if fcf == nil {
		return nil
	}
	netBorrowing := 0.0
	if v := fieldValue(cf, period, debtIssuanceNames); v != nil {
		netBorrowing += *v
	}
	if v := fieldValue(cf, period, debtRepaymentNames); v != nil {
		netBorrowing += *v
	}
	fcfe := *fcf + netBorrowing
	return &fcfe
}

// historicalFlows extracts up to four years of the given flow, oldest first.
func historicalFlows(cf *models.StatementTable, flow func(*models.StatementTable, int) *float64) []float64 {
	if cf == nil {
		return nil
	}
	periods := cf.NumPeriods()
	if periods > maxHistoricalYears {
		periods = maxHistoricalYears
	}
	var flows []float64
	for period := periods - 1; period >= 0; period-- {
		if v := flow(cf, period); v != nil {
			flows = append(flows, *v)
		}
	}
	return flows
}

// runDCF performs the projection, discounting, and terminal-value math common
// to both variants.
func runDCF(method string, input DCFInput, historical []float64, bridgeNetDebt bool) ValuationResult {
	if len(historical) < 2 {
		return notApplicable(method, "Insufficient cash flow history (need at least 2 years)")
	}

	oldest := historical[0]
	latest := historical[len(historical)-1]
	years := len(historical) - 1

	if oldest == 0 || latest/oldest <= 0 {
		return notApplicable(method, "Cash flow sign change prevents growth estimation")
	}
	growth := clampGrowth(math.Pow(latest/oldest, 1/float64(years)) - 1)

	terminalGrowth := defaultTerminalGrowth
	if input.TerminalGrowth != nil {
		terminalGrowth = *input.TerminalGrowth
	}
	if input.DiscountRate <= terminalGrowth {
		r := notApplicable(method, fmt.Sprintf(
			"Discount rate (%.2f%%) must exceed terminal growth (%.2f%%)",
			input.DiscountRate*100, terminalGrowth*100))
		r.GrowthRate = &growth
		r.Historical = historical
		return r
	}

	forecastYears := input.ForecastYears
	if forecastYears <= 0 {
		forecastYears = defaultForecastYears
	}

	projected := make([]float64, forecastYears)
	flow := latest
	for i := range projected {
		flow *= 1 + growth
		projected[i] = flow
	}

	pvProjected := 0.0
	for i, f := range projected {
		pvProjected += f / math.Pow(1+input.DiscountRate, float64(i+1))
	}

	terminalValue := projected[forecastYears-1] * (1 + terminalGrowth) /
		(input.DiscountRate - terminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+input.DiscountRate, float64(forecastYears))

	presentValue := pvProjected + pvTerminal

	r := ValuationResult{
		Method:         method,
		Applicable:     true,
		GrowthRate:     &growth,
		DiscountRate:   floatPtr(input.DiscountRate),
		Historical:     historical,
		Projected:      projected,
		TerminalGrowth: &terminalGrowth,
		TerminalValue:  &terminalValue,
		PVProjected:    &pvProjected,
		PVTerminal:     &pvTerminal,
	}

	equityValue := presentValue
	if bridgeNetDebt {
		r.EnterpriseValue = &presentValue
		netDebt := netDebtFromBalance(input.Balance)
		r.NetDebt = &netDebt
		equityValue = presentValue - netDebt
	}
	r.EquityValue = &equityValue

	if input.SharesOutstanding != nil && *input.SharesOutstanding > 0 {
		perShare := equityValue / *input.SharesOutstanding
		r.SharesOutstanding = input.SharesOutstanding
		r.FairValuePerShare = &perShare
		attachPriceComparison(&r, perShare, input.CurrentPrice)
	}
	return r
}

// netDebtFromBalance = total debt - cash, from the most recent balance
// period. Missing components count as zero; a nil balance sheet yields zero
// net debt so the enterprise value carries through unadjusted.
func netDebtFromBalance(balance *models.StatementTable) float64 {
	if balance == nil {
		return 0
	}
	debt := 0.0
	if v := fieldValue(balance, 0, balanceTotalDebtNames); v != nil {
		debt = *v
	} else {
		if lt := fieldValue(balance, 0, balanceLTDebtNames); lt != nil {
			debt += *lt
		}
		if st := fieldValue(balance, 0, balanceSTDebtNames); st != nil {
			debt += *st
		}
	}
	cash := 0.0
	if v := fieldValue(balance, 0, balanceCashNames); v != nil {
		cash = *v
	}
	return debt - cash
}

// fieldValue tries each synonym in order and returns the first present value.
func fieldValue(t *models.StatementTable, period int, names []string) *float64 {
	for _, name := range names {
		if v := t.Value(name, period); v != nil {
			return v
		}
	}
	return nil
}
