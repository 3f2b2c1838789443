package ratios

import (
	"math"
	"testing"

	"equity_research/pkg/models"
)

const eps = 1e-9

func testIncome() *models.StatementTable {
	t := models.NewStatementTable(models.IncomeStatement, []string{"2022", "2023"})
	t.AddRow("Total Revenue", []*float64{models.Float(900), models.Float(1000)})
	t.AddRow("Cost Of Revenue", []*float64{models.Float(540), models.Float(600)})
	t.AddRow("Operating Income", []*float64{models.Float(180), models.Float(200)})
	t.AddRow("Net Income", []*float64{models.Float(100), models.Float(120)})
	// Vendors report interest expense with either sign.
	t.AddRow("Interest Expense", []*float64{models.Float(-35), models.Float(-40)})
	return t
}

func testBalance() *models.StatementTable {
	t := models.NewStatementTable(models.BalanceSheet, []string{"2022", "2023"})
	t.AddRow("Total Assets", []*float64{models.Float(1800), models.Float(2000)})
	t.AddRow("Current Assets", []*float64{models.Float(700), models.Float(800)})
	t.AddRow("Current Liabilities", []*float64{models.Float(350), models.Float(400)})
	t.AddRow("Cash And Cash Equivalents", []*float64{models.Float(120), models.Float(150)})
	t.AddRow("Inventory", []*float64{models.Float(90), models.Float(100)})
	t.AddRow("Accounts Receivable", []*float64{models.Float(180), models.Float(200)})
	t.AddRow("Total Liabilities Net Minority Interest", []*float64{models.Float(1100), models.Float(1200)})
	// No explicit Total Debt line: forces the LT + ST fallback.
	t.AddRow("Long Term Debt", []*float64{models.Float(450), models.Float(500)})
	t.AddRow("Current Debt", []*float64{models.Float(80), models.Float(100)})
	t.AddRow("Stockholders Equity", []*float64{models.Float(700), models.Float(800)})
	return t
}

func check(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected %f, got nil", name, want)
		return
	}
	if math.Abs(*got-want) > eps {
		t.Errorf("%s: expected %f, got %f", name, want, *got)
	}
}

func TestComputeRatiosMostRecentPeriod(t *testing.T) {
	set := ComputeRatios(testIncome(), testBalance(), 0)

	check(t, "current ratio", set.Liquidity.CurrentRatio, 2.0)            // 800/400
	check(t, "quick ratio", set.Liquidity.QuickRatio, 1.75)               // (800-100)/400
	check(t, "cash ratio", set.Liquidity.CashRatio, 0.375)                // 150/400
	check(t, "asset turnover", set.Efficiency.AssetTurnover, 0.5)         // 1000/2000
	check(t, "inventory turnover", set.Efficiency.InventoryTurnover, 6.0) // 600/100
	check(t, "receivables turnover", set.Efficiency.ReceivablesTurnover, 5.0)
	check(t, "DSO", set.Efficiency.DaysSalesOutstanding, 73.0) // 365/5
	check(t, "debt to equity", set.Solvency.DebtToEquity, 0.75)       // (500+100)/800
	check(t, "debt ratio", set.Solvency.DebtRatio, 0.6)               // 1200/2000
	check(t, "interest coverage", set.Solvency.InterestCoverage, 5.0) // 200/|-40|
	check(t, "equity multiplier", set.Solvency.EquityMultiplier, 2.5)
	check(t, "gross margin", set.Profitability.GrossMargin, 0.4)
	check(t, "operating margin", set.Profitability.OperatingMargin, 0.2)
	check(t, "net margin", set.Profitability.NetMargin, 0.12)
	check(t, "ROA", set.Profitability.ReturnOnAssets, 0.06)
	check(t, "ROE", set.Profitability.ReturnOnEquity, 0.15)
	// tax = 1 - 120/200 = 0.4, NOPAT = 200*0.6 = 120, invested = 800+600
	check(t, "ROIC", set.Profitability.ROIC, 120.0/1400.0)

	if set.Available() != 17 {
		t.Errorf("expected all 17 ratios, got %d", set.Available())
	}
}

func TestComputeRatiosMissingDataDegradesToNil(t *testing.T) {
	income := models.NewStatementTable(models.IncomeStatement, []string{"2023"})
	income.AddRow("Total Revenue", []*float64{models.Float(1000)})
	balance := models.NewStatementTable(models.BalanceSheet, []string{"2023"})

	set := ComputeRatios(income, balance, 0)
	if set.Available() != 0 {
		t.Errorf("expected 0 computable ratios, got %d", set.Available())
	}
	if set.Liquidity.CurrentRatio != nil {
		t.Error("current ratio should be nil without balance data")
	}
}

func TestQuickRatioTreatsMissingInventoryAsZero(t *testing.T) {
	balance := models.NewStatementTable(models.BalanceSheet, []string{"2023"})
	balance.AddRow("Current Assets", []*float64{models.Float(600)})
	balance.AddRow("Current Liabilities", []*float64{models.Float(300)})
	income := models.NewStatementTable(models.IncomeStatement, []string{"2023"})

	set := ComputeRatios(income, balance, 0)
	check(t, "quick ratio without inventory", set.Liquidity.QuickRatio, 2.0)
}

func TestComputeTrendsCapsAtAvailablePeriods(t *testing.T) {
	trends := ComputeTrends(testIncome(), testBalance(), 5)

	if trends.Periods != 2 {
		t.Fatalf("expected 2 periods, got %d", trends.Periods)
	}
	// Index 0 is the most recent period.
	check(t, "period 0 net margin", trends.Sets[0].Profitability.NetMargin, 0.12)
	check(t, "period 1 net margin", trends.Sets[1].Profitability.NetMargin, 100.0/900.0)
}
