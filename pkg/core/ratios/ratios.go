// Package ratios computes per-period liquidity, efficiency, solvency, and
// profitability ratios from canonicalized statements. Every ratio degrades
// to nil when a required line item is missing or a denominator is zero;
// nothing in this package panics or returns an error for bad data.
package ratios

import (
	"equity_research/pkg/models"
)

// Synonym lists per canonical concept. Resolution upstream should have
// normalized most of these, but vendor feeds that skip resolution still
// work through the ordered fallbacks.
var (
	revenueNames         = []string{"Total Revenue", "Total Revenues", "Revenue", "Revenues", "Net Sales"}
	cogsNames            = []string{"Cost Of Revenue", "Cost of Revenue", "COGS", "Cost of Goods Sold"}
	grossProfitNames     = []string{"Gross Profit", "Gross Income"}
	operatingIncomeNames = []string{"Operating Income", "Operating Revenue", "EBIT"}
	netIncomeNames       = []string{"Net Income", "Net Income Common Stockholders", "Net Income Available to Common Shareholders"}
	ebitNames            = []string{"EBIT", "Operating Income", "Earnings Before Interest and Taxes"}
	interestExpenseNames = []string{"Interest Expense", "Interest Expense Non Operating", "Net Interest Income"}

	totalAssetsNames   = []string{"Total Assets", "Total Asset"}
	currentAssetsNames = []string{"Current Assets", "Total Current Assets"}
	cashNames          = []string{"Cash And Cash Equivalents", "Cash", "Cash and Equivalents"}
	inventoryNames     = []string{"Inventory", "Inventories"}
	receivablesNames   = []string{"Receivables", "Accounts Receivable", "Net Receivables"}

	totalLiabilitiesNames   = []string{"Total Liabilities Net Minority Interest", "Total Liabilities"}
	currentLiabilitiesNames = []string{"Current Liabilities", "Total Current Liabilities"}
	totalDebtNames          = []string{"Total Debt", "Long Term Debt And Capital Lease Obligation"}
	longTermDebtNames       = []string{"Long Term Debt", "Long Term Debt And Capital Lease Obligation"}
	shortTermDebtNames      = []string{"Current Debt", "Short Term Debt", "Current Debt And Capital Lease Obligation"}

	totalEquityNames = []string{"Total Equity Gross Minority Interest", "Stockholders Equity",
		"Total Stockholder Equity", "Shareholders Equity", "Total Equity"}
	shareholdersEquityNames = []string{"Stockholders Equity", "Total Stockholder Equity",
		"Shareholders Equity", "Total Equity Gross Minority Interest"}
)

// lookup tries each name in order and returns the first present value.
func lookup(t *models.StatementTable, period int, names []string) *float64 {
	for _, name := range names {
		if v := t.Value(name, period); v != nil {
			return v
		}
	}
	return nil
}

// ratio divides num by den, returning nil when either is missing or the
// denominator is exactly zero.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	r := *num / *den
	return &r
}

// LiquidityRatios measure the ability to meet short-term obligations.
type LiquidityRatios struct {
	CurrentRatio *float64 `json:"current_ratio"`
	QuickRatio   *float64 `json:"quick_ratio"`
	CashRatio    *float64 `json:"cash_ratio"`
}

// EfficiencyRatios measure how productively assets generate revenue.
type EfficiencyRatios struct {
	AssetTurnover        *float64 `json:"asset_turnover"`
	InventoryTurnover    *float64 `json:"inventory_turnover"`
	ReceivablesTurnover  *float64 `json:"receivables_turnover"`
	DaysSalesOutstanding *float64 `json:"days_sales_outstanding"`
}

// SolvencyRatios measure leverage and debt-service capacity.
type SolvencyRatios struct {
	DebtToEquity     *float64 `json:"debt_to_equity"`
	DebtRatio        *float64 `json:"debt_ratio"`
	InterestCoverage *float64 `json:"interest_coverage"`
	EquityMultiplier *float64 `json:"equity_multiplier"`
}

// ProfitabilityRatios measure margins and returns on capital.
type ProfitabilityRatios struct {
	GrossMargin     *float64 `json:"gross_profit_margin"`
	OperatingMargin *float64 `json:"operating_profit_margin"`
	NetMargin       *float64 `json:"net_profit_margin"`
	ReturnOnAssets  *float64 `json:"return_on_assets"`
	ReturnOnEquity  *float64 `json:"return_on_equity"`
	ROIC            *float64 `json:"return_on_invested_capital"`
}

// RatioSet is one period's full ratio picture, grouped by category.
type RatioSet struct {
	Period        int                 `json:"period"`
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
	Solvency      SolvencyRatios      `json:"solvency"`
	Profitability ProfitabilityRatios `json:"profitability"`
}

// Available counts the non-nil ratios in the set.
func (r RatioSet) Available() int {
	count := 0
	for _, v := range []*float64{
		r.Liquidity.CurrentRatio, r.Liquidity.QuickRatio, r.Liquidity.CashRatio,
		r.Efficiency.AssetTurnover, r.Efficiency.InventoryTurnover,
		r.Efficiency.ReceivablesTurnover, r.Efficiency.DaysSalesOutstanding,
		r.Solvency.DebtToEquity, r.Solvency.DebtRatio,
		r.Solvency.InterestCoverage, r.Solvency.EquityMultiplier,
		r.Profitability.GrossMargin, r.Profitability.OperatingMargin,
		r.Profitability.NetMargin, r.Profitability.ReturnOnAssets,
		r.Profitability.ReturnOnEquity, r.Profitability.ROIC,
	} {
		if v != nil {
			count++
		}
	}
	return count
}

// ComputeRatios calculates the full ratio set for one period, where period 0
// is the most recent reporting period.
func ComputeRatios(income, balance *models.StatementTable, period int) RatioSet {
	return RatioSet{
		Period:        period,
		Liquidity:     computeLiquidity(balance, period),
		Efficiency:    computeEfficiency(income, balance, period),
		Solvency:      computeSolvency(income, balance, period),
		Profitability: computeProfitability(income, balance, period),
	}
}

func computeLiquidity(balance *models.StatementTable, period int) LiquidityRatios {
	currentAssets := lookup(balance, period, currentAssetsNames)
	currentLiabilities := lookup(balance, period, currentLiabilitiesNames)
	cash := lookup(balance, period, cashNames)

	var quick *float64
	if currentAssets != nil && currentLiabilities != nil && *currentLiabilities != 0 {
		// Missing inventory is treated as zero: service companies report none.
		inv := 0.0
		if v := lookup(balance, period, inventoryNames); v != nil {
			inv = *v
		}
		q := (*currentAssets - inv) / *currentLiabilities
		quick = &q
	}

	return LiquidityRatios{
		CurrentRatio: ratio(currentAssets, currentLiabilities),
		QuickRatio:   quick,
		CashRatio:    ratio(cash, currentLiabilities),
	}
}

func computeEfficiency(income, balance *models.StatementTable, period int) EfficiencyRatios {
	revenue := lookup(income, period, revenueNames)
	cogs := lookup(income, period, cogsNames)
	totalAssets := lookup(balance, period, totalAssetsNames)
	inventory := lookup(balance, period, inventoryNames)
	receivables := lookup(balance, period, receivablesNames)

	receivablesTurnover := ratio(revenue, receivables)

	var dso *float64
	if receivablesTurnover != nil && *receivablesTurnover != 0 {
		d := 365.0 / *receivablesTurnover
		dso = &d
	}

	return EfficiencyRatios{
		AssetTurnover:        ratio(revenue, totalAssets),
		InventoryTurnover:    ratio(cogs, inventory),
		ReceivablesTurnover:  receivablesTurnover,
		DaysSalesOutstanding: dso,
	}
}

// totalDebt returns the explicit total-debt line, falling back to long-term
// plus short-term debt when only the components are reported.
func totalDebt(balance *models.StatementTable, period int) *float64 {
	if v := lookup(balance, period, totalDebtNames); v != nil {
		return v
	}
	lt := lookup(balance, period, longTermDebtNames)
	st := lookup(balance, period, shortTermDebtNames)
	if lt == nil && st == nil {
		return nil
	}
	sum := 0.0
	if lt != nil {
		sum += *lt
	}
	if st != nil {
		sum += *st
	}
	return &sum
}

func computeSolvency(income, balance *models.StatementTable, period int) SolvencyRatios {
	debt := totalDebt(balance, period)
	totalEquity := lookup(balance, period, totalEquityNames)
	totalLiabilities := lookup(balance, period, totalLiabilitiesNames)
	totalAssets := lookup(balance, period, totalAssetsNames)
	ebit := lookup(income, period, ebitNames)
	interestExpense := lookup(income, period, interestExpenseNames)

	var coverage *float64
	if ebit != nil && interestExpense != nil && *interestExpense != 0 {
		// Vendors report interest expense with either sign.
		ie := *interestExpense
		if ie < 0 {
			ie = -ie
		}
		c := *ebit / ie
		coverage = &c
	}

	return SolvencyRatios{
		DebtToEquity:     ratio(debt, totalEquity),
		DebtRatio:        ratio(totalLiabilities, totalAssets),
		InterestCoverage: coverage,
		EquityMultiplier: ratio(totalAssets, totalEquity),
	}
}

// defaultTaxRate is assumed when the effective rate cannot be estimated.
const defaultTaxRate = 0.25

func computeProfitability(income, balance *models.StatementTable, period int) ProfitabilityRatios {
	revenue := lookup(income, period, revenueNames)
	cogs := lookup(income, period, cogsNames)
	operatingIncome := lookup(income, period, operatingIncomeNames)
	netIncome := lookup(income, period, netIncomeNames)
	totalAssets := lookup(balance, period, totalAssetsNames)
	shareholdersEquity := lookup(balance, period, shareholdersEquityNames)

	var grossMargin *float64
	if revenue != nil && *revenue != 0 {
		if cogs != nil {
			g := (*revenue - *cogs) / *revenue
			grossMargin = &g
		} else if gp := lookup(income, period, grossProfitNames); gp != nil {
			g := *gp / *revenue
			grossMargin = &g
		}
	}

	return ProfitabilityRatios{
		GrossMargin:     grossMargin,
		OperatingMargin: ratio(operatingIncome, revenue),
		NetMargin:       ratio(netIncome, revenue),
		ReturnOnAssets:  ratio(netIncome, totalAssets),
		ReturnOnEquity:  ratio(netIncome, shareholdersEquity),
		ROIC:            computeROIC(income, balance, period),
	}
}

// computeROIC = NOPAT / (Total Equity + Total Debt), with
// NOPAT = Operating Income x (1 - effective tax rate). The effective rate is
// estimated from net income over EBIT, clamped at zero, defaulting to 25%
// when EBIT is unavailable.
func computeROIC(income, balance *models.StatementTable, period int) *float64 {
	operatingIncome := lookup(income, period, operatingIncomeNames)
	if operatingIncome == nil {
		return nil
	}

	taxRate := defaultTaxRate
	netIncome := lookup(income, period, netIncomeNames)
	ebit := lookup(income, period, ebitNames)
	if netIncome != nil && ebit != nil && *ebit != 0 {
		estimated := 1 - *netIncome / *ebit
		if estimated < 0 {
			estimated = 0
		}
		taxRate = estimated
	}

	nopat := *operatingIncome * (1 - taxRate)

	totalEquity := lookup(balance, period, totalEquityNames)
	if totalEquity == nil {
		return nil
	}
	invested := *totalEquity
	if debt := totalDebt(balance, period); debt != nil {
		invested += *debt
	}
	if invested == 0 {
		return nil
	}
	roic := nopat / invested
	return &roic
}
