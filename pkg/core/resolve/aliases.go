package resolve

import "equity_research/pkg/models"

// Alias tables mapping vendor line-item labels onto the canonical schema the
// ratio and valuation engines consume. Many-to-one by design: several vendor
// spellings collapse onto one canonical label. The tables are plain data so
// a new vendor format is a table edit, not a code change.

var incomeStatementAliases = map[string]string{
	// Revenue
	"Revenue":                  "Total Revenue",
	"Sales & Services Revenue": "Total Revenue",
	"Other Revenue":            "Other Income Expense Net",

	// Cost of revenue
	"Cost of Goods Sold": "Cost Of Revenue",
	"Cost of Revenue":    "Cost Of Revenue",
	"Gross Profit":       "Gross Profit",

	// Operating expenses
	"Selling, General & Admin":             "Selling General Administrative",
	"Selling General & Administrative Exp": "Selling General Administrative",
	"Research & Development":               "Research Development",
	"Research and Development":             "Research Development",
	"Depreciation & Amortization":          "Reconciled Depreciation",
	"Other Operating Expense/(Income)":     "Other Operating Expenses",

	// Operating income
	"Operating Income": "Operating Income",
	"Operating Profit": "Operating Income",
	"EBIT":             "EBIT",
	"EBITDA":           "EBITDA",

	// Non-operating items
	"Interest Expense":                     "Interest Expense",
	"Interest Income":                      "Interest Income",
	"Interest Expense, Net":                "Interest Expense Non Operating",
	"Other Non-Operating Income/(Expense)": "Other Non Operating Income Expenses",

	// Pre-tax income
	"Pretax Income":     "Pretax Income",
	"Pre-Tax Income":    "Pretax Income",
	"Income Before Tax": "Pretax Income",

	// Tax
	"Income Tax":    "Tax Provision",
	"Tax Expense":   "Tax Provision",
	"Tax Provision": "Tax Provision",

	// Net income
	"Net Income":              "Net Income",
	"Net Income to Company":   "Net Income Common Stockholders",
	"Net Income Common Stock": "Net Income Common Stockholders",
	"Consolidated Net Income": "Net Income",

	// Per-share data
	"Diluted EPS":                          "Diluted EPS",
	"Basic EPS":                            "Basic EPS",
	"Diluted Normalized EPS":               "Normalized Diluted EPS",
	"Diluted EPS Excluding ExtraOrd Items": "Diluted EPS",

	// Shares outstanding
	"Diluted Shares Outstanding":      "Diluted Average Shares",
	"Basic Shares Outstanding":        "Basic Average Shares",
	"Weighted Avg Shares Outstanding": "Diluted Average Shares",
}

var balanceSheetAliases = map[string]string{
	// Assets
	"Total Assets": "Total Assets",

	// Current assets
	"Total Current Assets":      "Current Assets",
	"Current Assets":            "Current Assets",
	"Cash & Cash Equivalents":   "Cash And Cash Equivalents",
	"Cash and Cash Equivalents": "Cash And Cash Equivalents",
	"Cash":                      "Cash",
	"ST Investments":            "Other Short Term Investments",
	"Short-term Investments":    "Other Short Term Investments",
	"Accounts & Notes Receiv":   "Accounts Receivable",
	"Accounts Receivable":       "Accounts Receivable",
	"Trade Accounts Receivable": "Accounts Receivable",
	"Inventories":               "Inventory",
	"Inventory":                 "Inventory",
	"Prepaid Expenses":          "Prepaid Assets",
	"Other Current Assets":      "Other Current Assets",

	// Non-current assets
	"Total Non-Current Assets":    "Total Non Current Assets",
	"PP&E":                        "Net PPE",
	"Net PP&E":                    "Net PPE",
	"Property, Plant & Equipment": "Net PPE",
	"Gross PP&E":                  "Gross PPE",
	"Accumulated Depreciation":    "Accumulated Depreciation",
	"Goodwill":                    "Goodwill",
	"Intangible Assets":           "Net Intangible Assets",
	"Long-term Investments":       "Long Term Investments",
	"LT Investments":              "Long Term Investments",
	"Deferred Tax Assets":         "Deferred Tax Assets Long Term",
	"Other Non-Current Assets":    "Other Non Current Assets",

	// Liabilities
	"Total Liabilities": "Total Liabilities Net Minority Interest",

	// Current liabilities
	"Total Current Liabilities": "Current Liabilities",
	"Current Liabilities":       "Current Liabilities",
	"Accounts Payable":          "Accounts Payable",
	"Payables":                  "Accounts Payable",
	"Trade Accounts Payable":    "Accounts Payable",
	"Short-term Debt":           "Current Debt",
	"Short Term Debt":           "Current Debt",
	"ST Debt":                   "Current Debt",
	"Accrued Expenses":          "Payables And Accrued Expenses",
	"Deferred Revenue":          "Current Deferred Revenue",
	"Other Current Liabilities": "Other Current Liabilities",

	// Non-current liabilities
	"Total Non-Current Liabilities": "Total Non Current Liabilities Net Minority Interest",
	"Long-term Debt":                "Long Term Debt",
	"Long Term Debt":                "Long Term Debt",
	"LT Debt":                       "Long Term Debt",
	"Deferred Tax Liabilities":      "Deferred Tax Liabilities Non Current",
	"Other Non-Current Liabilities": "Other Non Current Liabilities",

	// Total debt
	"Total Debt": "Total Debt",
	"Debt":       "Total Debt",

	// Equity
	"Total Equity":               "Stockholders Equity",
	"Total Shareholders' Equity": "Stockholders Equity",
	"Shareholders Equity":        "Stockholders Equity",
	"Common Stock":               "Common Stock",
	"Retained Earnings":          "Retained Earnings",
	"Treasury Stock":             "Treasury Stock",
	"Additional Paid-in Capital": "Additional Paid In Capital",
	"Other Equity":               "Other Equity Adjustments",
}

var cashFlowAliases = map[string]string{
	// Operating activities
	"Cash from Operating Activities": "Operating Cash Flow",
	"Operating Cash Flow":            "Operating Cash Flow",
	"Net Cash from Operations":       "Operating Cash Flow",
	"Net Income":                     "Net Income From Continuing Operations",

	// Operating adjustments
	"Depreciation & Amortization":   "Depreciation And Amortization",
	"Depreciation":                  "Depreciation",
	"Amortization":                  "Amortization",
	"Stock-Based Compensation":      "Stock Based Compensation",
	"Deferred Tax":                  "Deferred Tax",
	"Change in Working Capital":     "Change In Working Capital",
	"Change in Accounts Receivable": "Change In Accounts Receivable",
	"Change in Inventories":         "Change In Inventory",
	"Change in Accounts Payable":    "Change In Accounts Payable",
	"Other Operating Activities":    "Other Operating Cash Flow Items Total",

	// Investing activities
	"Cash from Investing Activities": "Investing Cash Flow",
	"Investing Cash Flow":            "Investing Cash Flow",
	"Net Cash from Investing":        "Investing Cash Flow",
	"Capital Expenditure":            "Capital Expenditure",
	"CapEx":                          "Capital Expenditure",
	"Purchase of PP&E":               "Capital Expenditure",
	"Purchase of Fixed Assets":       "Capital Expenditure",
	"Purchase of Investments":        "Purchase Of Investment",
	"Sale of Investments":            "Sale Of Investment",
	"Acquisitions":                   "Net Business Purchase And Sale",
	"Other Investing Activities":     "Net Other Investing Changes",

	// Financing activities
	"Cash from Financing Activities": "Financing Cash Flow",
	"Financing Cash Flow":            "Financing Cash Flow",
	"Net Cash from Financing":        "Financing Cash Flow",
	"Issuance of Debt":               "Issuance Of Debt",
	"Repayment of Debt":              "Repayment Of Debt",
	"Net Debt Issued":                "Net Issuance Payments Of Debt",
	"Issuance of Stock":              "Stock Issuance",
	"Repurchase of Stock":            "Repurchase Of Capital Stock",
	"Dividends Paid":                 "Cash Dividends Paid",
	"Cash Dividends Paid":            "Cash Dividends Paid",
	"Dividend Payments":              "Cash Dividends Paid",
	"Other Financing Activities":     "Net Other Financing Charges",

	// Free cash flow
	"Free Cash Flow": "Free Cash Flow",
	"FCF":            "Free Cash Flow",

	// Net change
	"Net Change in Cash": "Changes In Cash",
	"Net Cash Flow":      "Changes In Cash",
	"Beginning Cash":     "Beginning Cash Position",
	"Ending Cash":        "End Cash Position",
}

// criticalFields lists the canonical labels a statement must carry for the
// downstream engines to produce a full analysis.
var criticalFields = map[models.StatementKind][]string{
	models.IncomeStatement: {
		"Total Revenue", "Cost Of Revenue", "Gross Profit",
		"Operating Income", "Pretax Income", "Net Income",
	},
	models.BalanceSheet: {
		"Total Assets", "Current Assets", "Current Liabilities",
		"Total Liabilities Net Minority Interest", "Stockholders Equity",
	},
	models.CashFlowStatement: {
		"Operating Cash Flow", "Investing Cash Flow", "Financing Cash Flow",
	},
}

// aliasTable returns the alias map for a statement kind.
func aliasTable(kind models.StatementKind) map[string]string {
	switch kind {
	case models.IncomeStatement:
		return incomeStatementAliases
	case models.BalanceSheet:
		return balanceSheetAliases
	case models.CashFlowStatement:
		return cashFlowAliases
	}
	return nil
}
