// Package valuation implements three independent fair-value models:
// Dividend Discount (Gordon Growth), DCF on free cash flow to firm, and
// DCF on free cash flow to equity. Every model degrades to a non-applicable
// result with a human-readable reason instead of failing on missing data.
package valuation

// Method names identify which model produced a result.
const (
	MethodDDM  = "DDM (Gordon Growth)"
	MethodFCF  = "FCF (Free Cash Flow to Firm)"
	MethodFCFE = "FCFE (Free Cash Flow to Equity)"
)

// Growth-rate clamp bounds shared by DDM and DCF so the models stay
// comparable: raw CAGR estimates are capped to [-10%, +20%].
const (
	growthFloor = -0.10
	growthCap   = 0.20
)

// defaultDividendGrowth is assumed when fewer than two annual dividend
// observations exist.
const defaultDividendGrowth = 0.05

// ValuationResult is the tagged outcome of one valuation method. When
// Applicable is false, Reason explains why and the numeric fields are nil
// except for whatever diagnostics the model could still compute.
type ValuationResult struct {
	Method     string `json:"method"`
	Applicable bool   `json:"applicable"`
	Reason     string `json:"reason,omitempty"`

	// Shared components.
	GrowthRate   *float64 `json:"growth_rate,omitempty"`
	DiscountRate *float64 `json:"discount_rate,omitempty"`

	// DDM components.
	LatestDividend *float64 `json:"latest_dividend,omitempty"`
	NextDividend   *float64 `json:"next_dividend,omitempty"`
	FairValue      *float64 `json:"fair_value,omitempty"`

	// DCF components.
	Historical        []float64 `json:"historical,omitempty"`
	Projected         []float64 `json:"projected,omitempty"`
	TerminalGrowth    *float64  `json:"terminal_growth,omitempty"`
	TerminalValue     *float64  `json:"terminal_value,omitempty"`
	PVProjected       *float64  `json:"pv_projected,omitempty"`
	PVTerminal        *float64  `json:"pv_terminal,omitempty"`
	EnterpriseValue   *float64  `json:"enterprise_value,omitempty"`
	NetDebt           *float64  `json:"net_debt,omitempty"`
	EquityValue       *float64  `json:"equity_value,omitempty"`
	SharesOutstanding *float64  `json:"shares_outstanding,omitempty"`
	FairValuePerShare *float64  `json:"fair_value_per_share,omitempty"`

	// Price comparison, populated only when a current price was supplied.
	CurrentPrice   *float64 `json:"current_price,omitempty"`
	UpsideDownside *float64 `json:"upside_downside,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// notApplicable builds a non-applicable result carrying a reason.
func notApplicable(method, reason string) ValuationResult {
	return ValuationResult{Method: method, Applicable: false, Reason: reason}
}

// clampGrowth caps a raw CAGR estimate to the shared bounds.
func clampGrowth(g float64) float64 {
	if g > growthCap {
		return growthCap
	}
	if g < growthFloor {
		return growthFloor
	}
	return g
}

// recommend maps an upside/downside fraction to a discrete tier. Boundaries
// are exclusive; an upside of exactly 0.20 is a plain Buy.
func recommend(upside float64) string {
	switch {
	case upside > 0.20:
		return "Strong Buy - Undervalued by >20%"
	case upside > 0.10:
		return "Buy - Undervalued by >10%"
	case upside > 0:
		return "Hold - Slightly undervalued"
	case upside > -0.10:
		return "Hold - Fairly valued"
	case upside > -0.20:
		return "Sell - Overvalued by >10%"
	default:
		return "Strong Sell - Overvalued by >20%"
	}
}

// attachPriceComparison fills the upside and recommendation fields when a
// current price is known.
func attachPriceComparison(r *ValuationResult, fairValue float64, currentPrice *float64) {
	if currentPrice == nil || *currentPrice == 0 {
		return
	}
	upside := (fairValue - *currentPrice) / *currentPrice
	r.CurrentPrice = currentPrice
	r.UpsideDownside = &upside
	r.Recommendation = recommend(upside)
}

func floatPtr(v float64) *float64 { return &v }
