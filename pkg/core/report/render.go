// Package report renders the assembled analysis into a Markdown research
// report and carries the helpers for cleaning LLM-generated sections.
package report

import (
	"fmt"
	"strings"
	"time"

	"equity_research/pkg/core/capital"
	"equity_research/pkg/core/ratios"
	"equity_research/pkg/core/resolve"
	"equity_research/pkg/core/risk"
	"equity_research/pkg/core/valuation"
	"equity_research/pkg/models"
)

// Data is everything the renderer needs for one report. Nil or zero sections
// are skipped, so a partially failed pipeline still renders what it has.
type Data struct {
	Profile     models.CompanyProfile
	GeneratedAt time.Time

	Resolution map[models.StatementKind]resolve.Validation
	Trends     *ratios.RatioTrends
	Beta       *risk.BetaResult
	CAPM       *capital.CAPMResult
	WACC       *capital.WACCResult
	Valuations *valuation.Summary

	Headlines   []models.Headline
	NewsSummary string
	Narrative   string
}

// Render builds the full Markdown report.
func Render(d Data) string {
	var b strings.Builder

	name := d.Profile.Name
	if name == "" {
		name = d.Profile.Ticker
	}
	fmt.Fprintf(&b, "# Equity Research Report: %s (%s)\n\n", name, d.Profile.Ticker)
	fmt.Fprintf(&b, "*Generated %s*\n\n", d.GeneratedAt.Format("2006-01-02"))

	renderProfile(&b, d.Profile)
	renderResolution(&b, d.Resolution)
	renderRatios(&b, d.Trends)
	renderRisk(&b, d.Beta)
	renderCapital(&b, d.CAPM, d.WACC)
	renderValuations(&b, d.Valuations)
	renderHeadlines(&b, d.Headlines, d.NewsSummary)

	if d.Narrative != "" {
		b.WriteString("## Analyst Commentary\n\n")
		b.WriteString(d.Narrative)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("*This report is generated from public data for research purposes and is not investment advice.*\n")
	return b.String()
}

func renderProfile(b *strings.Builder, p models.CompanyProfile) {
	b.WriteString("## Company Overview\n\n")
	if p.Sector != "" {
		fmt.Fprintf(b, "- Sector: %s\n", p.Sector)
	}
	if p.CurrentPrice != nil {
		fmt.Fprintf(b, "- Current price: %.2f\n", *p.CurrentPrice)
	}
	if p.SharesOutstanding != nil {
		fmt.Fprintf(b, "- Shares outstanding: %s\n", humanize(*p.SharesOutstanding))
	}
	if p.MarketCap != nil {
		fmt.Fprintf(b, "- Market cap: %s\n", humanize(*p.MarketCap))
	}
	b.WriteString("\n")
}

func renderResolution(b *strings.Builder, validations map[models.StatementKind]resolve.Validation) {
	if len(validations) == 0 {
		return
	}
	b.WriteString("## Data Coverage\n\n")
	for _, kind := range []models.StatementKind{
		models.IncomeStatement, models.BalanceSheet, models.CashFlowStatement,
	} {
		v, ok := validations[kind]
		if !ok {
			continue
		}
		status := "complete"
		if !v.OK {
			status = fmt.Sprintf("missing: %s", strings.Join(v.Missing, ", "))
		}
		fmt.Fprintf(b, "- %s statement: %d/%d critical fields (%s)\n",
			kind, len(v.Present), len(v.Present)+len(v.Missing), status)
	}
	b.WriteString("\n")
}

func renderRatios(b *strings.Builder, trends *ratios.RatioTrends) {
	if trends == nil || trends.Periods == 0 {
		return
	}
	b.WriteString("## Financial Ratios\n\n")

	header := "| Ratio |"
	divider := "|---|"
	for i := 0; i < trends.Periods; i++ {
		if i == 0 {
			header += " Latest |"
		} else {
			header += fmt.Sprintf(" T-%d |", i)
		}
		divider += "---|"
	}
	b.WriteString(header + "\n" + divider + "\n")

	rows := []struct {
		label string
		pick  func(ratios.RatioSet) *float64
		pct   bool
	}{
		{"Current ratio", func(s ratios.RatioSet) *float64 { return s.Liquidity.CurrentRatio }, false},
		{"Quick ratio", func(s ratios.RatioSet) *float64 { return s.Liquidity.QuickRatio }, false},
		{"Asset turnover", func(s ratios.RatioSet) *float64 { return s.Efficiency.AssetTurnover }, false},
		{"Debt / equity", func(s ratios.RatioSet) *float64 { return s.Solvency.DebtToEquity }, false},
		{"Interest coverage", func(s ratios.RatioSet) *float64 { return s.Solvency.InterestCoverage }, false},
		{"Gross margin", func(s ratios.RatioSet) *float64 { return s.Profitability.GrossMargin }, true},
		{"Operating margin", func(s ratios.RatioSet) *float64 { return s.Profitability.OperatingMargin }, true},
		{"Net margin", func(s ratios.RatioSet) *float64 { return s.Profitability.NetMargin }, true},
		{"Return on equity", func(s ratios.RatioSet) *float64 { return s.Profitability.ReturnOnEquity }, true},
		{"ROIC", func(s ratios.RatioSet) *float64 { return s.Profitability.ROIC }, true},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "| %s |", row.label)
		for _, set := range trends.Sets {
			v := row.pick(set)
			if v == nil {
				b.WriteString(" n/a |")
			} else if row.pct {
				fmt.Fprintf(b, " %.1f%% |", *v*100)
			} else {
				fmt.Fprintf(b, " %.2f |", *v)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func renderRisk(b *strings.Builder, beta *risk.BetaResult) {
	if beta == nil {
		return
	}
	b.WriteString("## Risk Profile\n\n")
	fmt.Fprintf(b, "- Beta: %.3f (%s)\n", beta.Beta, beta.Classification)
	fmt.Fprintf(b, "- R-squared: %.3f, correlation: %.3f\n", beta.RSquared, beta.Correlation)
	fmt.Fprintf(b, "- Annualized volatility: stock %.1f%%, market %.1f%%\n",
		beta.StockVolatility*100, beta.MarketVolatility*100)
	fmt.Fprintf(b, "- Sample: %d daily observations", beta.SampleSize)
	if beta.LowConfidence {
		b.WriteString(" (low confidence)")
	}
	b.WriteString("\n\n")
}

func renderCapital(b *strings.Builder, capm *capital.CAPMResult, wacc *capital.WACCResult) {
	if capm == nil && wacc == nil {
		return
	}
	b.WriteString("## Cost of Capital\n\n")
	if capm != nil {
		fmt.Fprintf(b, "- Cost of equity (CAPM): %.2f%% = %.2f%% + %.3f x %.2f%%\n",
			capm.CostOfEquity*100, capm.RiskFreeRate*100, capm.Beta, capm.MarketRiskPremium*100)
	}
	if wacc != nil {
		fmt.Fprintf(b, "- WACC: %.2f%% (equity weight %.0f%%, debt weight %.0f%%, after-tax cost of debt %.2f%%)\n",
			wacc.WACC*100, wacc.WeightEquity*100, wacc.WeightDebt*100, wacc.CostOfDebtAfterTax*100)
	}
	b.WriteString("\n")
}

func renderValuations(b *strings.Builder, summary *valuation.Summary) {
	if summary == nil {
		return
	}
	b.WriteString("## Valuation\n\n")
	for _, r := range summary.Results() {
		fmt.Fprintf(b, "### %s\n\n", r.Method)
		if !r.Applicable {
			fmt.Fprintf(b, "Not applicable: %s\n\n", r.Reason)
			continue
		}
		if r.GrowthRate != nil {
			fmt.Fprintf(b, "- Growth rate: %.2f%%\n", *r.GrowthRate*100)
		}
		if r.DiscountRate != nil {
			fmt.Fprintf(b, "- Discount rate: %.2f%%\n", *r.DiscountRate*100)
		}
		if r.FairValue != nil {
			fmt.Fprintf(b, "- Fair value per share: %.2f\n", *r.FairValue)
		}
		if r.EquityValue != nil {
			fmt.Fprintf(b, "- Equity value: %s\n", humanize(*r.EquityValue))
		}
		if r.FairValuePerShare != nil {
			fmt.Fprintf(b, "- Fair value per share: %.2f\n", *r.FairValuePerShare)
		}
		if r.UpsideDownside != nil {
			fmt.Fprintf(b, "- Upside/downside: %+.1f%%\n", *r.UpsideDownside*100)
		}
		if r.Recommendation != "" {
			fmt.Fprintf(b, "- **%s**\n", r.Recommendation)
		}
		b.WriteString("\n")
	}
}

func renderHeadlines(b *strings.Builder, headlines []models.Headline, summary string) {
	if len(headlines) == 0 {
		return
	}
	b.WriteString("## Recent News\n\n")
	if summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	for _, h := range headlines {
		if h.URL != "" {
			fmt.Fprintf(b, "- [%s](%s) (%s)\n", h.Title, h.URL, h.Source)
		} else {
			fmt.Fprintf(b, "- %s (%s)\n", h.Title, h.Source)
		}
	}
	b.WriteString("\n")
}

// humanize formats a large value with a T/B/M suffix.
func humanize(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	}
	return fmt.Sprintf("%.2f", v)
}
