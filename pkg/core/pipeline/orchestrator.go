// Package pipeline wires the full research run: market data collection,
// statement resolution, ratio and risk analysis, cost of capital, valuation,
// news, narrative, rendering, and storage.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"equity_research/pkg/config"
	"equity_research/pkg/core/capital"
	"equity_research/pkg/core/marketdata"
	"equity_research/pkg/core/news"
	"equity_research/pkg/core/ratios"
	"equity_research/pkg/core/report"
	"equity_research/pkg/core/resolve"
	"equity_research/pkg/core/risk"
	"equity_research/pkg/core/store"
	"equity_research/pkg/core/valuation"
	"equity_research/pkg/models"
)

const (
	priceHistoryYears    = 2
	dividendHistoryYears = 6
	newsMonths           = 3
	maxHeadlines         = 10
	// Assumed when the regression cannot run; the market average by definition.
	fallbackBeta = 1.0
	// Assumed pre-tax cost of debt when it cannot be derived from statements.
	fallbackCostOfDebt = 0.05
)

// NewsSource feeds the report's headline section.
type NewsSource interface {
	FetchAll(ctx context.Context, companyName, ticker string, months int) ([]news.Article, error)
}

// Narrator writes the commentary section.
type Narrator interface {
	Write(ctx context.Context, d report.Data) (string, error)
}

// Summarizer condenses scraped headlines into the recent-developments blurb.
type Summarizer interface {
	Summarize(ctx context.Context, companyName string, headlines []string) (string, error)
}

// Orchestrator runs the end-to-end report generation. Market data is the
// only hard dependency: news, summarizer, narrator, and repo may be nil and
// their stages are skipped.
type Orchestrator struct {
	market     marketdata.Provider
	news       NewsSource
	summarizer Summarizer
	narrator   Narrator
	repo       store.ReportRepository
	settings   config.Settings
}

// NewOrchestrator assembles an orchestrator from its dependencies.
func NewOrchestrator(market marketdata.Provider, newsSource NewsSource, summarizer Summarizer,
	narrator Narrator, repo store.ReportRepository, settings config.Settings) *Orchestrator {
	return &Orchestrator{
		market:     market,
		news:       newsSource,
		summarizer: summarizer,
		narrator:   narrator,
		repo:       repo,
		settings:   settings,
	}
}

// Run generates the full report for a ticker. Statement data is required;
// every later stage degrades gracefully, so a company without price history
// or dividends still gets a report covering what could be computed.
func (o *Orchestrator) Run(ctx context.Context, ticker string) (*models.Report, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	fmt.Printf("Starting research pipeline for %s...\n", ticker)
	start := time.Now()

	// 1. Collection
	profile, err := o.market.Profile(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed for %s: %w", ticker, err)
	}

	income, err := o.market.Statement(ctx, ticker, models.IncomeStatement)
	if err != nil {
		return nil, fmt.Errorf("income statement fetch failed: %w", err)
	}
	balance, err := o.market.Statement(ctx, ticker, models.BalanceSheet)
	if err != nil {
		return nil, fmt.Errorf("balance sheet fetch failed: %w", err)
	}
	cashflow, err := o.market.Statement(ctx, ticker, models.CashFlowStatement)
	if err != nil {
		fmt.Printf("Warning: cash flow fetch failed: %v. DCF models will be skipped.\n", err)
		cashflow = nil
	}

	// 2. Resolution
	data := report.Data{Profile: profile, GeneratedAt: time.Now()}
	data.Resolution = make(map[models.StatementKind]resolve.Validation)

	incomeRes := resolve.Resolve(income, models.IncomeStatement)
	balanceRes := resolve.Resolve(balance, models.BalanceSheet)
	data.Resolution[models.IncomeStatement] = resolve.ValidateCritical(incomeRes.Table, models.IncomeStatement)
	data.Resolution[models.BalanceSheet] = resolve.ValidateCritical(balanceRes.Table, models.BalanceSheet)
	logResolution(models.IncomeStatement, incomeRes)
	logResolution(models.BalanceSheet, balanceRes)

	var cashflowTable *models.StatementTable
	if cashflow != nil {
		cashflowRes := resolve.Resolve(cashflow, models.CashFlowStatement)
		data.Resolution[models.CashFlowStatement] = resolve.ValidateCritical(cashflowRes.Table, models.CashFlowStatement)
		logResolution(models.CashFlowStatement, cashflowRes)
		cashflowTable = cashflowRes.Table
	}

	// 3. Ratio trends
	trends := ratios.ComputeTrends(incomeRes.Table, balanceRes.Table, o.settings.TrendPeriods)
	data.Trends = &trends
	fmt.Printf("Computed ratios for %d periods\n", trends.Periods)

	// 4. Risk
	beta := fallbackBeta
	stockPrices, err := o.market.Prices(ctx, ticker, priceHistoryYears)
	if err != nil {
		fmt.Printf("Warning: price history fetch failed: %v. Assuming beta %.1f.\n", err, fallbackBeta)
	} else {
		marketPrices, err := o.market.Prices(ctx, o.settings.BenchmarkName, priceHistoryYears)
		if err != nil {
			fmt.Printf("Warning: benchmark fetch failed: %v. Assuming beta %.1f.\n", err, fallbackBeta)
		} else {
			betaResult := risk.ComputeBeta(stockPrices.Returns(), marketPrices.Returns())
			data.Beta = &betaResult
			beta = betaResult.Beta
			fmt.Printf("Beta %.3f (%s) over %d observations\n",
				betaResult.Beta, betaResult.Classification, betaResult.SampleSize)
		}
	}

	// 5. Cost of capital
	capm := capital.CAPM(beta, o.settings.RiskFreeRate, o.settings.MarketReturn)
	data.CAPM = &capm

	equityValue, debtValue := capitalStructure(profile, balanceRes.Table)
	costOfDebt := estimateCostOfDebt(incomeRes.Table, balanceRes.Table)
	wacc := capital.WACC(capm.CostOfEquity, costOfDebt, equityValue, debtValue, o.settings.TaxRate)
	data.WACC = &wacc
	fmt.Printf("Cost of equity %.2f%%, WACC %.2f%%\n", capm.CostOfEquity*100, wacc.WACC*100)

	// 6. Valuation
	dividends, err := o.market.Dividends(ctx, ticker, dividendHistoryYears)
	if err != nil {
		fmt.Printf("Warning: dividend history fetch failed: %v. DDM will report no dividends.\n", err)
		dividends = nil
	}

	terminalGrowth := o.settings.TerminalGrowth
	summary := valuation.RunAll(valuation.Inputs{
		Dividends:         dividends,
		CashFlow:          cashflowTable,
		Balance:           balanceRes.Table,
		CostOfEquity:      capm.CostOfEquity,
		WACC:              wacc.WACC,
		ForecastYears:     o.settings.ForecastYears,
		TerminalGrowth:    &terminalGrowth,
		SharesOutstanding: profile.SharesOutstanding,
		CurrentPrice:      profile.CurrentPrice,
	})
	data.Valuations = &summary
	fmt.Printf("Valuation: %d of 3 models applicable\n", summary.Applicable())

	// 7. News
	if o.news != nil {
		articles, err := o.news.FetchAll(ctx, profile.Name, ticker, newsMonths)
		if err != nil {
			fmt.Printf("Warning: news fetch failed: %v. Skipping headlines.\n", err)
		} else {
			data.Headlines = news.Headlines(articles, maxHeadlines)
			fmt.Printf("Collected %d headlines\n", len(data.Headlines))
		}
	}
	if o.summarizer != nil && len(data.Headlines) > 0 {
		titles := make([]string, len(data.Headlines))
		for i, h := range data.Headlines {
			titles[i] = h.Title
		}
		summary, err := o.summarizer.Summarize(ctx, profile.Name, titles)
		if err != nil {
			fmt.Printf("Warning: news summary failed: %v. Listing headlines only.\n", err)
		} else {
			data.NewsSummary = summary
		}
	}

	// 8. Narrative
	if o.narrator != nil {
		narrative, err := o.narrator.Write(ctx, data)
		if err != nil {
			fmt.Printf("Warning: narrative generation failed: %v. Report will omit commentary.\n", err)
		} else {
			data.Narrative = narrative
		}
	}

	// 9. Render and persist
	markdown := report.Render(data)
	result := &models.Report{
		RunID:       uuid.New().String(),
		Profile:     profile,
		GeneratedAt: data.GeneratedAt,
		Resolution:  toAnyMap(data.Resolution),
		Ratios:      data.Trends,
		Capital:     map[string]any{"capm": data.CAPM, "wacc": data.WACC},
		Valuations:  data.Valuations,
		Headlines:   data.Headlines,
		NewsSummary: data.NewsSummary,
		Narrative:   data.Narrative,
		Markdown:    markdown,
	}
	if data.Beta != nil {
		result.Risk = data.Beta
	}

	if o.repo != nil {
		if err := o.repo.Save(ctx, result); err != nil {
			return nil, fmt.Errorf("storage failed: %w", err)
		}
		fmt.Printf("Report %s saved\n", result.RunID)
	}

	fmt.Printf("Pipeline completed for %s in %v\n", ticker, time.Since(start))
	return result, nil
}

func logResolution(kind models.StatementKind, res resolve.Result) {
	fmt.Printf("Resolved %s statement: %d mapped, %d unmapped, %d ambiguous\n",
		kind, res.Mapped, len(res.Unmapped), len(res.Ambiguous))
	if len(res.Ambiguous) > 0 {
		fmt.Printf("  Ambiguous fields kept verbatim: %s\n", strings.Join(res.Ambiguous, ", "))
	}
}

// capitalStructure derives market values for the WACC weights: equity from
// market cap when available (book equity otherwise), debt at book value.
func capitalStructure(profile models.CompanyProfile, balance *models.StatementTable) (equity, debt float64) {
	if profile.MarketCap != nil {
		equity = *profile.MarketCap
	} else if v := balance.Value("Stockholders Equity", 0); v != nil {
		equity = *v
	}
	if v := balance.Value("Total Debt", 0); v != nil {
		debt = *v
	} else {
		if lt := balance.Value("Long Term Debt", 0); lt != nil {
			debt += *lt
		}
		if st := balance.Value("Current Debt", 0); st != nil {
			debt += *st
		}
	}
	return equity, debt
}

// estimateCostOfDebt approximates the pre-tax cost of debt as interest
// expense over total debt, falling back to a 5% assumption.
func estimateCostOfDebt(income, balance *models.StatementTable) float64 {
	interest := income.Value("Interest Expense", 0)
	_, debt := capitalStructure(models.CompanyProfile{}, balance)
	if interest == nil || debt == 0 {
		return fallbackCostOfDebt
	}
	cost := *interest / debt
	if cost < 0 {
		cost = -cost
	}
	// Reject implausible estimates from mismatched units or one-off items.
	if cost <= 0 || cost > 0.25 {
		return fallbackCostOfDebt
	}
	return cost
}

func toAnyMap(in map[models.StatementKind]resolve.Validation) map[models.StatementKind]any {
	out := make(map[models.StatementKind]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
