package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"equity_research/pkg/config"
	"equity_research/pkg/core/news"
	"equity_research/pkg/models"
)

type MockProvider struct {
	ProfileFunc   func(ctx context.Context, ticker string) (models.CompanyProfile, error)
	StatementFunc func(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error)
	PricesFunc    func(ctx context.Context, ticker string, years int) (*models.PriceSeries, error)
	DividendsFunc func(ctx context.Context, ticker string, years int) (models.DividendSeries, error)
}

func (m *MockProvider) Profile(ctx context.Context, ticker string) (models.CompanyProfile, error) {
	return m.ProfileFunc(ctx, ticker)
}

func (m *MockProvider) Statement(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error) {
	return m.StatementFunc(ctx, ticker, kind)
}

func (m *MockProvider) Prices(ctx context.Context, ticker string, years int) (*models.PriceSeries, error) {
	return m.PricesFunc(ctx, ticker, years)
}

func (m *MockProvider) Dividends(ctx context.Context, ticker string, years int) (models.DividendSeries, error) {
	return m.DividendsFunc(ctx, ticker, years)
}

type MockRepo struct {
	SaveFunc func(ctx context.Context, report *models.Report) error
	saved    *models.Report
}

func (m *MockRepo) Save(ctx context.Context, report *models.Report) error {
	m.saved = report
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, report)
	}
	return nil
}

func (m *MockRepo) Load(ctx context.Context, ticker string) (*models.Report, error) {
	return m.saved, nil
}

type MockNews struct {
	FetchAllFunc func(ctx context.Context, companyName, ticker string, months int) ([]news.Article, error)
}

func (m *MockNews) FetchAll(ctx context.Context, companyName, ticker string, months int) ([]news.Article, error) {
	return m.FetchAllFunc(ctx, companyName, ticker, months)
}

func testProfile() models.CompanyProfile {
	return models.CompanyProfile{
		Ticker:            "ACME",
		Name:              "Acme Corp",
		Sector:            "Industrials",
		CurrentPrice:      models.Float(50),
		SharesOutstanding: models.Float(100e6),
		MarketCap:         models.Float(5e9),
	}
}

func testStatement(kind models.StatementKind) *models.StatementTable {
	periods := []string{"2021-12-31", "2022-12-31", "2023-12-31"}
	t := models.NewStatementTable(kind, periods)
	row := func(a, b, c float64) []*float64 {
		return []*float64{models.Float(a), models.Float(b), models.Float(c)}
	}
	switch kind {
	case models.IncomeStatement:
		t.AddRow("Total Revenue", row(900e6, 950e6, 1000e6))
		t.AddRow("Gross Profit", row(360e6, 380e6, 400e6))
		t.AddRow("Operating Income", row(170e6, 185e6, 200e6))
		t.AddRow("Net Income", row(100e6, 110e6, 120e6))
		t.AddRow("Interest Expense", row(-18e6, -19e6, -20e6))
	case models.BalanceSheet:
		t.AddRow("Total Assets", row(1800e6, 1900e6, 2000e6))
		t.AddRow("Current Assets", row(550e6, 580e6, 600e6))
		t.AddRow("Current Liabilities", row(280e6, 290e6, 300e6))
		t.AddRow("Stockholders Equity", row(720e6, 760e6, 800e6))
		t.AddRow("Total Debt", row(420e6, 410e6, 400e6))
		t.AddRow("Cash And Cash Equivalents", row(130e6, 140e6, 150e6))
	case models.CashFlowStatement:
		t.AddRow("Operating Cash Flow", row(150e6, 165e6, 180e6))
		t.AddRow("Capital Expenditure", row(-50e6, -55e6, -60e6))
		t.AddRow("Financing Cash Flow", row(-30e6, -35e6, -40e6))
	}
	return t
}

// testPrices generates a drifting close series where the stock moves twice
// as hard as the benchmark, so the regression has a clean slope to find.
func testPrices(ticker string) *models.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, 0, 60)
	stockClose, marketClose := 50.0, 4000.0
	for i := 0; i < 60; i++ {
		marketMove := 0.001
		if i%3 == 0 {
			marketMove = -0.002
		}
		marketClose *= 1 + marketMove
		stockClose *= 1 + 2*marketMove
		close := marketClose
		if ticker == "ACME" {
			close = stockClose
		}
		points = append(points, models.PricePoint{Date: start.AddDate(0, 0, i), Close: close})
	}
	series, err := models.NewPriceSeries(points)
	if err != nil {
		panic(err)
	}
	return series
}

func testDividends() models.DividendSeries {
	return models.DividendSeries{
		{Date: time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), Amount: 1.00},
		{Date: time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC), Amount: 1.10},
		{Date: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), Amount: 1.21},
	}
}

func workingProvider() *MockProvider {
	return &MockProvider{
		ProfileFunc: func(ctx context.Context, ticker string) (models.CompanyProfile, error) {
			return testProfile(), nil
		},
		StatementFunc: func(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error) {
			return testStatement(kind), nil
		},
		PricesFunc: func(ctx context.Context, ticker string, years int) (*models.PriceSeries, error) {
			return testPrices(ticker), nil
		},
		DividendsFunc: func(ctx context.Context, ticker string, years int) (models.DividendSeries, error) {
			return testDividends(), nil
		},
	}
}

func workingNews() *MockNews {
	return &MockNews{
		FetchAllFunc: func(ctx context.Context, companyName, ticker string, months int) ([]news.Article, error) {
			return []news.Article{
				{Title: "Acme wins defense contract", Link: "https://example.com/1", Source: "Wire"},
			}, nil
		},
	}
}

func TestOrchestratorRun(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(p *MockProvider, n *MockNews, r *MockRepo)
		expectedError string
	}{
		{
			name:  "full pipeline succeeds",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {},
		},
		{
			name: "profile failure aborts",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {
				p.ProfileFunc = func(ctx context.Context, ticker string) (models.CompanyProfile, error) {
					return models.CompanyProfile{}, fmt.Errorf("vendor down")
				}
			},
			expectedError: "profile fetch failed",
		},
		{
			name: "income statement failure aborts",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {
				p.StatementFunc = func(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error) {
					if kind == models.IncomeStatement {
						return nil, fmt.Errorf("not found")
					}
					return testStatement(kind), nil
				}
			},
			expectedError: "income statement fetch failed",
		},
		{
			name: "storage failure aborts",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {
				r.SaveFunc = func(ctx context.Context, report *models.Report) error {
					return fmt.Errorf("connection refused")
				}
			},
			expectedError: "storage failed",
		},
		{
			name: "news failure is tolerated",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {
				n.FetchAllFunc = func(ctx context.Context, companyName, ticker string, months int) ([]news.Article, error) {
					return nil, fmt.Errorf("feed unreachable")
				}
			},
		},
		{
			name: "price failure is tolerated",
			setup: func(p *MockProvider, n *MockNews, r *MockRepo) {
				p.PricesFunc = func(ctx context.Context, ticker string, years int) (*models.PriceSeries, error) {
					return nil, fmt.Errorf("no history")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := workingProvider()
			newsSource := workingNews()
			repo := &MockRepo{}
			tt.setup(provider, newsSource, repo)

			orch := NewOrchestrator(provider, newsSource, nil, nil, repo, config.Defaults())
			result, err := orch.Run(context.Background(), "acme")

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error containing %q, got %q", tt.expectedError, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.RunID == "" {
				t.Error("report should carry a run id")
			}
			if result.Profile.Ticker != "ACME" {
				t.Errorf("profile ticker = %q", result.Profile.Ticker)
			}
			if !strings.Contains(result.Markdown, "Acme Corp (ACME)") {
				t.Error("markdown should contain the report title")
			}
			if repo.saved == nil {
				t.Error("report was not persisted")
			}
		})
	}
}

func TestOrchestratorBetaAndValuations(t *testing.T) {
	orch := NewOrchestrator(workingProvider(), workingNews(), nil, nil, &MockRepo{}, config.Defaults())
	result, err := orch.Run(context.Background(), "ACME")
	if err != nil {
		t.Fatal(err)
	}

	if result.Risk == nil {
		t.Error("beta should be computed when both price series are available")
	}
	if result.Valuations == nil {
		t.Fatal("valuation summary missing")
	}
	if len(result.Headlines) != 1 {
		t.Errorf("expected 1 headline, got %d", len(result.Headlines))
	}
	if !strings.Contains(result.Markdown, "## Valuation") {
		t.Error("markdown should contain the valuation section")
	}
}

func TestEstimateCostOfDebt(t *testing.T) {
	income := testStatement(models.IncomeStatement)
	balance := testStatement(models.BalanceSheet)

	// |-20M| / 400M = 5%.
	got := estimateCostOfDebt(income, balance)
	if diff := got - 0.05; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("cost of debt = %v, want 0.05", got)
	}

	// No interest expense: fall back.
	bare := models.NewStatementTable(models.IncomeStatement, []string{"2023-12-31"})
	if got := estimateCostOfDebt(bare, balance); got != fallbackCostOfDebt {
		t.Errorf("fallback cost of debt = %v", got)
	}
}
