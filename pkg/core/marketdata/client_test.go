package marketdata

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"equity_research/pkg/models"
)

func TestStatementFetchAndConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/statements/AAPL/income" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"periods": ["2022", "2023"],
			"rows": {
				"Revenue": [380000, 391000],
				"Net Income": [95000, null]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	table, err := client.Statement(context.Background(), "AAPL", models.IncomeStatement)
	if err != nil {
		t.Fatal(err)
	}

	if table.NumPeriods() != 2 {
		t.Fatalf("expected 2 periods, got %d", table.NumPeriods())
	}
	if v := table.Value("Revenue", 0); v == nil || *v != 391000 {
		t.Errorf("latest revenue: expected 391000, got %v", v)
	}
	// JSON null must arrive as a missing cell.
	if v := table.Value("Net Income", 0); v != nil {
		t.Errorf("null cell should be nil, got %f", *v)
	}
	if v := table.Value("Net Income", 1); v == nil || *v != 95000 {
		t.Errorf("prior net income: expected 95000, got %v", v)
	}
}

func TestPricesParsesDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date": "2024-01-02", "close": 100},
			{"date": "2024-01-03", "close": 110}
		]`))
	}))
	defer srv.Close()

	series, err := NewClient(srv.URL).Prices(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", series.Len())
	}
	returns := series.Returns()
	if len(returns) != 1 || math.Abs(returns[0].Value-0.10) > 1e-9 {
		t.Errorf("returns wrong: %v", returns)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ticker": "MSFT", "name": "Microsoft", "price": 400, "shares_outstanding": 7400}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.backoff = 0
	profile, err := client.Profile(context.Background(), "MSFT")
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if profile.MarketCap == nil || *profile.MarketCap != 400*7400 {
		t.Errorf("market cap not derived: %v", profile.MarketCap)
	}
}

func TestGetJSONClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unknown ticker", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Profile(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("4xx must not retry, got %d attempts", calls.Load())
	}
}

func TestDividendsEmptyHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	series, err := NewClient(srv.URL).Dividends(context.Background(), "GOOG", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 0 {
		t.Errorf("expected empty series, got %d", len(series))
	}
}
