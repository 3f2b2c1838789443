package risk

import (
	"math"
	"testing"
	"time"

	"equity_research/pkg/models"
)

func returnSeries(values []float64) models.ReturnSeries {
	var out models.ReturnSeries
	for i, v := range values {
		out = append(out, models.ReturnPoint{
			Date:  time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Value: v,
		})
	}
	return out
}

var marketValues = []float64{0.010, -0.020, 0.015, 0.030, -0.010, 0.005, 0.020, -0.005, 0.012, -0.018}

func TestComputeBetaPerfectLinearRelationship(t *testing.T) {
	market := returnSeries(marketValues)
	stockValues := make([]float64, len(marketValues))
	for i, m := range marketValues {
		stockValues[i] = 2*m + 0.001
	}
	stock := returnSeries(stockValues)

	res := ComputeBeta(stock, market)

	if math.Abs(res.Beta-2.0) > 1e-9 {
		t.Errorf("beta: expected 2.0, got %f", res.Beta)
	}
	if math.Abs(res.Alpha-0.001) > 1e-9 {
		t.Errorf("alpha: expected 0.001, got %f", res.Alpha)
	}
	if math.Abs(res.RSquared-1.0) > 1e-9 {
		t.Errorf("r-squared: expected 1.0, got %f", res.RSquared)
	}
	if math.Abs(res.Correlation-1.0) > 1e-9 {
		t.Errorf("correlation: expected 1.0, got %f", res.Correlation)
	}
	// Zero residuals collapse the slope standard error and p-value, up to
	// floating point noise.
	if math.Abs(res.StdError) > 1e-9 || math.Abs(res.PValue) > 1e-9 {
		t.Errorf("expected zero std error and p-value, got %g / %g", res.StdError, res.PValue)
	}
	if res.SampleSize != 10 {
		t.Errorf("sample size: expected 10, got %d", res.SampleSize)
	}
	if !res.LowConfidence {
		t.Error("10 observations should flag low confidence")
	}
	if res.Classification != "Highly Aggressive" {
		t.Errorf("classification: expected Highly Aggressive, got %q", res.Classification)
	}
	// Perfect 2x scaling doubles the annualized volatility.
	if math.Abs(res.StockVolatility-2*res.MarketVolatility) > 1e-9 {
		t.Errorf("stock vol %f should be twice market vol %f",
			res.StockVolatility, res.MarketVolatility)
	}
}

func TestComputeBetaExactlyOneIsModeratelyAggressive(t *testing.T) {
	market := returnSeries(marketValues)
	res := ComputeBeta(market, market)

	if math.Abs(res.Beta-1.0) > 1e-9 {
		t.Errorf("beta: expected 1.0, got %f", res.Beta)
	}
	// Boundary is exclusive: 1.0 does not qualify as Aggressive.
	if res.Classification != "Moderately Aggressive" {
		t.Errorf("classification: expected Moderately Aggressive, got %q", res.Classification)
	}
}

func TestComputeBetaConstantMarket(t *testing.T) {
	market := returnSeries([]float64{0.01, 0.01, 0.01, 0.01})
	stock := returnSeries([]float64{0.02, -0.01, 0.03, 0.00})

	res := ComputeBeta(stock, market)
	if res.Beta != 0 {
		t.Errorf("constant market should yield zero beta, got %f", res.Beta)
	}
	if res.Classification != "Highly Defensive" {
		t.Errorf("classification: expected Highly Defensive, got %q", res.Classification)
	}
}

func TestAlignReturnsInnerJoin(t *testing.T) {
	stock := returnSeries([]float64{0.01, 0.02, 0.03})
	// Market misses the middle date.
	market := models.ReturnSeries{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 0.005},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Value: 0.015},
	}

	s, m := AlignReturns(stock, market)
	if len(s) != 2 || len(m) != 2 {
		t.Fatalf("expected 2 aligned points, got %d/%d", len(s), len(m))
	}
	if s[0] != 0.01 || s[1] != 0.03 {
		t.Errorf("aligned stock values wrong: %v", s)
	}
	if m[0] != 0.005 || m[1] != 0.015 {
		t.Errorf("aligned market values wrong: %v", m)
	}
}

func TestTwoSidedTPValue(t *testing.T) {
	// t = 0 carries no evidence against the null.
	if p := twoSidedTPValue(0, 10); math.Abs(p-1.0) > 1e-9 {
		t.Errorf("t=0: expected p=1, got %f", p)
	}
	// With df=1 the t distribution is Cauchy: P(|T| >= 1) = 0.5 exactly.
	if p := twoSidedTPValue(1, 1); math.Abs(p-0.5) > 1e-6 {
		t.Errorf("t=1 df=1: expected p=0.5, got %f", p)
	}
	// Large samples approach the normal tail: P(|Z| >= 1.96) ~ 0.05.
	if p := twoSidedTPValue(1.96, 10000); math.Abs(p-0.05) > 0.001 {
		t.Errorf("t=1.96 df=10000: expected ~0.05, got %f", p)
	}
}
