package models

import (
	"math"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPriceSeriesRequiresStrictOrder(t *testing.T) {
	_, err := NewPriceSeries([]PricePoint{
		{Date: day(1), Close: 100},
		{Date: day(1), Close: 101},
	})
	if err == nil {
		t.Error("duplicate dates should be rejected")
	}

	_, err = NewPriceSeries([]PricePoint{
		{Date: day(2), Close: 100},
		{Date: day(1), Close: 101},
	})
	if err == nil {
		t.Error("descending dates should be rejected")
	}
}

func TestReturnsSimpleDaily(t *testing.T) {
	s, err := NewPriceSeries([]PricePoint{
		{Date: day(1), Close: 100},
		{Date: day(2), Close: 110},
		{Date: day(3), Close: 99},
	})
	if err != nil {
		t.Fatal(err)
	}

	returns := s.Returns()
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0].Value-0.10) > 1e-12 {
		t.Errorf("day 2 return: expected 0.10, got %f", returns[0].Value)
	}
	if math.Abs(returns[1].Value-(-0.10)) > 1e-12 {
		t.Errorf("day 3 return: expected -0.10, got %f", returns[1].Value)
	}
}

func TestReturnsSkipsNonPositivePriorClose(t *testing.T) {
	s, err := NewPriceSeries([]PricePoint{
		{Date: day(1), Close: 0},
		{Date: day(2), Close: 50},
		{Date: day(3), Close: 55},
	})
	if err != nil {
		t.Fatal(err)
	}

	returns := s.Returns()
	if len(returns) != 1 {
		t.Fatalf("expected 1 return, got %d", len(returns))
	}
	if math.Abs(returns[0].Value-0.10) > 1e-12 {
		t.Errorf("expected 0.10, got %f", returns[0].Value)
	}
}

func TestDividendAnnualTotals(t *testing.T) {
	d := DividendSeries{
		{Date: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 0.5},
		{Date: time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), Amount: 0.5},
		{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 0.6},
	}

	totals := d.AnnualTotals()
	if len(totals) != 2 {
		t.Fatalf("expected 2 annual totals, got %d", len(totals))
	}
	if totals[0].Year != 2022 || totals[0].Total != 1.0 {
		t.Errorf("2022 total: expected 1.0, got %+v", totals[0])
	}
	if totals[1].Year != 2023 || totals[1].Total != 0.6 {
		t.Errorf("2023 total: expected 0.6, got %+v", totals[1])
	}

	latest, ok := d.Latest()
	if !ok || latest.Amount != 0.6 {
		t.Errorf("latest payment: expected 0.6, got %+v", latest)
	}
}
