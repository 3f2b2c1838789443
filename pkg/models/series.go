package models

import (
	"fmt"
	"sort"
	"time"
)

// PricePoint is one trading day's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered daily close series, strictly increasing by date.
type PriceSeries struct {
	points []PricePoint
}

// NewPriceSeries validates and wraps a close series. Points must be sorted
// ascending with no duplicate dates.
func NewPriceSeries(points []PricePoint) (*PriceSeries, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			return nil, fmt.Errorf("price series not strictly increasing at index %d (%s)",
				i, points[i].Date.Format("2006-01-02"))
		}
	}
	p := make([]PricePoint, len(points))
	copy(p, points)
	return &PriceSeries{points: p}, nil
}

// Len returns the number of trading days.
func (s *PriceSeries) Len() int { return len(s.points) }

// Points returns the underlying series.
func (s *PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// Latest returns the most recent close, or false when the series is empty.
func (s *PriceSeries) Latest() (float64, bool) {
	if len(s.points) == 0 {
		return 0, false
	}
	return s.points[len(s.points)-1].Close, true
}

// Returns derives the simple daily return series: (P_t / P_{t-1}) - 1.
// Days with a non-positive prior close are skipped.
func (s *PriceSeries) Returns() ReturnSeries {
	var out ReturnSeries
	for i := 1; i < len(s.points); i++ {
		prev := s.points[i-1].Close
		if prev <= 0 {
			continue
		}
		out = append(out, ReturnPoint{
			Date:  s.points[i].Date,
			Value: s.points[i].Close/prev - 1,
		})
	}
	return out
}

// ReturnPoint is one day's simple return.
type ReturnPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ReturnSeries is an ordered daily return series.
type ReturnSeries []ReturnPoint

// DividendPoint is one cash dividend payment.
type DividendPoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendSeries is a dividend payment history, not necessarily periodic.
type DividendSeries []DividendPoint

// Latest returns the most recent dividend payment by date.
func (d DividendSeries) Latest() (DividendPoint, bool) {
	if len(d) == 0 {
		return DividendPoint{}, false
	}
	latest := d[0]
	for _, p := range d[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, true
}

// AnnualTotal is the sum of dividends paid in one calendar year.
type AnnualTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// AnnualTotals groups the series by calendar year and sums each year,
// returned in ascending year order.
func (d DividendSeries) AnnualTotals() []AnnualTotal {
	byYear := make(map[int]float64)
	for _, p := range d {
		byYear[p.Date.Year()] += p.Amount
	}
	var out []AnnualTotal
	for year, total := range byYear {
		out = append(out, AnnualTotal{Year: year, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
