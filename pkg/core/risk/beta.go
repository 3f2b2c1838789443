// Package risk measures a security's systematic risk against a market
// benchmark: date alignment of return series, ordinary-least-squares beta,
// and a discrete risk classification.
package risk

import (
	"math"
	"time"

	"equity_research/pkg/models"
)

// tradingDaysPerYear annualizes daily volatility.
const tradingDaysPerYear = 252

// minSampleSize below which the regression result is flagged low-confidence.
const minSampleSize = 30

// BetaResult is the immutable output of one stock-vs-market regression.
type BetaResult struct {
	Beta             float64 `json:"beta"`
	Alpha            float64 `json:"alpha"`
	RSquared         float64 `json:"r_squared"`
	Correlation      float64 `json:"correlation"`
	PValue           float64 `json:"p_value"`
	StdError         float64 `json:"std_error"`
	SampleSize       int     `json:"sample_size"`
	StockVolatility  float64 `json:"stock_volatility"`
	MarketVolatility float64 `json:"market_volatility"`
	Classification   string  `json:"classification"`
	// LowConfidence is set when fewer than 30 aligned observations were
	// available; the numbers are still reported but should be read with care.
	LowConfidence bool `json:"low_confidence"`
}

// AlignReturns inner-joins two return series by date. Observations present
// in only one series are dropped. Output order follows the stock series.
func AlignReturns(stock, market models.ReturnSeries) (stockAligned, marketAligned []float64) {
	marketByDate := make(map[time.Time]float64, len(market))
	for _, p := range market {
		marketByDate[p.Date] = p.Value
	}
	for _, p := range stock {
		if mv, ok := marketByDate[p.Date]; ok {
			stockAligned = append(stockAligned, p.Value)
			marketAligned = append(marketAligned, mv)
		}
	}
	return stockAligned, marketAligned
}

// ComputeBeta aligns the two series and regresses stock returns on market
// returns: stock = alpha + beta * market. A degenerate sample (fewer than
// two aligned points, or a constant market series) yields a zero-valued
// result with LowConfidence set rather than an error.
func ComputeBeta(stock, market models.ReturnSeries) BetaResult {
	s, m := AlignReturns(stock, market)
	n := len(s)

	result := BetaResult{SampleSize: n, LowConfidence: n < minSampleSize}
	if n < 2 {
		result.Classification = classifyBeta(0)
		return result
	}

	meanS := mean(s)
	meanM := mean(m)

	var covSM, varM, varS float64
	for i := 0; i < n; i++ {
		ds := s[i] - meanS
		dm := m[i] - meanM
		covSM += ds * dm
		varM += dm * dm
		varS += ds * ds
	}

	if varM == 0 {
		// Constant market series: slope undefined, report zero beta.
		result.Classification = classifyBeta(0)
		result.StockVolatility = sampleStd(s, meanS) * math.Sqrt(tradingDaysPerYear)
		return result
	}

	beta := covSM / varM
	alpha := meanS - beta*meanM

	correlation := 0.0
	if varS > 0 {
		correlation = covSM / math.Sqrt(varS*varM)
	}
	rSquared := correlation * correlation

	// Standard error of the slope and its two-sided p-value under H0: beta=0.
	stdErr := 0.0
	pValue := 1.0
	if n > 2 {
		var rss float64
		for i := 0; i < n; i++ {
			resid := s[i] - alpha - beta*m[i]
			rss += resid * resid
		}
		df := float64(n - 2)
		stdErr = math.Sqrt(rss / df / varM)
		if stdErr > 0 {
			t := beta / stdErr
			pValue = twoSidedTPValue(t, df)
		} else {
			pValue = 0
		}
	}

	result.Beta = beta
	result.Alpha = alpha
	result.RSquared = rSquared
	result.Correlation = correlation
	result.PValue = pValue
	result.StdError = stdErr
	result.StockVolatility = sampleStd(s, meanS) * math.Sqrt(tradingDaysPerYear)
	result.MarketVolatility = sampleStd(m, meanM) * math.Sqrt(tradingDaysPerYear)
	result.Classification = classifyBeta(beta)
	return result
}

// classifyBeta maps a beta to a risk profile. Boundaries are exclusive:
// a beta of exactly 1.0 is "Moderately Aggressive", not "Aggressive".
func classifyBeta(beta float64) string {
	switch {
	case beta > 1.2:
		return "Highly Aggressive"
	case beta > 1.0:
		return "Aggressive"
	case beta > 0.8:
		return "Moderately Aggressive"
	case beta > 0.5:
		return "Defensive"
	default:
		return "Highly Defensive"
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the (n-1)-denominator standard deviation.
func sampleStd(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// twoSidedTPValue returns P(|T| >= |t|) for a Student's t with df degrees of
// freedom, via the regularized incomplete beta function:
// P = I_{df/(df+t^2)}(df/2, 1/2).
func twoSidedTPValue(t, df float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	x := df / (df + t*t)
	return regularizedIncompleteBeta(df/2, 0.5, x)
}

// regularizedIncompleteBeta computes I_x(a, b) using the continued-fraction
// expansion (Lentz's method).
func regularizedIncompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	// The continued fraction converges fastest for x < (a+1)/(a+b+2);
	// use the symmetry relation otherwise.
	if x > (a+1)/(a+b+2) {
		return 1 - regularizedIncompleteBeta(b, a, 1-x)
	}

	lnBeta, _ := math.Lgamma(a + b)
	lnGa, _ := math.Lgamma(a)
	lnGb, _ := math.Lgamma(b)
	front := math.Exp(lnBeta-lnGa-lnGb+a*math.Log(x)+b*math.Log(1-x)) / a

	const (
		maxIterations = 200
		epsilon       = 3e-14
		tiny          = 1e-30
	)

	f, c, d := 1.0, 1.0, 0.0
	for i := 0; i <= maxIterations; i++ {
		m := float64(i / 2)

		var numerator float64
		switch {
		case i == 0:
			numerator = 1
		case i%2 == 0:
			numerator = m * (b - m) * x / ((a + 2*m - 1) * (a + 2*m))
		default:
			numerator = -(a + m) * (a + b + m) * x / ((a + 2*m) * (a + 2*m + 1))
		}

		d = 1 + numerator*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		d = 1 / d
		c = 1 + numerator/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		f *= c * d

		if math.Abs(1-c*d) < epsilon {
			break
		}
	}

	return front * (f - 1)
}
