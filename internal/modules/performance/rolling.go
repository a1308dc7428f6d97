package performance

import (
	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/pkg/formulas"
)

// RollingPoint is the annualized risk profile of one trailing window
type RollingPoint struct {
	Date       string  `json:"date" msgpack:"date"`
	Volatility float64 `json:"volatility" msgpack:"volatility"` // percent
	Sharpe     float64 `json:"sharpe" msgpack:"sharpe"`
}

// RollingMetrics computes volatility and Sharpe ratio over a sliding window.
//
// For every index i >= window the simple returns of points i-window..i are used:
//
//	Volatility = population stddev(returns) × sqrt(252) × 100
//	Sharpe     = mean(returns) × 252 / (Volatility / 100)
//
// A zero volatility window reports a Sharpe of 0. The result is empty when the
// curve is shorter than the window.
func RollingMetrics(curve []domain.EquityPoint, window int) []RollingPoint {
	if window <= 0 || len(curve) <= window {
		return []RollingPoint{}
	}

	equity := make([]float64, len(curve))
	for i, point := range curve {
		equity[i] = point.Equity
	}

	result := make([]RollingPoint, 0, len(curve)-window)

	for i := window; i < len(curve); i++ {
		returns := formulas.CalculateReturns(equity[i-window : i+1])
		volatility := formulas.AnnualizedVolatility(returns) * 100

		sharpe := 0.0
		if volatility != 0 {
			sharpe = (formulas.Mean(returns) * formulas.TradingDaysPerYear) / (volatility / 100)
		}

		result = append(result, RollingPoint{
			Date:       curve[i].Date,
			Volatility: volatility,
			Sharpe:     sharpe,
		})
	}

	return result
}
