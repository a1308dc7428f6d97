// Package performance computes backtest and equity-curve analytics: drawdowns,
// rolling risk windows, trade outcome distributions and price-based risk ratios.
package performance

import (
	"github.com/aristath/argent/internal/domain"
)

// DrawdownSummary describes the deepest decline of a value series from its running peak
type DrawdownSummary struct {
	MaxDrawdown       float64 `json:"maxDrawdown" msgpack:"maxDrawdown"`         // percent, <= 0
	CurrentDrawdown   float64 `json:"currentDrawdown" msgpack:"currentDrawdown"` // percent, <= 0
	PeakIndex         int     `json:"peakIndex" msgpack:"peakIndex"`             // peak preceding the trough
	TroughIndex       int     `json:"troughIndex" msgpack:"troughIndex"`
	PeriodsInDrawdown int     `json:"periodsInDrawdown" msgpack:"periodsInDrawdown"` // since the latest peak
}

// DrawdownSeries returns a copy of the equity curve with Drawdown filled in
//
// Drawdown Formula:
//
//	Peak = max(equity so far), starting at the first point
//	Drawdown = (Equity - Peak) / Peak × 100
//
// The first point and every new peak have a drawdown of exactly 0. A non-positive
// peak yields 0 rather than a division by zero. All other fields are preserved.
func DrawdownSeries(curve []domain.EquityPoint) []domain.EquityPoint {
	result := make([]domain.EquityPoint, len(curve))
	if len(curve) == 0 {
		return result
	}

	peak := curve[0].Equity
	for i, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}

		drawdown := percentFromPeak(point.Equity, peak)
		result[i] = point
		result[i].Drawdown = &drawdown
	}

	return result
}

// MaxDrawdown finds the deepest drawdown of a value series and where it happened.
// Returns nil for fewer than two values.
func MaxDrawdown(values []float64) *DrawdownSummary {
	if len(values) < 2 {
		return nil
	}

	summary := &DrawdownSummary{}
	peak := values[0]
	peakIndex := 0
	candidatePeak := 0

	for i, v := range values {
		if v > peak {
			peak = v
			peakIndex = i
		}

		drawdown := percentFromPeak(v, peak)
		if drawdown < summary.MaxDrawdown {
			summary.MaxDrawdown = drawdown
			summary.TroughIndex = i
			candidatePeak = peakIndex
		}
	}

	summary.PeakIndex = candidatePeak
	summary.CurrentDrawdown = percentFromPeak(values[len(values)-1], peak)
	summary.PeriodsInDrawdown = len(values) - 1 - peakIndex

	return summary
}

func percentFromPeak(value, peak float64) float64 {
	if peak <= 0 || value >= peak {
		return 0
	}
	return (value - peak) / peak * 100
}
