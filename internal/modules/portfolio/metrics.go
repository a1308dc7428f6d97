// Package portfolio scores a set of open positions: aggregate value and P&L,
// allocation concentration and a diversification score.
package portfolio

import (
	"math"
	"sort"

	"github.com/aristath/argent/internal/domain"
	"github.com/shopspring/decimal"
)

// Metrics holds aggregate portfolio value and unrealized profit
type Metrics struct {
	TotalValue      float64 `json:"totalValue" msgpack:"totalValue"`
	TotalPnL        float64 `json:"totalPnL" msgpack:"totalPnL"`
	TotalPnLPercent float64 `json:"totalPnLPercent" msgpack:"totalPnLPercent"`
}

// Concentration describes how allocation weight is spread across positions
type Concentration struct {
	HerfindahlIndex float64 `json:"herfindahlIndex" msgpack:"herfindahlIndex"`
	Top5Weight      float64 `json:"top5Weight" msgpack:"top5Weight"`
	Top10Weight     float64 `json:"top10Weight" msgpack:"top10Weight"`
}

var hundred = decimal.NewFromInt(100)

// CalculateMetrics sums market value and unrealized P&L across positions.
//
// The percentage is measured against the implied cost basis:
//
//	TotalPnLPercent = TotalPnL / (TotalValue - TotalPnL) × 100
//
// It is 0 for an empty or zero-valued portfolio and when the cost basis is 0.
// Sums are exact decimals unless a position carries NaN or ±Inf, in which case
// plain float sums are used and the non-finite value propagates.
func CalculateMetrics(positions []domain.Position) Metrics {
	if !finitePositions(positions) {
		return floatMetrics(positions)
	}

	totalValue := decimal.Zero
	totalPnL := decimal.Zero

	for _, pos := range positions {
		totalValue = totalValue.Add(decimal.NewFromFloat(pos.MarketValue))
		totalPnL = totalPnL.Add(decimal.NewFromFloat(pos.UnrealizedPnL))
	}

	pnlPercent := decimal.Zero
	costBasis := totalValue.Sub(totalPnL)
	if !totalValue.IsZero() && !costBasis.IsZero() {
		pnlPercent = totalPnL.Div(costBasis).Mul(hundred)
	}

	return Metrics{
		TotalValue:      totalValue.InexactFloat64(),
		TotalPnL:        totalPnL.InexactFloat64(),
		TotalPnLPercent: pnlPercent.InexactFloat64(),
	}
}

func floatMetrics(positions []domain.Position) Metrics {
	var metrics Metrics
	for _, pos := range positions {
		metrics.TotalValue += pos.MarketValue
		metrics.TotalPnL += pos.UnrealizedPnL
	}

	costBasis := metrics.TotalValue - metrics.TotalPnL
	if metrics.TotalValue != 0 && costBasis != 0 {
		metrics.TotalPnLPercent = metrics.TotalPnL / costBasis * 100
	}
	return metrics
}

// finitePositions reports whether every value can be represented as a decimal
func finitePositions(positions []domain.Position) bool {
	for _, pos := range positions {
		if !isFinite(pos.MarketValue) || !isFinite(pos.UnrealizedPnL) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DiversificationScore converts the Herfindahl-Hirschman index of allocations
// into a 0-100 score.
//
//	HHI = Σ (allocation / 100)²
//	Score = round((1 - HHI) / (1 - 1/n) × 100), clamped to [0, 100]
//
// An equal-weight portfolio scores 100. Fewer than two positions score 0.
func DiversificationScore(positions []domain.Position) int {
	n := len(positions)
	if n <= 1 {
		return 0
	}

	hhi := herfindahl(allocationWeights(positions))
	maxDiversity := 1 - 1/float64(n)

	score := math.Round((1 - hhi) / maxDiversity * 100)
	return int(math.Max(0, math.Min(100, score)))
}

// CalculateConcentration reports the HHI and the combined weight of the largest
// five and ten allocations, as fractions.
func CalculateConcentration(positions []domain.Position) Concentration {
	weights := allocationWeights(positions)
	if len(weights) == 0 {
		return Concentration{}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))

	var top5, top10 float64
	for i, w := range weights {
		if i < 5 {
			top5 += w
		}
		if i < 10 {
			top10 += w
		}
	}

	return Concentration{
		HerfindahlIndex: round(herfindahl(weights), 4),
		Top5Weight:      round(top5, 4),
		Top10Weight:     round(top10, 4),
	}
}

func allocationWeights(positions []domain.Position) []float64 {
	weights := make([]float64, len(positions))
	for i, pos := range positions {
		weights[i] = pos.Allocation / 100
	}
	return weights
}

func herfindahl(weights []float64) float64 {
	hhi := 0.0
	for _, w := range weights {
		hhi += w * w
	}
	return hhi
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
