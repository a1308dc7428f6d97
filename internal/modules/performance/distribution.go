package performance

import (
	"fmt"

	"github.com/aristath/argent/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// DistributionBinCount is the number of histogram bins for trade returns
const DistributionBinCount = 20

// DistributionBin is one bucket of the trade return histogram
type DistributionBin struct {
	Label    string  `json:"label" msgpack:"label"`
	Start    float64 `json:"start" msgpack:"start"`
	End      float64 `json:"end" msgpack:"end"`
	Count    int     `json:"count" msgpack:"count"`
	Positive bool    `json:"positive" msgpack:"positive"`
}

// TradeDistribution summarises closed trade outcomes
type TradeDistribution struct {
	TotalTrades int               `json:"totalTrades" msgpack:"totalTrades"`
	Winners     int               `json:"winners" msgpack:"winners"`
	Losers      int               `json:"losers" msgpack:"losers"`
	WinRate     float64           `json:"winRate" msgpack:"winRate"` // percent
	AvgWin      float64           `json:"avgWin" msgpack:"avgWin"`
	AvgLoss     float64           `json:"avgLoss" msgpack:"avgLoss"`
	Bins        []DistributionBin `json:"bins" msgpack:"bins"`
}

// TradeDistributionStats computes win/loss statistics and a 20-bin histogram of
// pnlPercent. Only closed trades with a pnlPercent take part. Break-even trades
// count towards the total but neither side.
func TradeDistributionStats(trades []domain.Trade) TradeDistribution {
	returns := make([]float64, 0, len(trades))
	for _, trade := range trades {
		if trade.IsClosedWithReturn() {
			returns = append(returns, *trade.PnLPercent)
		}
	}

	result := TradeDistribution{Bins: []DistributionBin{}}
	if len(returns) == 0 {
		return result
	}

	var winSum, lossSum float64
	for _, r := range returns {
		switch {
		case r > 0:
			result.Winners++
			winSum += r
		case r < 0:
			result.Losers++
			lossSum += r
		}
	}

	result.TotalTrades = len(returns)
	result.WinRate = float64(result.Winners) / float64(result.TotalTrades) * 100
	if result.Winners > 0 {
		result.AvgWin = winSum / float64(result.Winners)
	}
	if result.Losers > 0 {
		result.AvgLoss = lossSum / float64(result.Losers)
	}
	result.Bins = histogram(returns)

	return result
}

// histogram buckets values into DistributionBinCount equal bins over [min, max].
// Identical values collapse into a single bin.
func histogram(values []float64) []DistributionBin {
	low := floats.Min(values)
	high := floats.Max(values)
	binSize := (high - low) / DistributionBinCount

	if binSize == 0 {
		return []DistributionBin{newBin(low, high, len(values))}
	}

	bins := make([]DistributionBin, DistributionBinCount)
	for i := range bins {
		start := low + float64(i)*binSize
		bins[i] = newBin(start, start+binSize, 0)
	}

	for _, v := range values {
		idx := int((v - low) / binSize)
		if idx >= DistributionBinCount {
			idx = DistributionBinCount - 1
		}
		bins[idx].Count++
	}

	return bins
}

func newBin(start, end float64, count int) DistributionBin {
	return DistributionBin{
		Label:    fmt.Sprintf("%.1f%%", start),
		Start:    start,
		End:      end,
		Count:    count,
		Positive: start >= 0,
	}
}
