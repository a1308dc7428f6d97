package indicators

import (
	"fmt"
	"math"

	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/pkg/formulas"
)

// Kind selects the moving average used by IndicatorSeries
type Kind string

const (
	KindSMA Kind = "sma"
	KindEMA Kind = "ema"
)

// ParseKind validates a moving average kind name
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindSMA, KindEMA:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("unknown indicator kind: %q (must be sma or ema)", name)
	}
}

// MACDSeries holds the chart series for MACD. Signal and Histogram start at the
// ninth MACD point, so they are at most len(MACD)-8 long.
type MACDSeries struct {
	MACD      []domain.ChartPoint     `json:"macd" msgpack:"macd"`
	Signal    []domain.ChartPoint     `json:"signal" msgpack:"signal"`
	Histogram []domain.HistogramPoint `json:"histogram" msgpack:"histogram"`
}

// BollingerSeries holds the three band series, aligned point for point
type BollingerSeries struct {
	Upper  []domain.ChartPoint `json:"upper" msgpack:"upper"`
	Middle []domain.ChartPoint `json:"middle" msgpack:"middle"`
	Lower  []domain.ChartPoint `json:"lower" msgpack:"lower"`
}

// ClosePrices extracts closing prices in bar order
func ClosePrices(bars []domain.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}

// Highs extracts high prices in bar order
func Highs(bars []domain.PriceBar) []float64 {
	highs := make([]float64, len(bars))
	for i, bar := range bars {
		highs[i] = bar.High
	}
	return highs
}

// Lows extracts low prices in bar order
func Lows(bars []domain.PriceBar) []float64 {
	lows := make([]float64, len(bars))
	for i, bar := range bars {
		lows[i] = bar.Low
	}
	return lows
}

// IndicatorSeries produces one moving-average point per bar once period bars exist.
// Unknown kinds produce an empty series.
func IndicatorSeries(bars []domain.PriceBar, kind Kind, period int) []domain.ChartPoint {
	closes := ClosePrices(bars)

	var values []float64
	switch kind {
	case KindSMA:
		values = formulas.SMASeries(closes, period)
	case KindEMA:
		values = formulas.EMASeries(closes, period)
	default:
		return []domain.ChartPoint{}
	}

	return alignPoints(bars, values)
}

// RSISeries produces one RSI point per bar from bar index period onwards
func RSISeries(bars []domain.PriceBar, period int) []domain.ChartPoint {
	return alignPoints(bars, rsiValues(ClosePrices(bars), period))
}

// MACDSeriesFor produces the MACD, signal and histogram series for bars
func MACDSeriesFor(bars []domain.PriceBar) MACDSeries {
	line, signal := macdLines(ClosePrices(bars))

	result := MACDSeries{
		MACD:      alignPoints(bars, line),
		Signal:    alignPoints(bars, signal),
		Histogram: make([]domain.HistogramPoint, len(signal)),
	}

	lineOffset := len(line) - len(signal)
	barOffset := len(bars) - len(signal)
	for j, sig := range signal {
		hist := line[j+lineOffset] - sig
		result.Histogram[j] = domain.HistogramPoint{
			Time:  bars[j+barOffset].Date(),
			Value: hist,
			Color: domain.ColorFor(hist),
		}
	}

	return result
}

// BollingerSeriesFor produces the band series, one point per full window.
// The window mean and sum of squared deviations are slid forward one bar at a
// time rather than recomputed per window.
func BollingerSeriesFor(bars []domain.PriceBar, period int, stdDevMultiplier float64) BollingerSeries {
	result := BollingerSeries{
		Upper:  []domain.ChartPoint{},
		Middle: []domain.ChartPoint{},
		Lower:  []domain.ChartPoint{},
	}
	if period <= 0 || len(bars) < period {
		return result
	}

	closes := ClosePrices(bars)
	count := len(bars) - period + 1
	result.Upper = make([]domain.ChartPoint, count)
	result.Middle = make([]domain.ChartPoint, count)
	result.Lower = make([]domain.ChartPoint, count)

	n := float64(period)
	mean, std := formulas.PopMeanStdDev(closes[:period])
	m2 := std * std * n

	for k := 0; k < count; k++ {
		end := k + period
		if k > 0 {
			added, dropped := closes[end-1], closes[k-1]
			prevMean := mean
			mean += (added - dropped) / n
			m2 = math.Max(0, m2+(added-dropped)*(added-mean+dropped-prevMean))
		}

		halfWidth := stdDevMultiplier * math.Sqrt(m2/n)
		date := bars[end-1].Date()
		result.Upper[k] = domain.ChartPoint{Time: date, Value: mean + halfWidth}
		result.Middle[k] = domain.ChartPoint{Time: date, Value: mean}
		result.Lower[k] = domain.ChartPoint{Time: date, Value: mean - halfWidth}
	}

	return result
}

// ATRSeries produces one ATR point per bar from bar index period onwards
func ATRSeries(bars []domain.PriceBar, period int) []domain.ChartPoint {
	return alignPoints(bars, atrValues(Highs(bars), Lows(bars), ClosePrices(bars), period))
}

// alignPoints tags values with the dates of the trailing bars they end on
func alignPoints(bars []domain.PriceBar, values []float64) []domain.ChartPoint {
	points := make([]domain.ChartPoint, len(values))
	offset := len(bars) - len(values)
	for k, v := range values {
		points[k] = domain.ChartPoint{Time: bars[k+offset].Date(), Value: v}
	}
	return points
}
