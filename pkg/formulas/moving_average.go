package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateSMA calculates the Simple Moving Average of the last `length` values.
//
// Returns:
//
//	Current SMA value or nil if insufficient data
func CalculateSMA(closes []float64, length int) *float64 {
	series := SMASeries(closes, length)
	if len(series) == 0 {
		return nil
	}

	result := series[len(series)-1]
	return &result
}

// SMASeries returns one SMA value per fully populated window.
// Element k is the average of closes[k : k+length].
func SMASeries(closes []float64, length int) []float64 {
	if length <= 0 || len(closes) < length {
		return []float64{}
	}

	// talib leaves the lookback slots zeroed; drop them
	sma := talib.Sma(closes, length)
	out := make([]float64, len(sma)-(length-1))
	copy(out, sma[length-1:])
	return out
}

// CalculateEMA calculates the Exponential Moving Average
//
// EMA Formula:
//
//	seed = SMA of the first `length` closes
//	EMA_today = (Price_today - EMA_yesterday) × multiplier + EMA_yesterday
//	where multiplier = 2 / (length + 1)
//
// Returns:
//
//	Current EMA value or nil if insufficient data
func CalculateEMA(closes []float64, length int) *float64 {
	series := EMASeries(closes, length)
	if len(series) == 0 {
		return nil
	}

	result := series[len(series)-1]
	return &result
}

// EMASeries returns the EMA for every close from index length-1 onwards.
// talib seeds with the SMA of the first `length` values.
func EMASeries(closes []float64, length int) []float64 {
	if length <= 0 || len(closes) < length {
		return []float64{}
	}

	ema := talib.Ema(closes, length)
	out := make([]float64, len(ema)-(length-1))
	copy(out, ema[length-1:])
	return out
}
