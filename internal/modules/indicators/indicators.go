// Package indicators computes technical indicator readings and chart-ready
// indicator series from OHLCV bars.
//
// Every function is pure: inputs are never modified and each call allocates its
// own output. Insufficient history yields a nil reading or an empty series,
// never a zero that could be mistaken for a real value.
package indicators

import (
	"github.com/aristath/argent/pkg/formulas"
	"github.com/markcheno/go-talib"
)

// Default indicator parameters
const (
	DefaultRSIPeriod        = 14
	DefaultBollingerPeriod  = 20
	DefaultBollingerStdDevs = 2.0
	DefaultATRPeriod        = 14

	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACDValue is the latest MACD reading. Signal and Histogram stay nil until
// enough MACD points exist to seed the signal EMA.
type MACDValue struct {
	MACD      float64  `json:"macd" msgpack:"macd"`
	Signal    *float64 `json:"signal,omitempty" msgpack:"signal,omitempty"`
	Histogram *float64 `json:"histogram,omitempty" msgpack:"histogram,omitempty"`
}

// Bands represents Bollinger Bands values
type Bands struct {
	Upper  float64 `json:"upper" msgpack:"upper"`
	Middle float64 `json:"middle" msgpack:"middle"`
	Lower  float64 `json:"lower" msgpack:"lower"`
}

// SMA returns the simple moving average of the last period closes
func SMA(closes []float64, period int) *float64 {
	return formulas.CalculateSMA(closes, period)
}

// EMA returns the latest exponential moving average
func EMA(closes []float64, period int) *float64 {
	return formulas.CalculateEMA(closes, period)
}

// RSI calculates the Relative Strength Index with Wilder smoothing
//
// RSI Formula:
//
//	RSI = 100 - (100 / (1 + RS))
//	where RS = Average Gain / Average Loss
//
// Needs period+1 closes. An average loss of zero yields exactly 100.
func RSI(closes []float64, period int) *float64 {
	values := rsiValues(closes, period)
	if len(values) == 0 {
		return nil
	}

	result := values[len(values)-1]
	return &result
}

// rsiValues walks the Wilder recurrence once; element k is the RSI at close k+period.
func rsiValues(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return []float64{}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	values := make([]float64, 0, len(closes)-period)
	values = append(values, rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		values = append(values, rsiFromAverages(avgGain, avgLoss))
	}

	return values
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// MACD calculates the latest MACD line (EMA12 - EMA26), its 9-period signal
// line and the histogram. Returns nil with fewer than 26 closes.
func MACD(closes []float64) *MACDValue {
	line, signal := macdLines(closes)
	if len(line) == 0 {
		return nil
	}

	result := &MACDValue{MACD: line[len(line)-1]}
	if len(signal) > 0 {
		sig := signal[len(signal)-1]
		hist := result.MACD - sig
		result.Signal = &sig
		result.Histogram = &hist
	}

	return result
}

// macdLines returns the MACD line (element k at close k+25) and the signal line
// (element j at MACD index j+8).
func macdLines(closes []float64) (line, signal []float64) {
	if len(closes) < MACDSlowPeriod {
		return []float64{}, []float64{}
	}

	fast := formulas.EMASeries(closes, MACDFastPeriod)
	slow := formulas.EMASeries(closes, MACDSlowPeriod)
	offset := MACDSlowPeriod - MACDFastPeriod

	line = make([]float64, len(slow))
	for k := range slow {
		line[k] = fast[k+offset] - slow[k]
	}

	return line, formulas.EMASeries(line, MACDSignalPeriod)
}

// BollingerBands calculates Bollinger Bands over the trailing window
//
// Bollinger Bands Formula:
//
//	Middle Band = SMA(period)
//	Upper Band = Middle + (multiplier × population std deviation)
//	Lower Band = Middle - (multiplier × population std deviation)
//
// Returns nil if insufficient data.
func BollingerBands(closes []float64, period int, stdDevMultiplier float64) *Bands {
	if period <= 0 || len(closes) < period {
		return nil
	}

	bands := bandsForWindow(closes[len(closes)-period:], stdDevMultiplier)
	return &bands
}

func bandsForWindow(window []float64, stdDevMultiplier float64) Bands {
	mean, std := formulas.PopMeanStdDev(window)
	halfWidth := stdDevMultiplier * std
	return Bands{
		Upper:  mean + halfWidth,
		Middle: mean,
		Lower:  mean - halfWidth,
	}
}

// ATR calculates the Average True Range as the SMA of the last period true ranges.
// True range needs the previous close, so period+1 bars are required.
func ATR(highs, lows, closes []float64, period int) *float64 {
	values := atrValues(highs, lows, closes, period)
	if len(values) == 0 {
		return nil
	}

	result := values[len(values)-1]
	return &result
}

// atrValues returns ATR readings; element k covers true ranges of bars k+1..k+period.
func atrValues(highs, lows, closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 || len(highs) != len(closes) || len(lows) != len(closes) {
		return []float64{}
	}

	// talib leaves trueRange[0] at zero since the first bar has no previous close
	trueRange := talib.TRange(highs, lows, closes)
	return formulas.SMASeries(trueRange[1:], period)
}
