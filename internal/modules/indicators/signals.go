package indicators

import (
	"math"

	"github.com/aristath/argent/pkg/formulas"
)

// Direction is the interpretation attached to an indicator reading
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
	Neutral Direction = "neutral"
)

// MinSignalHistory is the number of closes TechnicalSignals needs
const MinSignalHistory = 50

// Signal is an interpreted indicator reading. Strength is in [0, 1].
type Signal struct {
	Indicator string    `json:"indicator" msgpack:"indicator"`
	Value     float64   `json:"value" msgpack:"value"`
	Direction Direction `json:"direction" msgpack:"direction"`
	Strength  float64   `json:"strength" msgpack:"strength"`
}

// Trend describes how consistently prices moved one way over a window
type Trend struct {
	Strength    float64 `json:"strength" msgpack:"strength"`   // 0 = random walk, 1 = every return same sign
	Direction   float64 `json:"direction" msgpack:"direction"` // +1 up, -1 down
	TotalReturn float64 `json:"totalReturn" msgpack:"totalReturn"`
}

// TechnicalSignals interprets RSI, MACD momentum, the 50/200 SMA cross and the
// Bollinger position. Returns nil with fewer than MinSignalHistory closes.
func TechnicalSignals(closes []float64) []Signal {
	if len(closes) < MinSignalHistory {
		return nil
	}

	var signals []Signal
	current := closes[len(closes)-1]

	if rsi := RSI(closes, DefaultRSIPeriod); rsi != nil {
		switch {
		case *rsi < 30:
			signals = append(signals, newSignal("RSI", *rsi, Bullish, (30-*rsi)/30))
		case *rsi > 70:
			signals = append(signals, newSignal("RSI", *rsi, Bearish, (*rsi-70)/30))
		default:
			signals = append(signals, newSignal("RSI", *rsi, Neutral, 0.5))
		}
	}

	line, signalLine := macdLines(closes)
	if len(signalLine) > 0 {
		hist := line[len(line)-1] - signalLine[len(signalLine)-1]
		prevHist := 0.0
		if len(signalLine) > 1 {
			prevHist = line[len(line)-2] - signalLine[len(signalLine)-2]
		}

		switch {
		case hist > 0 && hist > prevHist:
			signals = append(signals, newSignal("MACD", hist, Bullish, 0.7))
		case hist < 0 && hist < prevHist:
			signals = append(signals, newSignal("MACD", hist, Bearish, 0.7))
		default:
			signals = append(signals, newSignal("MACD", hist, Neutral, 0.3))
		}
	}

	sma50 := formulas.CalculateSMA(closes, 50)
	sma200 := formulas.CalculateSMA(closes, 200)
	if sma50 != nil && sma200 != nil && *sma200 != 0 {
		gap := (*sma50 - *sma200) / *sma200 * 10
		if gap > 0 {
			signals = append(signals, newSignal("MA_Cross", *sma50, Bullish, gap))
		} else {
			signals = append(signals, newSignal("MA_Cross", *sma50, Bearish, -gap))
		}
	}

	if bands := BollingerBands(closes, DefaultBollingerPeriod, DefaultBollingerStdDevs); bands != nil {
		position := 0.5
		if width := bands.Upper - bands.Lower; width != 0 {
			position = (current - bands.Lower) / width
		}

		switch {
		case position < 0.2:
			signals = append(signals, newSignal("Bollinger", position, Bullish, 1-position*5))
		case position > 0.8:
			signals = append(signals, newSignal("Bollinger", position, Bearish, (position-0.8)*5))
		default:
			signals = append(signals, newSignal("Bollinger", position, Neutral, 0.5))
		}
	}

	return signals
}

func newSignal(indicator string, value float64, direction Direction, strength float64) Signal {
	return Signal{
		Indicator: indicator,
		Value:     value,
		Direction: direction,
		Strength:  math.Max(0, math.Min(strength, 1)),
	}
}

// TrendStrength measures direction consistency of the last period returns.
// Returns nil with fewer than 2*period closes.
func TrendStrength(closes []float64, period int) *Trend {
	if period < 2 || len(closes) < period*2 {
		return nil
	}

	window := closes[len(closes)-period:]
	start := window[0]
	if start == 0 {
		return nil
	}

	returns := formulas.CalculateReturns(window)
	positive := 0
	for _, r := range returns {
		if r > 0 {
			positive++
		}
	}

	totalReturn := closes[len(closes)-1]/start - 1
	direction := -1.0
	if totalReturn > 0 {
		direction = 1.0
	}

	return &Trend{
		Strength:    math.Abs(float64(positive)/float64(len(returns))-0.5) * 2,
		Direction:   direction,
		TotalReturn: totalReturn,
	}
}
