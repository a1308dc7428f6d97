package analytics

import (
	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/internal/modules/indicators"
	"github.com/aristath/argent/internal/modules/performance"
	"github.com/aristath/argent/internal/utils"
	"github.com/aristath/argent/pkg/formulas"
)

// OverlayLine is one moving average drawn over the price chart
type OverlayLine struct {
	Kind   string              `json:"kind" msgpack:"kind"`
	Period int                 `json:"period" msgpack:"period"`
	Points []domain.ChartPoint `json:"points" msgpack:"points"`
}

// Readings are the latest scalar indicator values; nil means not enough history
type Readings struct {
	SMA       *float64              `json:"sma,omitempty" msgpack:"sma,omitempty"`
	EMA       *float64              `json:"ema,omitempty" msgpack:"ema,omitempty"`
	RSI       *float64              `json:"rsi,omitempty" msgpack:"rsi,omitempty"`
	MACD      *indicators.MACDValue `json:"macd,omitempty" msgpack:"macd,omitempty"`
	Bollinger *indicators.Bands     `json:"bollinger,omitempty" msgpack:"bollinger,omitempty"`
	ATR       *float64              `json:"atr,omitempty" msgpack:"atr,omitempty"`
}

// PriceRisk holds price-based risk statistics for one symbol
type PriceRisk struct {
	Volatility  *float64                     `json:"volatility,omitempty" msgpack:"volatility,omitempty"`
	Sharpe      *float64                     `json:"sharpe,omitempty" msgpack:"sharpe,omitempty"`
	Sortino     *float64                     `json:"sortino,omitempty" msgpack:"sortino,omitempty"`
	Beta        *float64                     `json:"beta,omitempty" msgpack:"beta,omitempty"`
	VaR         *performance.VaR             `json:"var,omitempty" msgpack:"var,omitempty"`
	MaxDrawdown *performance.DrawdownSummary `json:"maxDrawdown,omitempty" msgpack:"maxDrawdown,omitempty"`
	Score       *float64                     `json:"score,omitempty" msgpack:"score,omitempty"`
}

// PriceChart bundles every indicator series and reading for one symbol
type PriceChart struct {
	Symbol    string                     `json:"symbol" msgpack:"symbol"`
	Bars      int                        `json:"bars" msgpack:"bars"`
	Overlays  []OverlayLine              `json:"overlays" msgpack:"overlays"`
	RSI       []domain.ChartPoint        `json:"rsi" msgpack:"rsi"`
	MACD      indicators.MACDSeries      `json:"macd" msgpack:"macd"`
	Bollinger indicators.BollingerSeries `json:"bollinger" msgpack:"bollinger"`
	ATR       []domain.ChartPoint        `json:"atr" msgpack:"atr"`
	Latest    Readings                   `json:"latest" msgpack:"latest"`
	Signals   []indicators.Signal        `json:"signals,omitempty" msgpack:"signals,omitempty"`
	Levels    []indicators.Level         `json:"levels,omitempty" msgpack:"levels,omitempty"`
	Trend     *indicators.Trend          `json:"trend,omitempty" msgpack:"trend,omitempty"`
	Risk      PriceRisk                  `json:"risk" msgpack:"risk"`
}

// PriceChart computes the chart series, latest readings, signals and risk
// statistics for one symbol using the configured SMA and EMA overlays.
func (s *Service) PriceChart(symbol string, bars []domain.PriceBar) PriceChart {
	overlays, _ := s.resolveOverlays(nil)
	return s.priceChart(symbol, bars, overlays, nil)
}

func (s *Service) priceChart(symbol string, bars []domain.PriceBar, overlays []Overlay, benchmark []float64) PriceChart {
	defer utils.OperationTimer("price_chart", s.log.With().Str("symbol", symbol).Logger())()

	cfg := s.indicators
	closes := indicators.ClosePrices(bars)
	highs := indicators.Highs(bars)
	lows := indicators.Lows(bars)

	chart := PriceChart{
		Symbol:    symbol,
		Bars:      len(bars),
		Overlays:  make([]OverlayLine, 0, len(overlays)),
		RSI:       indicators.RSISeries(bars, cfg.RSIPeriod),
		MACD:      indicators.MACDSeriesFor(bars),
		Bollinger: indicators.BollingerSeriesFor(bars, cfg.BollingerPeriod, cfg.BollingerStdDevs),
		ATR:       indicators.ATRSeries(bars, cfg.ATRPeriod),
		Latest: Readings{
			SMA:       indicators.SMA(closes, cfg.SMAPeriod),
			EMA:       indicators.EMA(closes, cfg.EMAPeriod),
			RSI:       indicators.RSI(closes, cfg.RSIPeriod),
			MACD:      indicators.MACD(closes),
			Bollinger: indicators.BollingerBands(closes, cfg.BollingerPeriod, cfg.BollingerStdDevs),
			ATR:       indicators.ATR(highs, lows, closes, cfg.ATRPeriod),
		},
		Signals: indicators.TechnicalSignals(closes),
		Levels:  indicators.SupportResistance(closes, indicators.DefaultLevelWindow, indicators.DefaultLevelThreshold),
		Trend:   indicators.TrendStrength(closes, cfg.TrendPeriod),
		Risk:    s.priceRisk(closes, benchmark),
	}

	for _, o := range overlays {
		chart.Overlays = append(chart.Overlays, OverlayLine{
			Kind:   o.Kind,
			Period: o.Period,
			Points: indicators.IndicatorSeries(bars, indicators.Kind(o.Kind), o.Period),
		})
	}

	s.log.Debug().
		Str("symbol", symbol).
		Int("bars", len(bars)).
		Int("signals", len(chart.Signals)).
		Int("levels", len(chart.Levels)).
		Msg("Price chart computed")

	return chart
}

func (s *Service) priceRisk(closes, benchmark []float64) PriceRisk {
	risk := PriceRisk{
		Volatility:  performance.Volatility(closes, formulas.TradingDaysPerYear),
		Sharpe:      performance.SharpeRatio(closes, s.risk.RiskFreeRate, formulas.TradingDaysPerYear),
		Sortino:     performance.SortinoRatio(closes, s.risk.RiskFreeRate, formulas.TradingDaysPerYear),
		VaR:         performance.ValueAtRisk(closes, s.risk.VaRConfidence, 1),
		MaxDrawdown: performance.MaxDrawdown(closes),
	}

	if benchmark != nil {
		n := len(closes)
		if len(benchmark) < n {
			n = len(benchmark)
		}
		risk.Beta = performance.Beta(closes[len(closes)-n:], benchmark[len(benchmark)-n:])
	}

	if risk.Volatility != nil && risk.VaR != nil && risk.MaxDrawdown != nil {
		score := performance.RiskScore(*risk.Volatility, risk.MaxDrawdown.MaxDrawdown/100, risk.VaR.VaR)
		risk.Score = &score
	}

	return risk
}
