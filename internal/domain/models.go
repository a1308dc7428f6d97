// Package domain provides the value types exchanged between the data layer, the
// analytics engine and the presentation layer.
package domain

import "strings"

// PriceBar is one OHLCV bar. Bars are ordered ascending by Timestamp.
type PriceBar struct {
	Timestamp string  `json:"timestamp" msgpack:"timestamp"` // ISO-8601
	Open      float64 `json:"open" msgpack:"open"`
	High      float64 `json:"high" msgpack:"high"`
	Low       float64 `json:"low" msgpack:"low"`
	Close     float64 `json:"close" msgpack:"close"`
	Volume    int64   `json:"volume" msgpack:"volume"`
}

// Date returns the calendar part of the bar timestamp (YYYY-MM-DD for ISO input)
func (b PriceBar) Date() string {
	date, _, _ := strings.Cut(b.Timestamp, "T")
	return date
}

// ChartPoint represents a single point on a chart
type ChartPoint struct {
	Time  string  `json:"time" msgpack:"time"`
	Value float64 `json:"value" msgpack:"value"`
}

// Histogram colour tags
const (
	ColorPositive = "positive"
	ColorNegative = "negative"
)

// HistogramPoint is a chart point carrying a colour tag for bar rendering
type HistogramPoint struct {
	Time  string  `json:"time" msgpack:"time"`
	Value float64 `json:"value" msgpack:"value"`
	Color string  `json:"color" msgpack:"color"`
}

// ColorFor returns the histogram colour tag for a value
func ColorFor(value float64) string {
	if value >= 0 {
		return ColorPositive
	}
	return ColorNegative
}

// EquityPoint is one sample of a backtest equity curve. Drawdown is derived.
type EquityPoint struct {
	Date      string   `json:"date" msgpack:"date"`
	Equity    float64  `json:"equity" msgpack:"equity"`
	Benchmark *float64 `json:"benchmark,omitempty" msgpack:"benchmark,omitempty"`
	Drawdown  *float64 `json:"drawdown,omitempty" msgpack:"drawdown,omitempty"`
}

// TradeSide is the direction of a trade
type TradeSide string

const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

// TradeStatus is the lifecycle state of a trade
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Trade represents an executed backtest trade
type Trade struct {
	ID         string      `json:"id" msgpack:"id"`
	Symbol     string      `json:"symbol" msgpack:"symbol"`
	EntryDate  string      `json:"entryDate" msgpack:"entryDate"`
	EntryPrice float64     `json:"entryPrice" msgpack:"entryPrice"`
	ExitDate   *string     `json:"exitDate,omitempty" msgpack:"exitDate,omitempty"`
	ExitPrice  *float64    `json:"exitPrice,omitempty" msgpack:"exitPrice,omitempty"`
	Quantity   float64     `json:"quantity" msgpack:"quantity"`
	Side       TradeSide   `json:"side" msgpack:"side"`
	PnL        *float64    `json:"pnl,omitempty" msgpack:"pnl,omitempty"`
	PnLPercent *float64    `json:"pnlPercent,omitempty" msgpack:"pnlPercent,omitempty"`
	Status     TradeStatus `json:"status" msgpack:"status"`
}

// IsClosedWithReturn reports whether the trade participates in distribution statistics
func (t Trade) IsClosedWithReturn() bool {
	return t.Status == TradeStatusClosed && t.PnLPercent != nil
}

// BacktestMetrics is the scalar summary produced by the backtesting layer
type BacktestMetrics struct {
	TotalReturn          float64 `json:"totalReturn" msgpack:"totalReturn"`
	AnnualizedReturn     float64 `json:"annualizedReturn" msgpack:"annualizedReturn"`
	SharpeRatio          float64 `json:"sharpeRatio" msgpack:"sharpeRatio"`
	SortinoRatio         float64 `json:"sortinoRatio" msgpack:"sortinoRatio"`
	MaxDrawdown          float64 `json:"maxDrawdown" msgpack:"maxDrawdown"`
	WinRate              float64 `json:"winRate" msgpack:"winRate"`
	ProfitFactor         float64 `json:"profitFactor" msgpack:"profitFactor"`
	TotalTrades          int     `json:"totalTrades" msgpack:"totalTrades"`
	WinningTrades        int     `json:"winningTrades" msgpack:"winningTrades"`
	LosingTrades         int     `json:"losingTrades" msgpack:"losingTrades"`
	AverageWin           float64 `json:"averageWin" msgpack:"averageWin"`
	AverageLoss          float64 `json:"averageLoss" msgpack:"averageLoss"`
	AverageHoldingPeriod float64 `json:"averageHoldingPeriod" msgpack:"averageHoldingPeriod"`
}

// BacktestResult bundles one strategy's metrics with its curve and trades
type BacktestResult struct {
	Name        string          `json:"name" msgpack:"name"`
	Metrics     BacktestMetrics `json:"metrics" msgpack:"metrics"`
	EquityCurve []EquityPoint   `json:"equityCurve,omitempty" msgpack:"equityCurve,omitempty"`
	Trades      []Trade         `json:"trades,omitempty" msgpack:"trades,omitempty"`
}

// Position represents a portfolio position. Allocation is a percentage (0-100).
type Position struct {
	Symbol        string  `json:"symbol" msgpack:"symbol"`
	MarketValue   float64 `json:"marketValue" msgpack:"marketValue"`
	UnrealizedPnL float64 `json:"unrealizedPnL" msgpack:"unrealizedPnL"`
	Allocation    float64 `json:"allocation" msgpack:"allocation"`
}

// Float64Ptr returns a pointer to v, for building optional fields
func Float64Ptr(v float64) *float64 {
	return &v
}
