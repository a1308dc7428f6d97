// Package comparison lines up backtest results metric by metric and marks the
// best strategy for each metric.
package comparison

import (
	"math"

	"github.com/aristath/argent/internal/domain"
)

// Metric identifies a comparable backtest metric
type Metric string

const (
	MetricTotalReturn      Metric = "totalReturn"
	MetricAnnualizedReturn Metric = "annualizedReturn"
	MetricSharpeRatio      Metric = "sharpeRatio"
	MetricMaxDrawdown      Metric = "maxDrawdown"
	MetricWinRate          Metric = "winRate"
	MetricProfitFactor     Metric = "profitFactor"
)

// MetricValue is one strategy's value for a metric
type MetricValue struct {
	Name  string  `json:"name" msgpack:"name"`
	Value float64 `json:"value" msgpack:"value"`
	Best  bool    `json:"best" msgpack:"best"`
}

// MetricRow holds every strategy's value for one metric, in input order
type MetricRow struct {
	Metric Metric        `json:"metric" msgpack:"metric"`
	Label  string        `json:"label" msgpack:"label"`
	Values []MetricValue `json:"values" msgpack:"values"`
}

type metricDef struct {
	metric  Metric
	label   string
	extract func(domain.BacktestMetrics) float64
	// score maps a value onto a scale where larger is better
	score func(float64) float64
}

func higherIsBetter(v float64) float64 { return v }

// Drawdowns are compared by distance from zero, whatever their sign convention
func closestToZero(v float64) float64 { return -math.Abs(v) }

var comparedMetrics = []metricDef{
	{MetricTotalReturn, "Total Return", func(m domain.BacktestMetrics) float64 { return m.TotalReturn }, higherIsBetter},
	{MetricAnnualizedReturn, "Annualized Return", func(m domain.BacktestMetrics) float64 { return m.AnnualizedReturn }, higherIsBetter},
	{MetricSharpeRatio, "Sharpe Ratio", func(m domain.BacktestMetrics) float64 { return m.SharpeRatio }, higherIsBetter},
	{MetricMaxDrawdown, "Max Drawdown", func(m domain.BacktestMetrics) float64 { return m.MaxDrawdown }, closestToZero},
	{MetricWinRate, "Win Rate", func(m domain.BacktestMetrics) float64 { return m.WinRate }, higherIsBetter},
	{MetricProfitFactor, "Profit Factor", func(m domain.BacktestMetrics) float64 { return m.ProfitFactor }, higherIsBetter},
}

// CompareMetrics builds one row per metric with every strategy's value.
//
// Higher is better for every metric except max drawdown, where the value
// closest to zero wins. Ties mark every tied strategy as best. With no results
// each row has no values.
func CompareMetrics(results []domain.BacktestResult) []MetricRow {
	rows := make([]MetricRow, 0, len(comparedMetrics))

	for _, def := range comparedMetrics {
		values := make([]MetricValue, len(results))
		bestScore := math.Inf(-1)

		for i, result := range results {
			value := def.extract(result.Metrics)
			values[i] = MetricValue{Name: result.Name, Value: value}
			if score := def.score(value); score > bestScore {
				bestScore = score
			}
		}

		for i := range values {
			values[i].Best = def.score(values[i].Value) == bestScore
		}

		rows = append(rows, MetricRow{
			Metric: def.metric,
			Label:  def.label,
			Values: values,
		})
	}

	return rows
}

// Leaders counts, per strategy name, how many metrics it is best at
func Leaders(rows []MetricRow) map[string]int {
	wins := make(map[string]int)
	for _, row := range rows {
		for _, v := range row.Values {
			if v.Best {
				wins[v.Name]++
			}
		}
	}
	return wins
}
