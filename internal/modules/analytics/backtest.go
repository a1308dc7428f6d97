package analytics

import (
	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/internal/modules/comparison"
	"github.com/aristath/argent/internal/modules/performance"
	"github.com/aristath/argent/internal/utils"
)

// BacktestReport is the performance breakdown of one backtest
type BacktestReport struct {
	Name         string                        `json:"name" msgpack:"name"`
	Metrics      domain.BacktestMetrics        `json:"metrics" msgpack:"metrics"`
	EquityCurve  []domain.EquityPoint          `json:"equityCurve" msgpack:"equityCurve"`
	MaxDrawdown  *performance.DrawdownSummary  `json:"maxDrawdown,omitempty" msgpack:"maxDrawdown,omitempty"`
	Rolling      []performance.RollingPoint    `json:"rolling" msgpack:"rolling"`
	Distribution performance.TradeDistribution `json:"distribution" msgpack:"distribution"`
}

// Comparison lines up several backtests metric by metric
type Comparison struct {
	Rows    []comparison.MetricRow `json:"rows" msgpack:"rows"`
	Leaders map[string]int         `json:"leaders" msgpack:"leaders"`
}

// BacktestReport derives the drawdown curve, rolling risk and trade
// distribution of a backtest result.
func (s *Service) BacktestReport(result domain.BacktestResult) BacktestReport {
	defer utils.OperationTimer("backtest_report", s.log)()

	equity := make([]float64, len(result.EquityCurve))
	for i, point := range result.EquityCurve {
		equity[i] = point.Equity
	}

	report := BacktestReport{
		Name:         result.Name,
		Metrics:      result.Metrics,
		EquityCurve:  performance.DrawdownSeries(result.EquityCurve),
		MaxDrawdown:  performance.MaxDrawdown(equity),
		Rolling:      performance.RollingMetrics(result.EquityCurve, s.risk.RollingWindow),
		Distribution: performance.TradeDistributionStats(result.Trades),
	}

	s.log.Debug().
		Str("backtest", result.Name).
		Int("equity_points", len(result.EquityCurve)).
		Int("trades", report.Distribution.TotalTrades).
		Msg("Backtest report computed")

	return report
}

// Compare ranks backtests against each other
func (s *Service) Compare(results []domain.BacktestResult) Comparison {
	rows := comparison.CompareMetrics(results)
	return Comparison{
		Rows:    rows,
		Leaders: comparison.Leaders(rows),
	}
}
