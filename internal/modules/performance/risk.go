package performance

import (
	"math"
	"sort"

	"github.com/aristath/argent/pkg/formulas"
	"gonum.org/v1/gonum/stat"
)

// Risk calculation defaults
const (
	DefaultRiskFreeRate  = 0.05
	DefaultVaRConfidence = 0.95
	minVaRObservations   = 30
)

// VaR is a historical Value at Risk estimate. VaR and CVaR are positive loss
// magnitudes expressed as log-return fractions.
type VaR struct {
	VaR        float64 `json:"var" msgpack:"var"`
	CVaR       float64 `json:"cvar" msgpack:"cvar"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
	Horizon    int     `json:"horizon" msgpack:"horizon"`
	WorstDay   float64 `json:"worstDay" msgpack:"worstDay"`
	BestDay    float64 `json:"bestDay" msgpack:"bestDay"`
}

// Volatility returns the annualized standard deviation of log returns
func Volatility(prices []float64, periodsPerYear int) *float64 {
	returns := formulas.CalculateLogReturns(prices)
	if len(returns) == 0 {
		return nil
	}

	vol := formulas.PopStdDev(returns) * math.Sqrt(float64(periodsPerYear))
	return &vol
}

// SharpeRatio calculates the annualized Sharpe ratio from prices
//
// Sharpe Ratio Formula:
//
//	Sharpe = (mean(log returns) × periods - riskFreeRate) / (stddev × sqrt(periods))
//
// Returns nil with fewer than two returns or zero volatility.
func SharpeRatio(prices []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	returns := formulas.CalculateLogReturns(prices)
	if len(returns) < 2 {
		return nil
	}

	mean, std := formulas.PopMeanStdDev(returns)
	volatility := std * math.Sqrt(float64(periodsPerYear))
	if volatility == 0 {
		return nil
	}

	sharpe := (mean*float64(periodsPerYear) - riskFreeRate) / volatility
	return &sharpe
}

// SortinoRatio calculates the Sortino ratio, penalising only negative returns.
// Returns nil with fewer than two returns, no losing periods, or zero downside deviation.
func SortinoRatio(prices []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	returns := formulas.CalculateLogReturns(prices)
	if len(returns) < 2 {
		return nil
	}

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) == 0 {
		return nil
	}

	downsideDeviation := formulas.PopStdDev(downside) * math.Sqrt(float64(periodsPerYear))
	if downsideDeviation == 0 {
		return nil
	}

	sortino := (formulas.Mean(returns)*float64(periodsPerYear) - riskFreeRate) / downsideDeviation
	return &sortino
}

// ValueAtRisk estimates historical VaR and expected shortfall from prices.
// The horizon scales VaR by sqrt(horizon). Needs at least 30 returns.
func ValueAtRisk(prices []float64, confidence float64, horizon int) *VaR {
	returns := formulas.CalculateLogReturns(prices)
	if len(returns) < minVaRObservations || confidence <= 0 || confidence >= 1 || horizon < 1 {
		return nil
	}

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	// Empirical picks an observed return; it does not interpolate between the
	// two neighbouring returns, so small samples land on a data point.
	threshold := stat.Quantile(1-confidence, stat.Empirical, sorted, nil)

	var tail []float64
	for _, r := range sorted {
		if r > threshold {
			break
		}
		tail = append(tail, r)
	}

	return &VaR{
		VaR:        math.Abs(threshold * math.Sqrt(float64(horizon))),
		CVaR:       math.Abs(formulas.Mean(tail)),
		Confidence: confidence,
		Horizon:    horizon,
		WorstDay:   sorted[0],
		BestDay:    sorted[len(sorted)-1],
	}
}

// Beta measures systematic risk of an asset against a market series
//
// Formula: Beta = Cov(asset, market) / Var(market), on log returns
//
// Returns nil when the return series differ in length, have fewer than two
// points, or the market has no variance.
func Beta(assetPrices, marketPrices []float64) *float64 {
	assetReturns := formulas.CalculateLogReturns(assetPrices)
	marketReturns := formulas.CalculateLogReturns(marketPrices)

	if len(assetReturns) != len(marketReturns) || len(assetReturns) < 2 {
		return nil
	}

	marketVariance := formulas.Variance(marketReturns)
	if marketVariance == 0 {
		return nil
	}

	beta := formulas.Covariance(assetReturns, marketReturns) / marketVariance
	return &beta
}

// CorrelationMatrix correlates the log returns of every pair of symbols. Series
// are truncated to their common trailing length; symbols without returns are
// skipped. Undefined correlations (flat series) are reported as 0.
func CorrelationMatrix(prices map[string][]float64) map[string]map[string]float64 {
	returns := make(map[string][]float64, len(prices))
	minLength := math.MaxInt
	for symbol, series := range prices {
		r := formulas.CalculateLogReturns(series)
		if len(r) == 0 {
			continue
		}
		returns[symbol] = r
		if len(r) < minLength {
			minLength = len(r)
		}
	}

	result := make(map[string]map[string]float64, len(returns))
	if len(returns) == 0 || minLength < 2 {
		return result
	}

	symbols := make([]string, 0, len(returns))
	for symbol, r := range returns {
		symbols = append(symbols, symbol)
		returns[symbol] = r[len(r)-minLength:]
	}
	sort.Strings(symbols)

	for _, a := range symbols {
		result[a] = make(map[string]float64, len(symbols))
		for _, b := range symbols {
			corr := formulas.Correlation(returns[a], returns[b])
			if math.IsNaN(corr) {
				corr = 0
			}
			result[a][b] = corr
		}
	}

	return result
}

// RiskScore combines volatility, max drawdown and daily VaR into a 0-100 score
// where higher means riskier. All inputs are fractions (0.25 = 25%); each
// component saturates at 50% volatility, 50% drawdown and 10% VaR respectively.
//
//	Score = 0.40 × volScore + 0.35 × drawdownScore + 0.25 × varScore
func RiskScore(volatility, maxDrawdown, valueAtRisk float64) float64 {
	volScore := math.Min(math.Abs(volatility)/0.5*100, 100)
	drawdownScore := math.Min(math.Abs(maxDrawdown)/0.5*100, 100)
	varScore := math.Min(math.Abs(valueAtRisk)/0.10*100, 100)

	return volScore*0.4 + drawdownScore*0.35 + varScore*0.25
}
