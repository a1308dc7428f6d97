package performance

import (
	"fmt"
	"testing"

	"github.com/aristath/argent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curveOf(equity ...float64) []domain.EquityPoint {
	curve := make([]domain.EquityPoint, len(equity))
	for i, e := range equity {
		curve[i] = domain.EquityPoint{
			Date:   dateFor(i),
			Equity: e,
		}
	}
	return curve
}

func dateFor(i int) string {
	return fmt.Sprintf("2024-01-%02d", i+1)
}

func TestDrawdownSeries(t *testing.T) {
	curve := curveOf(100, 110, 100, 105, 120)
	curve[2].Benchmark = domain.Float64Ptr(98)

	result := DrawdownSeries(curve)
	require.Len(t, result, 5)

	expected := []float64{0, 0, -9.0909, -4.5454, 0}
	for i, want := range expected {
		require.NotNil(t, result[i].Drawdown, "point %d", i)
		assert.InDelta(t, want, *result[i].Drawdown, 0.001, "point %d", i)
	}

	// other fields are carried over untouched
	assert.Equal(t, curve[2].Date, result[2].Date)
	assert.Equal(t, 100.0, result[2].Equity)
	require.NotNil(t, result[2].Benchmark)
	assert.Equal(t, 98.0, *result[2].Benchmark)

	// the input is not modified
	for _, point := range curve {
		assert.Nil(t, point.Drawdown)
	}
}

func TestDrawdownSeries_NeverPositive(t *testing.T) {
	curve := curveOf(50, 40, 60, 55, 70, 20, 90, 91, 89)

	peak := curve[0].Equity
	for i, point := range DrawdownSeries(curve) {
		require.NotNil(t, point.Drawdown)
		assert.LessOrEqual(t, *point.Drawdown, 0.0)
		if point.Equity >= peak {
			peak = point.Equity
			assert.Equal(t, 0.0, *point.Drawdown, "new peak at %d", i)
		}
	}
}

func TestDrawdownSeries_EdgeCases(t *testing.T) {
	assert.Empty(t, DrawdownSeries(nil))

	result := DrawdownSeries(curveOf(0, -5, 10))
	for _, point := range result {
		require.NotNil(t, point.Drawdown)
		assert.Equal(t, 0.0, *point.Drawdown, "non-positive peaks do not divide")
	}
}

func TestMaxDrawdown(t *testing.T) {
	summary := MaxDrawdown([]float64{100, 120, 90, 110, 130, 117})
	require.NotNil(t, summary)

	assert.InDelta(t, -25.0, summary.MaxDrawdown, 1e-9)
	assert.Equal(t, 1, summary.PeakIndex)
	assert.Equal(t, 2, summary.TroughIndex)
	assert.InDelta(t, -10.0, summary.CurrentDrawdown, 1e-9)
	assert.Equal(t, 1, summary.PeriodsInDrawdown)

	flat := MaxDrawdown([]float64{1, 2, 3})
	require.NotNil(t, flat)
	assert.Equal(t, 0.0, flat.MaxDrawdown)

	assert.Nil(t, MaxDrawdown([]float64{100}))
}
