package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnualizedVolatility(t *testing.T) {
	tests := []struct {
		name      string
		returns   []float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "empty returns",
			returns:   []float64{},
			expected:  0.0,
			tolerance: 0.0,
		},
		{
			name:      "constant returns",
			returns:   makeReturns(0.001, 252),
			expected:  0.0, // No volatility when all returns are same
			tolerance: 0.001,
		},
		{
			name:      "alternating returns",
			returns:   []float64{0.01, -0.01, 0.01, -0.01},
			expected:  0.01 * math.Sqrt(252), // population stddev is exactly 0.01
			tolerance: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnualizedVolatility(tt.returns)
			assert.InDelta(t, tt.expected, result, tt.tolerance)
		})
	}
}

func TestCalculateReturns(t *testing.T) {
	tests := []struct {
		name        string
		prices      []float64
		want        []float64
		description string
	}{
		{
			name:        "single price",
			prices:      []float64{100.0},
			want:        []float64{},
			description: "Single price cannot calculate return",
		},
		{
			name:        "three prices sequence",
			prices:      []float64{100.0, 110.0, 99.0},
			want:        []float64{0.10, -0.10},
			description: "10% up then 10% down",
		},
		{
			name:        "price sequence with zero",
			prices:      []float64{100.0, 0.0, 110.0},
			want:        []float64{-1.0, 0.0},
			description: "Division by zero results in 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateReturns(tt.prices)
			assert.Len(t, result, len(tt.want), tt.description)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], result[i], 0.0001, tt.description)
			}
		})
	}
}

func TestCalculateLogReturns(t *testing.T) {
	prices := []float64{100, 110, 99, 108}

	logReturns := CalculateLogReturns(prices)
	simpleReturns := CalculateReturns(prices)

	assert.Len(t, logReturns, 3)
	assert.InDelta(t, math.Log(1.1), logReturns[0], 1e-12)
	for i := range logReturns {
		// close to simple returns for small moves
		assert.InDelta(t, simpleReturns[i], logReturns[i], 0.02)
	}

	assert.Empty(t, CalculateLogReturns([]float64{100}))
	assert.Len(t, CalculateLogReturns([]float64{100, 0, 50}), 0, "pairs touching a zero price are skipped")
}

func TestPopMeanStdDev(t *testing.T) {
	mean, std := PopMeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.0, std, 1e-12)

	mean, std = PopMeanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestCovarianceAndCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	assert.InDelta(t, 1.0, Correlation(x, y), 1e-12)
	assert.InDelta(t, 5.0, Covariance(x, y), 1e-12)
	assert.Equal(t, 0.0, Correlation(x, y[:3]), "mismatched lengths")
	assert.Equal(t, 0.0, Covariance(nil, nil))
}

// Helper function to create a slice of identical returns
func makeReturns(value float64, count int) []float64 {
	returns := make([]float64, count)
	for i := range returns {
		returns[i] = value
	}
	return returns
}
