package portfolio

import (
	"math"
	"testing"

	"github.com/aristath/argent/internal/domain"
	"github.com/stretchr/testify/assert"
)

func positionsWithAllocations(allocations ...float64) []domain.Position {
	positions := make([]domain.Position, len(allocations))
	for i, a := range allocations {
		positions[i] = domain.Position{
			Symbol:      string(rune('A' + i)),
			MarketValue: a * 100,
			Allocation:  a,
		}
	}
	return positions
}

func TestCalculateMetrics(t *testing.T) {
	tests := []struct {
		name            string
		positions       []domain.Position
		expectedValue   float64
		expectedPnL     float64
		expectedPercent float64
	}{
		{
			name:      "empty portfolio",
			positions: nil,
		},
		{
			name: "gains and losses",
			positions: []domain.Position{
				{Symbol: "AAPL", MarketValue: 1200, UnrealizedPnL: 200},
				{Symbol: "MSFT", MarketValue: 900, UnrealizedPnL: -100},
			},
			expectedValue:   2100,
			expectedPnL:     100,
			expectedPercent: 5,
		},
		{
			name: "decimal sums stay exact",
			positions: []domain.Position{
				{Symbol: "A", MarketValue: 0.1, UnrealizedPnL: 0.1},
				{Symbol: "B", MarketValue: 0.2, UnrealizedPnL: 0},
				{Symbol: "C", MarketValue: 0.3, UnrealizedPnL: 0},
			},
			expectedValue:   0.6,
			expectedPnL:     0.1,
			expectedPercent: 20,
		},
		{
			name: "zero cost basis",
			positions: []domain.Position{
				{Symbol: "GIFT", MarketValue: 500, UnrealizedPnL: 500},
			},
			expectedValue:   500,
			expectedPnL:     500,
			expectedPercent: 0,
		},
		{
			name: "zero value",
			positions: []domain.Position{
				{Symbol: "DEAD", MarketValue: 0, UnrealizedPnL: -250},
			},
			expectedValue:   0,
			expectedPnL:     -250,
			expectedPercent: 0,
		},
		{
			name: "NaN market value propagates",
			positions: []domain.Position{
				{Symbol: "BAD", MarketValue: math.NaN(), UnrealizedPnL: 1},
			},
			expectedValue:   math.NaN(),
			expectedPnL:     1,
			expectedPercent: math.NaN(),
		},
		{
			name: "infinite market value propagates",
			positions: []domain.Position{
				{Symbol: "AAPL", MarketValue: 1200, UnrealizedPnL: 200},
				{Symbol: "BAD", MarketValue: math.Inf(1), UnrealizedPnL: 0},
			},
			expectedValue:   math.Inf(1),
			expectedPnL:     200,
			expectedPercent: 0,
		},
		{
			name: "NaN pnl propagates",
			positions: []domain.Position{
				{Symbol: "BAD", MarketValue: 100, UnrealizedPnL: math.NaN()},
			},
			expectedValue:   100,
			expectedPnL:     math.NaN(),
			expectedPercent: math.NaN(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var metrics Metrics
			assert.NotPanics(t, func() { metrics = CalculateMetrics(tt.positions) })
			assertFloat(t, tt.expectedValue, metrics.TotalValue, 0)
			assertFloat(t, tt.expectedPnL, metrics.TotalPnL, 0)
			assertFloat(t, tt.expectedPercent, metrics.TotalPnLPercent, 1e-9)
		})
	}
}

func assertFloat(t *testing.T, expected, actual, delta float64) {
	t.Helper()
	switch {
	case math.IsNaN(expected):
		assert.True(t, math.IsNaN(actual), "expected NaN, got %v", actual)
	case delta == 0 || math.IsInf(expected, 0):
		assert.Equal(t, expected, actual)
	default:
		assert.InDelta(t, expected, actual, delta)
	}
}

func TestDiversificationScore(t *testing.T) {
	tests := []struct {
		name      string
		positions []domain.Position
		check     func(t *testing.T, score int)
	}{
		{
			name:      "empty",
			positions: nil,
			check:     func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
		{
			name:      "single position",
			positions: positionsWithAllocations(100),
			check:     func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
		{
			name:      "equal weights",
			positions: positionsWithAllocations(25, 25, 25, 25),
			check: func(t *testing.T, score int) {
				assert.Greater(t, score, 90)
				assert.Equal(t, 100, score)
			},
		},
		{
			name:      "concentrated",
			positions: positionsWithAllocations(80, 10, 5, 5),
			check:     func(t *testing.T, score int) { assert.Less(t, score, 50) },
		},
		{
			name:      "everything in one of two",
			positions: positionsWithAllocations(100, 0),
			check:     func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
		{
			name:      "allocations above 100 clamp to zero",
			positions: positionsWithAllocations(150, 150),
			check:     func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := DiversificationScore(tt.positions)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
			tt.check(t, score)
		})
	}
}

func TestCalculateConcentration(t *testing.T) {
	assert.Equal(t, Concentration{}, CalculateConcentration(nil))

	concentration := CalculateConcentration(positionsWithAllocations(5, 40, 10, 5, 10, 10, 10, 10))
	assert.InDelta(t, 0.215, concentration.HerfindahlIndex, 1e-9)
	assert.InDelta(t, 0.8, concentration.Top5Weight, 1e-9)
	assert.InDelta(t, 1.0, concentration.Top10Weight, 1e-9)
}

func TestAssessCorrelation(t *testing.T) {
	tests := []struct {
		name    string
		matrix  map[string]map[string]float64
		level   CorrelationLevel
		average float64
		pairs   int
	}{
		{
			name:   "single symbol",
			matrix: map[string]map[string]float64{"A": {"A": 1}},
			level:  CorrelationUnknown,
		},
		{
			name: "negatively correlated pair counts as high",
			matrix: map[string]map[string]float64{
				"A": {"A": 1, "B": -0.9},
				"B": {"A": -0.9, "B": 1},
			},
			level:   CorrelationHigh,
			average: 0.9,
			pairs:   1,
		},
		{
			name: "three weakly correlated symbols",
			matrix: map[string]map[string]float64{
				"A": {"A": 1, "B": 0.1, "C": 0.2},
				"B": {"A": 0.1, "B": 1, "C": 0.3},
				"C": {"A": 0.2, "B": 0.3, "C": 1},
			},
			level:   CorrelationLow,
			average: 0.2,
			pairs:   3,
		},
		{
			name: "moderate",
			matrix: map[string]map[string]float64{
				"A": {"A": 1, "B": 0.45},
				"B": {"A": 0.45, "B": 1},
			},
			level:   CorrelationModerate,
			average: 0.45,
			pairs:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AssessCorrelation(tt.matrix)
			assert.Equal(t, tt.level, result.Level)
			assert.InDelta(t, tt.average, result.AverageCorrelation, 1e-9)
			assert.Equal(t, tt.pairs, result.Pairs)
		})
	}
}
