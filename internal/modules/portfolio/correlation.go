package portfolio

import (
	"math"
	"sort"
)

// CorrelationLevel classifies how strongly portfolio holdings move together
type CorrelationLevel string

const (
	CorrelationUnknown  CorrelationLevel = "unknown"
	CorrelationLow      CorrelationLevel = "low"
	CorrelationModerate CorrelationLevel = "moderate"
	CorrelationHigh     CorrelationLevel = "high"
)

// Correlation level thresholds on the average absolute pairwise correlation
const (
	lowCorrelationThreshold      = 0.3
	moderateCorrelationThreshold = 0.6
)

// CorrelationAssessment summarises a correlation matrix for diversification purposes
type CorrelationAssessment struct {
	AverageCorrelation float64          `json:"averageCorrelation" msgpack:"averageCorrelation"`
	Level              CorrelationLevel `json:"level" msgpack:"level"`
	Pairs              int              `json:"pairs" msgpack:"pairs"`
}

// AssessCorrelation averages |ρ| over every distinct symbol pair. Below 0.3 the
// holdings are weakly correlated, below 0.6 moderately, otherwise strongly.
// Fewer than two symbols yield CorrelationUnknown.
func AssessCorrelation(matrix map[string]map[string]float64) CorrelationAssessment {
	symbols := make([]string, 0, len(matrix))
	for symbol := range matrix {
		symbols = append(symbols, symbol)
	}
	if len(symbols) < 2 {
		return CorrelationAssessment{Level: CorrelationUnknown}
	}
	sort.Strings(symbols)

	total := 0.0
	pairs := 0
	for i, a := range symbols {
		for _, b := range symbols[i+1:] {
			total += math.Abs(matrix[a][b])
			pairs++
		}
	}

	average := total / float64(pairs)

	level := CorrelationHigh
	switch {
	case average < lowCorrelationThreshold:
		level = CorrelationLow
	case average < moderateCorrelationThreshold:
		level = CorrelationModerate
	}

	return CorrelationAssessment{
		AverageCorrelation: round(average, 4),
		Level:              level,
		Pairs:              pairs,
	}
}
