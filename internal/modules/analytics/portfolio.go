package analytics

import (
	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/internal/modules/performance"
	"github.com/aristath/argent/internal/modules/portfolio"
)

// PortfolioReport summarises open positions
type PortfolioReport struct {
	Metrics         portfolio.Metrics               `json:"metrics" msgpack:"metrics"`
	Diversification int                             `json:"diversification" msgpack:"diversification"`
	Concentration   portfolio.Concentration         `json:"concentration" msgpack:"concentration"`
	Correlations    map[string]map[string]float64   `json:"correlations,omitempty" msgpack:"correlations,omitempty"`
	Correlation     portfolio.CorrelationAssessment `json:"correlation" msgpack:"correlation"`
}

// Portfolio scores positions. closes maps position symbols to their price
// history and may be empty, in which case correlation is unknown.
func (s *Service) Portfolio(positions []domain.Position, closes map[string][]float64) PortfolioReport {
	matrix := performance.CorrelationMatrix(closes)

	report := PortfolioReport{
		Metrics:         portfolio.CalculateMetrics(positions),
		Diversification: portfolio.DiversificationScore(positions),
		Concentration:   portfolio.CalculateConcentration(positions),
		Correlation:     portfolio.AssessCorrelation(matrix),
	}
	if len(matrix) > 0 {
		report.Correlations = matrix
	}

	s.log.Debug().
		Int("positions", len(positions)).
		Int("diversification", report.Diversification).
		Str("correlation", string(report.Correlation.Level)).
		Msg("Portfolio scored")

	return report
}
