// Package analytics is the dashboard facade: it runs the indicator,
// performance, comparison and portfolio engines over a market snapshot and
// assembles the results into a single report.
package analytics

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/aristath/argent/internal/config"
	"github.com/aristath/argent/internal/domain"
	"github.com/aristath/argent/internal/modules/indicators"
	"github.com/aristath/argent/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Overlay requests a moving average line on every price chart
type Overlay struct {
	Kind   string `json:"kind" msgpack:"kind"` // sma or ema
	Period int    `json:"period" msgpack:"period"`
}

// Input is a market snapshot to analyse
type Input struct {
	Prices    map[string][]domain.PriceBar `json:"prices"`
	Benchmark string                       `json:"benchmark,omitempty"` // symbol in Prices used for beta
	Overlays  []Overlay                    `json:"overlays,omitempty"`  // defaults to the configured SMA and EMA
	Backtests []domain.BacktestResult      `json:"backtests,omitempty"`
	Positions []domain.Position            `json:"positions,omitempty"`
}

// Report is the complete analytics output for one snapshot
type Report struct {
	ID          string           `json:"id" msgpack:"id"`
	GeneratedAt time.Time        `json:"generatedAt" msgpack:"generatedAt"`
	Charts      []PriceChart     `json:"charts,omitempty" msgpack:"charts,omitempty"`
	Backtests   []BacktestReport `json:"backtests,omitempty" msgpack:"backtests,omitempty"`
	Comparison  *Comparison      `json:"comparison,omitempty" msgpack:"comparison,omitempty"`
	Portfolio   *PortfolioReport `json:"portfolio,omitempty" msgpack:"portfolio,omitempty"`
}

// Service runs analytics with a fixed set of indicator and risk parameters.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	indicators config.IndicatorConfig
	risk       config.RiskConfig
	log        zerolog.Logger
}

// NewService creates a new analytics service
func NewService(cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{
		indicators: cfg.Indicators,
		risk:       cfg.Risk,
		log:        log.With().Str("service", "analytics").Logger(),
	}
}

// Snapshot analyses every part of the input that is present. Price charts are
// computed concurrently, one symbol per goroutine, and returned sorted by symbol.
func (s *Service) Snapshot(ctx context.Context, in Input) (*Report, error) {
	timer := utils.NewTimer("snapshot", s.log)

	if len(in.Prices) == 0 && len(in.Backtests) == 0 && len(in.Positions) == 0 {
		return nil, fmt.Errorf("snapshot contains no prices, backtests or positions")
	}

	overlays, err := s.resolveOverlays(in.Overlays)
	if err != nil {
		return nil, err
	}

	var benchmark []float64
	if in.Benchmark != "" {
		bars, ok := in.Prices[in.Benchmark]
		if !ok {
			return nil, fmt.Errorf("benchmark %q not found in prices", in.Benchmark)
		}
		benchmark = indicators.ClosePrices(bars)
	}

	symbols := make([]string, 0, len(in.Prices))
	for symbol := range in.Prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	charts := make([]PriceChart, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			charts[i] = s.priceChart(symbol, in.Prices[symbol], overlays, benchmark)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build price charts: %w", err)
	}

	report := &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Charts:      charts,
	}

	for _, result := range in.Backtests {
		report.Backtests = append(report.Backtests, s.BacktestReport(result))
	}
	if len(in.Backtests) > 1 {
		comparison := s.Compare(in.Backtests)
		report.Comparison = &comparison
	}

	if len(in.Positions) > 0 {
		closes := make(map[string][]float64, len(in.Positions))
		for _, pos := range in.Positions {
			if bars, ok := in.Prices[pos.Symbol]; ok {
				closes[pos.Symbol] = indicators.ClosePrices(bars)
			}
		}
		portfolio := s.Portfolio(in.Positions, closes)
		report.Portfolio = &portfolio
	}

	timer.StopWithContext(map[string]interface{}{
		"report_id": report.ID,
		"charts":    len(report.Charts),
		"backtests": len(report.Backtests),
		"positions": len(in.Positions),
	})

	return report, nil
}

func (s *Service) resolveOverlays(requested []Overlay) ([]Overlay, error) {
	if len(requested) == 0 {
		return []Overlay{
			{Kind: string(indicators.KindSMA), Period: s.indicators.SMAPeriod},
			{Kind: string(indicators.KindEMA), Period: s.indicators.EMAPeriod},
		}, nil
	}

	for _, o := range requested {
		if _, err := indicators.ParseKind(o.Kind); err != nil {
			return nil, fmt.Errorf("invalid overlay: %w", err)
		}
		if o.Period <= 0 {
			return nil, fmt.Errorf("invalid overlay: %s period must be positive, got %d", o.Kind, o.Period)
		}
	}
	return requested, nil
}
