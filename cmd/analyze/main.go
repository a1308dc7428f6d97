// Package main is the command-line driver for the argent analytics engine.
// It reads a JSON market snapshot (price bars, backtest results and positions),
// runs every analytics component over it and writes one report to stdout as
// JSON or msgpack. Logs go to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aristath/argent/internal/config"
	"github.com/aristath/argent/internal/modules/analytics"
	"github.com/aristath/argent/internal/report"
	"github.com/aristath/argent/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		stop()
		os.Exit(1)
	}
}

// run resolves the input path (first argument, else ARGENT_INPUT_PATH), analyses
// the snapshot and encodes the report to out in the configured format.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string, out io.Writer) error {
	path := cfg.InputPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no input snapshot: pass a path or set ARGENT_INPUT_PATH")
	}

	in, err := loadInput(path)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", path).
		Int("symbols", len(in.Prices)).
		Int("backtests", len(in.Backtests)).
		Int("positions", len(in.Positions)).
		Msg("Analysing snapshot")

	svc := analytics.NewService(cfg, log)
	rep, err := svc.Snapshot(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to analyse snapshot: %w", err)
	}

	if err := report.Encode(out, cfg.OutputFormat, rep); err != nil {
		return err
	}

	log.Info().
		Str("report_id", rep.ID).
		Str("format", cfg.OutputFormat).
		Msg("Report written")

	return nil
}

func loadInput(path string) (analytics.Input, error) {
	var in analytics.Input

	f, err := os.Open(path)
	if err != nil {
		return in, fmt.Errorf("failed to open input snapshot: %w", err)
	}
	defer f.Close()

	if err := report.Decode(f, report.FormatJSON, &in); err != nil {
		return in, fmt.Errorf("failed to read input snapshot %s: %w", path, err)
	}

	return in, nil
}
