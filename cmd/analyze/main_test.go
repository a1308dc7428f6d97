package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aristath/argent/internal/config"
	"github.com/aristath/argent/internal/modules/analytics"
	"github.com/aristath/argent/internal/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(format string) *config.Config {
	return &config.Config{
		OutputFormat: format,
		Indicators: config.IndicatorConfig{
			SMAPeriod:        3,
			EMAPeriod:        3,
			RSIPeriod:        3,
			BollingerPeriod:  3,
			BollingerStdDevs: 2,
			ATRPeriod:        3,
			TrendPeriod:      3,
		},
		Risk: config.RiskConfig{RollingWindow: 2, RiskFreeRate: 0.05, VaRConfidence: 0.95},
	}
}

func writeSnapshot(t *testing.T) string {
	t.Helper()

	var bars []string
	for i, c := range []float64{10, 11, 10.5, 12, 12.5, 11.8, 13} {
		bars = append(bars, fmt.Sprintf(
			`{"timestamp":"2024-02-%02dT00:00:00Z","open":%g,"high":%g,"low":%g,"close":%g,"volume":100}`,
			i+1, c, c+0.5, c-0.5, c))
	}
	snapshot := `{
		"prices": {"ETH-USD": [` + strings.Join(bars, ",") + `]},
		"positions": [
			{"symbol": "ETH-USD", "marketValue": 1300, "unrealizedPnL": 300, "allocation": 50},
			{"symbol": "BTC-USD", "marketValue": 1300, "unrealizedPnL": 0, "allocation": 50}
		]
	}`

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))
	return path
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), testConfig(report.FormatJSON), zerolog.Nop(), []string{writeSnapshot(t)}, &out)
	require.NoError(t, err)

	var rep analytics.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.Len(t, rep.Charts, 1)
	assert.Equal(t, "ETH-USD", rep.Charts[0].Symbol)
	require.Len(t, rep.Charts[0].Overlays, 2)
	assert.Len(t, rep.Charts[0].Overlays[0].Points, 5)
	assert.Equal(t, "2024-02-03", rep.Charts[0].Overlays[0].Points[0].Time)
	require.NotNil(t, rep.Portfolio)
	assert.Equal(t, 100, rep.Portfolio.Diversification)
}

func TestRun_MsgpackFromConfiguredPath(t *testing.T) {
	cfg := testConfig(report.FormatMsgpack)
	cfg.InputPath = writeSnapshot(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zerolog.Nop(), nil, &out))

	var rep analytics.Report
	require.NoError(t, report.Decode(&out, report.FormatMsgpack, &rep))
	assert.NotEmpty(t, rep.ID)
	assert.Len(t, rep.Charts, 1)
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(report.FormatJSON)

	err := run(context.Background(), cfg, zerolog.Nop(), nil, &out)
	assert.ErrorContains(t, err, "no input snapshot")

	err = run(context.Background(), cfg, zerolog.Nop(), []string{filepath.Join(t.TempDir(), "missing.json")}, &out)
	assert.ErrorContains(t, err, "failed to open input snapshot")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	err = run(context.Background(), cfg, zerolog.Nop(), []string{bad}, &out)
	assert.ErrorContains(t, err, "failed to read input snapshot")

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("{}"), 0o600))
	err = run(context.Background(), cfg, zerolog.Nop(), []string{empty}, &out)
	assert.ErrorContains(t, err, "failed to analyse snapshot")
	assert.Zero(t, out.Len())
}
