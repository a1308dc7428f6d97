// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aristath/argent/internal/report"
	"github.com/joho/godotenv"
)

// Environment variable prefix for every setting
const envPrefix = "ARGENT_"

// Config holds application configuration
type Config struct {
	LogLevel     string
	LogPretty    bool
	InputPath    string // JSON snapshot to analyse; may be overridden by the first CLI argument
	OutputFormat string // json or msgpack
	Indicators   IndicatorConfig
	Risk         RiskConfig
}

// IndicatorConfig holds the indicator periods used by the analytics facade
type IndicatorConfig struct {
	SMAPeriod        int
	EMAPeriod        int
	RSIPeriod        int
	BollingerPeriod  int
	BollingerStdDevs float64
	ATRPeriod        int
	TrendPeriod      int
}

// RiskConfig holds performance and risk analytics parameters
type RiskConfig struct {
	RollingWindow int     // equity points per rolling volatility/Sharpe window
	RiskFreeRate  float64 // annual, as a fraction
	VaRConfidence float64 // e.g. 0.95
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", true),
		InputPath:    getEnv("INPUT_PATH", ""),
		OutputFormat: getEnv("OUTPUT_FORMAT", report.FormatJSON),
		Indicators: IndicatorConfig{
			SMAPeriod:        getEnvAsInt("SMA_PERIOD", 20),
			EMAPeriod:        getEnvAsInt("EMA_PERIOD", 12),
			RSIPeriod:        getEnvAsInt("RSI_PERIOD", 14),
			BollingerPeriod:  getEnvAsInt("BOLLINGER_PERIOD", 20),
			BollingerStdDevs: getEnvAsFloat("BOLLINGER_STDDEV", 2),
			ATRPeriod:        getEnvAsInt("ATR_PERIOD", 14),
			TrendPeriod:      getEnvAsInt("TREND_PERIOD", 20),
		},
		Risk: RiskConfig{
			RollingWindow: getEnvAsInt("ROLLING_WINDOW", 30),
			RiskFreeRate:  getEnvAsFloat("RISK_FREE_RATE", 0.05),
			VaRConfidence: getEnvAsFloat("VAR_CONFIDENCE", 0.95),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that periods are usable and the output format is known
func (c *Config) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"SMA_PERIOD", c.Indicators.SMAPeriod},
		{"EMA_PERIOD", c.Indicators.EMAPeriod},
		{"RSI_PERIOD", c.Indicators.RSIPeriod},
		{"BOLLINGER_PERIOD", c.Indicators.BollingerPeriod},
		{"ATR_PERIOD", c.Indicators.ATRPeriod},
		{"TREND_PERIOD", c.Indicators.TrendPeriod},
		{"ROLLING_WINDOW", c.Risk.RollingWindow},
	}
	for _, p := range periods {
		if p.value <= 0 {
			return fmt.Errorf("%s%s must be positive, got %d", envPrefix, p.name, p.value)
		}
	}

	if c.Indicators.BollingerStdDevs <= 0 {
		return fmt.Errorf("%sBOLLINGER_STDDEV must be positive, got %g", envPrefix, c.Indicators.BollingerStdDevs)
	}

	if c.Risk.VaRConfidence <= 0 || c.Risk.VaRConfidence >= 1 {
		return fmt.Errorf("%sVAR_CONFIDENCE must be between 0 and 1, got %g", envPrefix, c.Risk.VaRConfidence)
	}

	switch c.OutputFormat {
	case report.FormatJSON, report.FormatMsgpack:
	default:
		return fmt.Errorf("unsupported %sOUTPUT_FORMAT %q", envPrefix, c.OutputFormat)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
