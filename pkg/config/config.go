// Package config loads run settings from a YAML file layered over built-in
// defaults, with secrets taken from the environment (optionally via a .env
// file).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Settings holds every tunable the pipeline and servers read. YAML keys
// override the defaults; zero values in the file mean "keep the default".
type Settings struct {
	// Market assumptions.
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	MarketReturn float64 `yaml:"market_return"`
	TaxRate      float64 `yaml:"tax_rate"`

	// Valuation assumptions.
	ForecastYears  int     `yaml:"forecast_years"`
	TerminalGrowth float64 `yaml:"terminal_growth"`

	// Analysis depth.
	TrendPeriods  int    `yaml:"trend_periods"`
	BenchmarkName string `yaml:"benchmark"`

	// Market data source.
	DataBaseURL string `yaml:"data_base_url"`

	// LLM narrative generation.
	LLMProvider string `yaml:"llm_provider"`
	LLMModel    string `yaml:"llm_model"`

	// HTTP server.
	ListenAddr string `yaml:"listen_addr"`
}

// Defaults returns the baseline settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		RiskFreeRate:   0.0725,
		MarketReturn:   0.13,
		TaxRate:        0.25,
		ForecastYears:  5,
		TerminalGrowth: 0.03,
		TrendPeriods:   4,
		BenchmarkName:  "^GSPC",
		LLMProvider:    "gemini",
		ListenAddr:     ":8080",
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error; a malformed one is. Load also sources a .env file when
// present so API keys and DATABASE_URL reach os.Getenv.
func Load(path string) (Settings, error) {
	godotenv.Load()

	settings := Defaults()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fileSettings Settings
	if err := yaml.Unmarshal(data, &fileSettings); err != nil {
		return settings, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	merge(&settings, fileSettings)
	return settings, nil
}

// merge copies non-zero file values over the defaults.
func merge(dst *Settings, src Settings) {
	if src.RiskFreeRate != 0 {
		dst.RiskFreeRate = src.RiskFreeRate
	}
	if src.MarketReturn != 0 {
		dst.MarketReturn = src.MarketReturn
	}
	if src.TaxRate != 0 {
		dst.TaxRate = src.TaxRate
	}
	if src.ForecastYears != 0 {
		dst.ForecastYears = src.ForecastYears
	}
	if src.TerminalGrowth != 0 {
		dst.TerminalGrowth = src.TerminalGrowth
	}
	if src.TrendPeriods != 0 {
		dst.TrendPeriods = src.TrendPeriods
	}
	if src.BenchmarkName != "" {
		dst.BenchmarkName = src.BenchmarkName
	}
	if src.DataBaseURL != "" {
		dst.DataBaseURL = src.DataBaseURL
	}
	if src.LLMProvider != "" {
		dst.LLMProvider = src.LLMProvider
	}
	if src.LLMModel != "" {
		dst.LLMModel = src.LLMModel
	}
	if src.ListenAddr != "" {
		dst.ListenAddr = src.ListenAddr
	}
}
