package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the valuation batch job.
type Config struct {
	ServiceName  string `yaml:"service_name"`
	Env          string `yaml:"env"`
	LogLevel     string `yaml:"log_level"`
	BaseCurrency string `yaml:"base_currency"`

	CurrenciesPath string `yaml:"currencies_path"`
	ProductsPath   string `yaml:"products_path"`
	MatchingsPath  string `yaml:"matchings_path"`
	OutputPath     string `yaml:"output_path"`
}

func defaults() *Config {
	return &Config{
		ServiceName:    "valuation",
		Env:            "dev",
		LogLevel:       "info",
		BaseCurrency:   "PLN",
		CurrenciesPath: "currencies.csv",
		ProductsPath:   "data.csv",
		MatchingsPath:  "matchings.csv",
		OutputPath:     "top_products.csv",
	}
}

// Load resolves configuration in three layers: built-in defaults, an optional
// YAML file named by VALUATION_CONFIG (with ${VAR} references expanded), and
// environment variable overrides. An optional .env file is honored first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("VALUATION_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ServiceName = GetEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.Env = GetEnv("ENV", cfg.Env)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.BaseCurrency = GetEnv("BASE_CURRENCY", cfg.BaseCurrency)
	cfg.CurrenciesPath = GetEnv("CURRENCIES_PATH", cfg.CurrenciesPath)
	cfg.ProductsPath = GetEnv("PRODUCTS_PATH", cfg.ProductsPath)
	cfg.MatchingsPath = GetEnv("MATCHINGS_PATH", cfg.MatchingsPath)
	cfg.OutputPath = GetEnv("OUTPUT_PATH", cfg.OutputPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that cannot run at all.
func (c *Config) Validate() error {
	if c.BaseCurrency == "" {
		return fmt.Errorf("base_currency must not be empty")
	}
	if c.CurrenciesPath == "" {
		return fmt.Errorf("currencies_path must not be empty")
	}
	if c.ProductsPath == "" {
		return fmt.Errorf("products_path must not be empty")
	}
	if c.MatchingsPath == "" {
		return fmt.Errorf("matchings_path must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	return nil
}
