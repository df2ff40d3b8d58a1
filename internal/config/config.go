package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Scrape   ScrapeConfig   `yaml:"scrape" envconfig:"SCRAPE"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration. A RateLimitRPS of zero
// disables rate limiting.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"0" validate:"min=0"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"20" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ScrapeConfig contains acquisition configuration for the NSE equity page
type ScrapeConfig struct {
	URL          string        `yaml:"url" envconfig:"URL" default:"https://www.nseindia.com/market-data/live-equity-market?symbol=NIFTY 50" validate:"required"`
	Headless     bool          `yaml:"headless" envconfig:"HEADLESS" default:"true"`
	PageTimeout  time.Duration `yaml:"page_timeout" envconfig:"PAGE_TIMEOUT" default:"60s" validate:"gt=0"`
	DownloadWait time.Duration `yaml:"download_wait" envconfig:"DOWNLOAD_WAIT" default:"30s" validate:"gt=0"`
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"POLL_INTERVAL" default:"500ms" validate:"gt=0"`
}

// AnalysisConfig contains the extract thresholds and sizes.
// Defaults reproduce the standard daily summary: five records per extract,
// "well below high" means last price at or under 70% of the 52-week high,
// "well above low" means last price at or over 120% of the 52-week low.
type AnalysisConfig struct {
	ExtractSize        int     `yaml:"extract_size" envconfig:"EXTRACT_SIZE" default:"5" validate:"min=1"`
	BelowHighThreshold float64 `yaml:"below_high_threshold" envconfig:"BELOW_HIGH_THRESHOLD" default:"0.7" validate:"gt=0"`
	AboveLowThreshold  float64 `yaml:"above_low_threshold" envconfig:"ABOVE_LOW_THRESHOLD" default:"1.2" validate:"gt=0"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (NIFTY_ prefix) take precedence over the YAML file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NIFTY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Server.RateLimitRPS == 0 {
		envConfig.Server.RateLimitRPS = fileConfig.Server.RateLimitRPS
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Scrape.URL == "" {
		envConfig.Scrape.URL = fileConfig.Scrape.URL
	}
	if envConfig.Analysis.ExtractSize == 0 {
		envConfig.Analysis.ExtractSize = fileConfig.Analysis.ExtractSize
	}
	if envConfig.Analysis.BelowHighThreshold == 0 {
		envConfig.Analysis.BelowHighThreshold = fileConfig.Analysis.BelowHighThreshold
	}
	if envConfig.Analysis.AboveLowThreshold == 0 {
		envConfig.Analysis.AboveLowThreshold = fileConfig.Analysis.AboveLowThreshold
	}

	return envConfig
}

// normalize coerces logging settings to the supported output modes
func (c *Config) normalize() {
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
}

// validate validates the configuration using struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitBurst:  20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Scrape: ScrapeConfig{
			URL:          "https://www.nseindia.com/market-data/live-equity-market?symbol=NIFTY 50",
			Headless:     true,
			PageTimeout:  60 * time.Second,
			DownloadWait: 30 * time.Second,
			PollInterval: 500 * time.Millisecond,
		},
		Analysis: AnalysisConfig{
			ExtractSize:        5,
			BelowHighThreshold: 0.7,
			AboveLowThreshold:  1.2,
		},
	}
}
