// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"data" yaml:"data"`

	Ledger struct {
		Convention      string `mapstructure:"convention" yaml:"convention"`
		DisplayCurrency string `mapstructure:"display_currency" yaml:"display_currency"`
		WeekStart       string `mapstructure:"week_start" yaml:"week_start"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Dashboard struct {
		PendingMinMonths int `mapstructure:"pending_min_months" yaml:"pending_min_months"`
		PendingLimit     int `mapstructure:"pending_limit" yaml:"pending_limit"`
		RankingLimit     int `mapstructure:"ranking_limit" yaml:"ranking_limit"`
		RecentLimit      int `mapstructure:"recent_limit" yaml:"recent_limit"`
	} `mapstructure:"dashboard" yaml:"dashboard"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Report struct {
		MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"`
	} `mapstructure:"report" yaml:"report"`

	Server struct {
		Port                int `mapstructure:"port" yaml:"port"`
		ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.lendtrack")
	v.AddConfigPath(".lendtrack")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("LENDTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration made of default values only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults always decode into Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.file", "lendtrack.yaml")

	v.SetDefault("ledger.convention", string(models.DefaultConvention))
	v.SetDefault("ledger.display_currency", models.DefaultCurrency)
	v.SetDefault("ledger.week_start", "sunday")

	opts := dashboard.DefaultOptions()
	v.SetDefault("dashboard.pending_min_months", opts.PendingMinMonths)
	v.SetDefault("dashboard.pending_limit", opts.PendingLimit)
	v.SetDefault("dashboard.ranking_limit", opts.RankingLimit)
	v.SetDefault("dashboard.recent_limit", opts.RecentLimit)

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("report.markdown_style", "auto")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 10)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Data.File == "" {
		return fmt.Errorf("data.file must not be empty")
	}

	if _, err := models.ParseConvention(config.Ledger.Convention); err != nil {
		return fmt.Errorf("ledger.convention: %w", err)
	}

	if len(config.Ledger.DisplayCurrency) != 3 {
		return fmt.Errorf("ledger.display_currency must be a 3-letter ISO code, got: %s", config.Ledger.DisplayCurrency)
	}

	if _, err := dateutils.ParseWeekday(config.Ledger.WeekStart); err != nil {
		return fmt.Errorf("ledger.week_start: %w", err)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Dashboard.PendingMinMonths < 0 {
		return fmt.Errorf("dashboard.pending_min_months must not be negative, got: %d", config.Dashboard.PendingMinMonths)
	}
	for name, limit := range map[string]int{
		"dashboard.pending_limit": config.Dashboard.PendingLimit,
		"dashboard.ranking_limit": config.Dashboard.RankingLimit,
		"dashboard.recent_limit":  config.Dashboard.RecentLimit,
	} {
		if limit < 1 {
			return fmt.Errorf("%s must be positive, got: %d", name, limit)
		}
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}
	if config.Server.ReadTimeoutSeconds < 1 || config.Server.WriteTimeoutSeconds < 1 {
		return fmt.Errorf("server timeouts must be positive")
	}

	return nil
}

// Convention returns the configured interest convention. The configuration
// has been validated, so an unparsable value cannot occur here.
func (c *Config) Convention() models.Convention {
	conv, err := models.ParseConvention(c.Ledger.Convention)
	if err != nil {
		return models.DefaultConvention
	}
	return conv
}

// WeekStart returns the first day of week buckets.
func (c *Config) WeekStart() time.Weekday {
	day, err := dateutils.ParseWeekday(c.Ledger.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return day
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if r := []rune(c.CSV.Delimiter); len(r) > 0 {
		return r[0]
	}
	return ','
}

// DashboardOptions returns the dashboard limits.
func (c *Config) DashboardOptions() dashboard.Options {
	return dashboard.Options{
		PendingMinMonths: c.Dashboard.PendingMinMonths,
		PendingLimit:     c.Dashboard.PendingLimit,
		RankingLimit:     c.Dashboard.RankingLimit,
		RecentLimit:      c.Dashboard.RecentLimit,
	}
}

// Address returns the listen address of the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ReadTimeout returns the HTTP read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the HTTP write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}
