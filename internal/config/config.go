// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`
	Rank       RankConfig       `yaml:"rank" mapstructure:"rank"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FetchConfig configures upstream source retrieval. HDIBulkURL points at the
// UNDP composite-indices extract; ftp:// mirrors are supported alongside
// https.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	HDIBulkURL  string `yaml:"hdi_bulk_url" mapstructure:"hdi_bulk_url"`
}

// ValidationConfig configures cross-source reconciliation.
//
// MinSources: sources required before a value counts as cross-validated;
// below it the entry is flagged and no agreement score is computed.
// Threshold: inclusive agreement floor in [0,1] for "validated".
// Policy: reconciled value on multi-source entries, "mean" or "primary".
type ValidationConfig struct {
	MinSources int     `yaml:"min_sources" mapstructure:"min_sources"`
	Threshold  float64 `yaml:"threshold" mapstructure:"threshold"`
	Policy     string  `yaml:"policy" mapstructure:"policy"`
}

// RankConfig configures ranked list sizes.
type RankConfig struct {
	TopN    int `yaml:"top_n" mapstructure:"top_n"`
	BottomN int `yaml:"bottom_n" mapstructure:"bottom_n"`
}

// OutputConfig configures report emission.
type OutputConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// NotionConfig holds the optional Notion publishing sink.
type NotionConfig struct {
	Token string `yaml:"token" mapstructure:"token"`
	RunDB string `yaml:"run_db" mapstructure:"run_db"`
}

// AnthropicConfig holds the optional AI narrative generator settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ECONINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "econ-intel.db")
	v.SetDefault("fetch.user_agent", "econ-intel/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.hdi_bulk_url", "https://hdr.undp.org/sites/default/files/2023-24_HDR/HDR23-24_Composite_indices_complete_time_series.csv")
	v.SetDefault("validation.min_sources", 2)
	v.SetDefault("validation.threshold", 0.95)
	v.SetDefault("validation.policy", "mean")
	v.SetDefault("rank.top_n", 10)
	v.SetDefault("rank.bottom_n", 10)
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.formats", []string{"markdown", "json"})
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent. A failure
// here is fatal: the run must not start with a broken threshold.
func (c *Config) Validate() error {
	if c.Validation.Threshold < 0 || c.Validation.Threshold > 1 {
		return eris.Errorf("config: validation.threshold %v outside [0,1]", c.Validation.Threshold)
	}
	if c.Validation.MinSources < 2 {
		// Agreement is pairwise; a single source can never cross-validate.
		return eris.Errorf("config: validation.min_sources must be >= 2, got %d", c.Validation.MinSources)
	}
	switch c.Validation.Policy {
	case "mean", "primary":
	default:
		return eris.Errorf("config: validation.policy must be mean or primary, got %q", c.Validation.Policy)
	}
	if c.Rank.TopN < 0 || c.Rank.BottomN < 0 {
		return eris.Errorf("config: rank sizes must be non-negative, got top=%d bottom=%d", c.Rank.TopN, c.Rank.BottomN)
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	for _, format := range c.Output.Formats {
		switch format {
		case "markdown", "json":
		default:
			return eris.Errorf("config: unknown output format %q", format)
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
