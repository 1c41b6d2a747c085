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
	Watchlist WatchlistConfig `yaml:"watchlist" mapstructure:"watchlist"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Render    RenderConfig    `yaml:"render" mapstructure:"render"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Score     ScoreConfig     `yaml:"score" mapstructure:"score"`
	Retain    RetainConfig    `yaml:"retain" mapstructure:"retain"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// WatchlistConfig locates the company registry.
type WatchlistConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// FetchConfig configures plain-HTTP retrieval.
type FetchConfig struct {
	TimeoutSecs     int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	HostRate        float64  `yaml:"host_rate" mapstructure:"host_rate"`
	HostBurst       int      `yaml:"host_burst" mapstructure:"host_burst"`
	RenderedDomains []string `yaml:"rendered_domains" mapstructure:"rendered_domains"`
}

// RenderConfig configures the headless rendering service used for
// JavaScript-heavy sources.
type RenderConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PipelineConfig configures a monitoring run.
type PipelineConfig struct {
	MaxAnnouncements       int    `yaml:"max_announcements" mapstructure:"max_announcements"`
	MaxConcurrentCompanies int    `yaml:"max_concurrent_companies" mapstructure:"max_concurrent_companies"`
	MaxConcurrentArticles  int    `yaml:"max_concurrent_articles" mapstructure:"max_concurrent_articles"`
	MinPublishDate         string `yaml:"min_publish_date" mapstructure:"min_publish_date"`
}

// ScoreConfig configures summary quality scoring.
type ScoreConfig struct {
	MinConfidence    float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	MinContentLength int     `yaml:"min_content_length" mapstructure:"min_content_length"`
	MinFeatureCount  int     `yaml:"min_feature_count" mapstructure:"min_feature_count"`
}

// RetainConfig configures per-company record retention.
type RetainConfig struct {
	Cap       int    `yaml:"cap" mapstructure:"cap"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// MetricsConfig configures the metrics store.
type MetricsConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	ReportDir    string `yaml:"report_dir" mapstructure:"report_dir"`
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
	v.SetEnvPrefix("INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("watchlist.path", "watchlist.json")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.host_rate", 2.0)
	v.SetDefault("fetch.host_burst", 4)
	v.SetDefault("fetch.rendered_domains", []string{
		"snowflake.com", "tableau.com", "powerbi.microsoft.com",
	})
	v.SetDefault("render.base_url", "https://r.jina.ai")
	v.SetDefault("pipeline.max_announcements", 5)
	v.SetDefault("pipeline.max_concurrent_companies", 3)
	v.SetDefault("pipeline.max_concurrent_articles", 4)
	v.SetDefault("pipeline.min_publish_date", "2025-01-01")
	v.SetDefault("score.min_confidence", 0.6)
	v.SetDefault("score.min_content_length", 100)
	v.SetDefault("score.min_feature_count", 1)
	v.SetDefault("retain.cap", 3)
	v.SetDefault("retain.output_dir", "summaries")
	v.SetDefault("metrics.database_path", "metrics.db")
	v.SetDefault("metrics.report_dir", "reports")
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

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent before a
// run starts. Collected problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if c.Pipeline.MaxAnnouncements < 1 {
		problems = append(problems, "pipeline.max_announcements must be >= 1")
	}
	if c.Pipeline.MaxConcurrentCompanies < 1 || c.Pipeline.MaxConcurrentCompanies > 50 {
		problems = append(problems, "pipeline.max_concurrent_companies must be between 1 and 50")
	}
	if c.Pipeline.MaxConcurrentArticles < 1 || c.Pipeline.MaxConcurrentArticles > 50 {
		problems = append(problems, "pipeline.max_concurrent_articles must be between 1 and 50")
	}
	if c.Score.MinConfidence < 0 || c.Score.MinConfidence > 1 {
		problems = append(problems, "score.min_confidence must be between 0 and 1")
	}
	if c.Score.MinContentLength < 0 {
		problems = append(problems, "score.min_content_length must be >= 0")
	}
	if c.Retain.Cap < 1 {
		problems = append(problems, "retain.cap must be >= 1")
	}
	if c.Fetch.TimeoutSecs < 1 {
		problems = append(problems, "fetch.timeout_secs must be >= 1")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
