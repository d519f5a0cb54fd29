package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultReportStartDate = "2024-01-01"

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// activity source
	GarminBaseURL  string   `toml:"garmin_base_url"`
	GarminPageSize int      `toml:"garmin_page_size"`
	SourceCacheTTL Duration `toml:"source_cache_ttl"`
	SourceTimeout  Duration `toml:"source_timeout"`

	// report
	ReportStartDate          string   `toml:"report_start_date"`
	ReportCacheTTL           Duration `toml:"report_cache_ttl"`
	ReportRateLimitPerMinute int      `toml:"report_rate_limit_per_min"`

	// dashboard origins allowed by CORS
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration decodes TOML strings like "10m" or "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML config file and returns the config of the given environment,
// with defaults applied and validated.
func Load(env, path string) (*Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(env, string(configBytes))
}

func Parse(env, tomlContent string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(tomlContent, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.setDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

// ReportStart returns the default first day of the report.
func (c *Config) ReportStart() time.Time {
	start, err := time.ParseInLocation(time.DateOnly, c.ReportStartDate, time.Local)
	if err != nil {
		// validated on load
		start, _ = time.ParseInLocation(time.DateOnly, defaultReportStartDate, time.Local)
	}
	return start
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if _, err := time.Parse(time.DateOnly, c.ReportStartDate); err != nil {
		errs = append(errs, fmt.Errorf("report start date: %w", err))
	}
	if c.GarminPageSize < 0 {
		errs = append(errs, fmt.Errorf("negative garmin page size: %d", c.GarminPageSize))
	}
	if c.ReportRateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("negative report rate limit: %d", c.ReportRateLimitPerMinute))
	}
	return errors.Join(errs...)
}

func (c *Config) setDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.ReportStartDate == "" {
		c.ReportStartDate = defaultReportStartDate
	}
	if c.SourceCacheTTL.Duration == 0 {
		c.SourceCacheTTL.Duration = 10 * time.Minute
	}
	if c.SourceTimeout.Duration == 0 {
		c.SourceTimeout.Duration = 30 * time.Second
	}
	if c.ReportCacheTTL.Duration == 0 {
		c.ReportCacheTTL.Duration = 5 * time.Minute
	}
	if c.ReportRateLimitPerMinute == 0 {
		c.ReportRateLimitPerMinute = 60
	}
}
