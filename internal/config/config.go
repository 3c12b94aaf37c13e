package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "CMB_"

// DefaultSourceURL is the LAMBDA copy of the FIRAS monopole spectrum.
const DefaultSourceURL = "https://lambda.gsfc.nasa.gov/data/cobe/firas/monopole_spec/firas_monopole_spec_v1.txt"

// Config holds all pipeline settings.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Remote ingestion. With RemoteEnabled false the embedded backup is used directly.
	RemoteEnabled bool          `koanf:"remote_enabled"`
	SourceURL     string        `koanf:"source_url"`
	UserAgent     string        `koanf:"user_agent"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout"`

	PlotEnabled bool   `koanf:"plot_enabled"`
	PlotPath    string `koanf:"plot_path"`

	// MetricsTextfile, when set, receives the metric registry in Prometheus text format.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Kafka publishing is enabled when KafkaBrokers is non-empty (comma separated).
	KafkaBrokers string `koanf:"kafka_brokers"`
	KafkaTopic   string `koanf:"kafka_topic"`

	// HTTPAddr, when set, keeps the process serving the report until interrupted.
	HTTPAddr        string        `koanf:"http_addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		RemoteEnabled:   true,
		SourceURL:       DefaultSourceURL,
		UserAgent:       "Mozilla/5.0",
		FetchTimeout:    10 * time.Second,
		PlotEnabled:     true,
		PlotPath:        "cobe_analysis_result.png",
		KafkaTopic:      "cmb-fit-results",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config by layering defaults, an optional YAML file named by
// CMB_CONFIG, and CMB_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// CMB_FETCH_TIMEOUT -> fetch_timeout. Keys are flat, so underscores are kept.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.RemoteEnabled {
		u, err := url.Parse(c.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: source_url %q", ErrInvalidConfig, c.SourceURL)
		}
		if c.FetchTimeout <= 0 {
			return fmt.Errorf("%w: fetch_timeout must be positive", ErrInvalidConfig)
		}
	}
	if c.PlotEnabled && c.PlotPath == "" {
		return fmt.Errorf("%w: plot_path is required when plot_enabled is true", ErrInvalidConfig)
	}
	if len(c.Brokers()) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("%w: kafka_topic is required when kafka_brokers is set", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Brokers splits KafkaBrokers into addresses, dropping empty entries.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
