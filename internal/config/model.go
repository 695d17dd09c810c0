package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the full client configuration, loaded from config.yaml,
// GEOLEARN_* environment variables, and defaults.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Retry   RetryConfig   `mapstructure:"retry" yaml:"retry"`
	Breaker BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig locates the remote learning API and bounds each call.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// RetryConfig bounds the transport's automatic retry. MaxAttempts counts
// retries after the first attempt; Wait is the initial backoff, doubled per
// attempt up to MaxWait.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Wait        time.Duration `mapstructure:"wait" yaml:"wait"`
	MaxWait     time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
}

// BreakerConfig controls the circuit breaker shared across caller contexts.
type BreakerConfig struct {
	Threshold uint32        `mapstructure:"threshold" yaml:"threshold"`
	Cooldown  time.Duration `mapstructure:"cooldown" yaml:"cooldown"`
}

// CacheConfig enables the response cache and sets per-dataset TTLs.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`

	TheoremsTTL        time.Duration `mapstructure:"theorems_ttl" yaml:"theorems_ttl"`
	AnswerOptionsTTL   time.Duration `mapstructure:"answer_options_ttl" yaml:"answer_options_ttl"`
	FeedbackOptionsTTL time.Duration `mapstructure:"feedback_options_ttl" yaml:"feedback_options_ttl"`
	TriangleTypesTTL   time.Duration `mapstructure:"triangle_types_ttl" yaml:"triangle_types_ttl"`
}

// LoggingConfig controls logrus level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Host returns the host part of the API base URL, used to key persisted
// session credentials.
func (c *Config) Host() (string, error) {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	return u.Host, nil
}
