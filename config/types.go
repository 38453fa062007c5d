package config

import "time"

// Config is the connection and CLI configuration.
type Config struct {
	BaseURL      string        `koanf:"baseurl" validate:"required,url"`
	Username     string        `koanf:"username"`
	Password     string        `koanf:"password"`
	Timeout      time.Duration `koanf:"timeout" validate:"gte=0"`
	Retries      int           `koanf:"retries" validate:"gte=0,lte=255"`
	RetryBackoff time.Duration `koanf:"retrybackoff" validate:"gte=0"`
	UserAgent    string        `koanf:"useragent"`

	Log            LogConfig            `koanf:"log"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
	RateLimit      RateLimitConfig      `koanf:"ratelimit"`
	Metrics        MetricsConfig        `koanf:"metrics"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty"`
}

// CircuitBreakerConfig applies per operation; only transport failures count.
type CircuitBreakerConfig struct {
	Enabled             bool          `koanf:"enabled"`
	MaxRequests         uint32        `koanf:"maxrequests"`
	ConsecutiveFailures uint32        `koanf:"consecutivefailures" validate:"gte=1"`
	Interval            time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout             time.Duration `koanf:"timeout" validate:"gte=0"`
}

// RateLimitConfig caps outgoing requests per second; zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"gte=0"`
	Burst int     `koanf:"burst" validate:"gte=0"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// HasCredentials reports whether both username and password are set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
