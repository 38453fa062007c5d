package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read by Load, e.g. RWS_LOG_LEVEL sets log.level.
const EnvPrefix = "RWS_"

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. YAML configuration file at path, skipped when path is empty
// 3. Default values (lowest priority)
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with overrides, e.g. command line flags, applied above
// environment variables. Keys are dotted paths such as log.level.
func LoadWithOverrides(path string, overrides map[string]any) (*Config, error) {
	return load(overrides, func(k *koanf.Koanf) error {
		if path == "" {
			return nil
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	})
}

// LoadBytes is Load with the YAML document given in memory.
func LoadBytes(data []byte) (*Config, error) {
	return load(nil, func(k *koanf.Koanf) error {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to parse configuration: %w", err)
		}
		return nil
	})
}

func load(overrides map[string]any, loadDocument func(k *koanf.Koanf) error) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := loadDocument(k); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// RWS_CIRCUITBREAKER_MAXREQUESTS -> circuitbreaker.maxrequests
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"timeout":      "30s",
		"retries":      0,
		"retrybackoff": "0s",
		"useragent":    "rwsclient",

		"log.level":  "info",
		"log.pretty": false,

		"circuitbreaker.enabled":             false,
		"circuitbreaker.maxrequests":         1,
		"circuitbreaker.consecutivefailures": 5,
		"circuitbreaker.interval":            "0s",
		"circuitbreaker.timeout":             "60s",

		"ratelimit.rps":   0,
		"ratelimit.burst": 1,

		"metrics.enabled": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
