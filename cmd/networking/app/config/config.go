// Package config loads the CLI configuration from flags and NETWORKING_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/keboola/go-networking/pkg/provider"
)

const EnvPrefix = "NETWORKING"

// Config holds the CLI configuration, flags take precedence over the environment.
type Config struct {
	BaseURL  string `mapstructure:"base-url"`
	LogLevel string `mapstructure:"log-level"`
	Dump     bool   `mapstructure:"dump"`
}

// Load reads configuration from the flags and environment variables, e.g. NETWORKING_BASE_URL.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("log-level", "info")
	v.SetDefault("dump", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("cannot bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ProviderConfig maps the CLI configuration to the provider configuration.
func (c *Config) ProviderConfig(userAgent string) provider.Config {
	return provider.Config{
		BaseURL: c.BaseURL,
		Headers: map[string]string{"User-Agent": userAgent},
	}
}
