package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "EXECDASH_"

// Config holds the settings shared by every execdash command.
type Config struct {
	APIURL   string        `koanf:"api_url"`
	Instance string        `koanf:"instance"`
	Limit    int           `koanf:"limit"`
	Days     int           `koanf:"days"`
	Refresh  time.Duration `koanf:"refresh"`
	Timeout  time.Duration `koanf:"timeout"`
	Verbose  bool          `koanf:"verbose"`
}

var defaults = map[string]interface{}{
	"api_url":  "http://localhost:8080",
	"instance": "",
	"limit":    100,
	"days":     14,
	"refresh":  "30s",
	"timeout":  "10s",
	"verbose":  false,
}

// configKeys are the flags that feed the config; command-specific flags are not merged.
var configKeys = map[string]bool{
	"api_url": true, "instance": true, "limit": true, "days": true,
	"refresh": true, "timeout": true, "verbose": true,
}

// LoadConfig merges defaults, EXECDASH_* environment variables and explicitly set
// flags, in increasing order of precedence.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// EXECDASH_API_URL -> api_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !configKeys[key] {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}
	if c.Refresh < 0 {
		return fmt.Errorf("refresh must not be negative")
	}
	return nil
}

type configKey struct{}

// GetConfig returns the config loaded for the running command, or loads defaults
// and environment when the command ran without the root pre-run.
func GetConfig(ctx context.Context) (*Config, error) {
	if c, ok := ctx.Value(configKey{}).(*Config); ok && c != nil {
		return c, nil
	}
	return LoadConfig(nil)
}
