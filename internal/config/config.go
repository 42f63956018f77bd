package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type APIConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
	DefaultDays  int `mapstructure:"default_days"`
	MaxDays      int `mapstructure:"max_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	DatabaseURL   string     `mapstructure:"database_url"`
	ServerPort    string     `mapstructure:"server_port"`
	LogLevel      string     `mapstructure:"log_level"`
	RunMigrations bool       `mapstructure:"run_migrations"`
	API           APIConfig  `mapstructure:"api"`
	CORS          CORSConfig `mapstructure:"cors"`
}

// EnvPrefix is prepended to every environment override, e.g. EXECDASH_DATABASE_URL
// or EXECDASH_API_MAX_LIMIT.
const EnvPrefix = "EXECDASH"

// Load reads config.yaml from the given directories (the current directory and
// ./config when none are given), applies environment overrides and defaults, and
// validates the result. A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "")
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("run_migrations", false)
	v.SetDefault("api.default_limit", 100)
	v.SetDefault("api.max_limit", 1000)
	v.SetDefault("api.default_days", 14)
	v.SetDefault("api.max_days", 365)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("database_url must be set in the config file or EXECDASH_DATABASE_URL")
	}
	if c.API.DefaultLimit <= 0 || c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("invalid api limits: default %d, max %d", c.API.DefaultLimit, c.API.MaxLimit)
	}
	if c.API.DefaultDays <= 0 || c.API.MaxDays < c.API.DefaultDays {
		return fmt.Errorf("invalid api days: default %d, max %d", c.API.DefaultDays, c.API.MaxDays)
	}
	return nil
}
