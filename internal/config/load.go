package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file and use the TASKBOARD_
// prefix with underscores (e.g., TASKBOARD_SERVER_PORT).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one. The JWT secret and
	// database URL deliberately have none.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("mail.port", 25)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so keys without
	// defaults must be bound explicitly for AutomaticEnv to pick them up.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"mail.host",
		"mail.username",
		"mail.password",
		"mail.sender",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// A missing config file is fine; env vars and defaults cover it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
