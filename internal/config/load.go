package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables, e.g. ACCOUNTS_SERVER_PORT.
const EnvPrefix = "ACCOUNTS"

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultArgon2Params()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.connect_timeout", "1s")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("tracing.service_name", "account-api")
	v.SetDefault("tracing.otlp_endpoint", "")

	v.SetDefault("auth.argon2.memory", defaults.Memory)
	v.SetDefault("auth.argon2.iterations", defaults.Iterations)
	v.SetDefault("auth.argon2.parallelism", defaults.Parallelism)
	v.SetDefault("auth.argon2.salt_length", defaults.SaltLength)
	v.SetDefault("auth.argon2.key_length", defaults.KeyLength)
}

// Load configuration from environment variables and optionally a config
// file (config.yaml in the working directory). Environment variables take
// precedence over values from the file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.Auth.Argon2.Params().Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
