package config

import (
	"time"

	"github.com/phrazzld/account-api/internal/domain"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the account store: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a PostgreSQL connection string, or a file path for sqlite.
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// TracingConfig controls OpenTelemetry tracing. Export is disabled while
// OTLPEndpoint is empty.
type TracingConfig struct {
	ServiceName  string `mapstructure:"service_name" validate:"required"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"omitempty,url"`
}

// AuthConfig contains credential hashing settings.
type AuthConfig struct {
	Argon2 Argon2Config `mapstructure:"argon2" validate:"required"`
}

// Argon2Config holds Argon2id cost parameters. Memory is in KiB.
type Argon2Config struct {
	Memory      uint32 `mapstructure:"memory" validate:"gte=8"`
	Iterations  uint32 `mapstructure:"iterations" validate:"gte=1"`
	Parallelism uint8  `mapstructure:"parallelism" validate:"gte=1"`
	SaltLength  uint32 `mapstructure:"salt_length" validate:"gte=8"`
	KeyLength   uint32 `mapstructure:"key_length" validate:"gte=16"`
}

// Params converts the configuration into domain hashing parameters.
func (c Argon2Config) Params() domain.Argon2Params {
	return domain.Argon2Params{
		Memory:      c.Memory,
		Iterations:  c.Iterations,
		Parallelism: c.Parallelism,
		SaltLength:  c.SaltLength,
		KeyLength:   c.KeyLength,
	}
}
