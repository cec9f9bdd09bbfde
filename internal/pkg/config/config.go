package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogFile, when set, receives a JSON copy of every error-level log line.
	LogFile string `env:"LOG_FILE"`

	Auth     AuthConfig
	Tasks    TaskConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Reminder ReminderConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,  default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type TaskConfig struct {
	// EnforceOwnership scopes update and delete by created_by. Disabling it
	// lets any authenticated user mutate any task by id.
	EnforceOwnership bool `env:"ENFORCE_TASK_OWNERSHIP, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_manager"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type ReminderConfig struct {
	// Schedule is a cron spec; empty disables reminder delivery.
	Schedule  string `env:"REMINDER_SCHEDULE,   default=@every 1m"`
	Workers   int    `env:"REMINDER_WORKERS,    default=4"`
	BatchSize int    `env:"REMINDER_BATCH_SIZE, default=100"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Reminder.Workers < 0 || c.Reminder.BatchSize < 0 {
		errs = append(errs, errors.New("reminder workers and batch size must not be negative"))
	}
	return errors.Join(errs...)
}
