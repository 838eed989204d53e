package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subcycle/subcycle/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Redis      RedisConfig
	Email      EmailConfig
	Payments   PaymentsConfig `validate:"required"`
	Retry      RetryConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// RedisConfig configures the kv store backing all entities
type RedisConfig struct {
	URL            string        `validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	ReplyTo     string `mapstructure:"reply_to"`
}

// PaymentsConfig configures the simulated payment gateway. SuccessRate is the
// probability that a settlement attempt is approved.
type PaymentsConfig struct {
	SuccessRate float64 `mapstructure:"success_rate" validate:"gte=0,lte=1"`
	Seed        int64
}

// RetryConfig configures the failed payment retry sweep
type RetryConfig struct {
	// Schedule is a cron expression for how often the sweep runs
	Schedule string `validate:"required"`
	// MarkerTTL is how long a retry marker lives before the store expires it
	MarkerTTL time.Duration `mapstructure:"marker_ttl" validate:"required"`
	// SweepWorkers bounds how many markers are processed concurrently
	SweepWorkers int `mapstructure:"sweep_workers" validate:"gte=1"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/subcycle")

	v.SetEnvPrefix("SUBCYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.connect_timeout", "30s")
	v.SetDefault("email.enabled", false)
	v.SetDefault("payments.success_rate", 0.9)
	v.SetDefault("retry.schedule", "0 * * * *")
	v.SetDefault("retry.marker_ttl", "24h")
	v.SetDefault("retry.sweep_workers", 4)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests, without reading any config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Redis:      RedisConfig{URL: "redis://localhost:6379/0", ConnectTimeout: 30 * time.Second},
		Payments:   PaymentsConfig{SuccessRate: 0.9},
		Retry: RetryConfig{
			Schedule:     "0 * * * *",
			MarkerTTL:    24 * time.Hour,
			SweepWorkers: 4,
		},
	}
}
