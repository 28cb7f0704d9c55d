package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Outbox     OutboxConfig
	Storage    StorageConfig
	Superadmin SuperadminConfig
	Email      EmailConfig
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type OutboxConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RetryLimit   int           `mapstructure:"retry_limit"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
}

// StorageConfig comes from the environment only. Bucket credentials never
// belong in the config file.
type StorageConfig struct {
	Bucket    string `envconfig:"S3_BUCKET"`
	Region    string `envconfig:"AWS_REGION" default:"us-east-1"`
	PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

type SuperadminConfig struct {
	// Allowlist holds account emails that are always treated as
	// super admins, even before the database flag is set.
	Allowlist    []string      `mapstructure:"allowlist"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.channel", "appsaloes:events")
	viper.SetDefault("outbox.batch_size", 100)
	viper.SetDefault("outbox.poll_interval", "5s")
	viper.SetDefault("outbox.retry_limit", 3)
	viper.SetDefault("outbox.retry_delay", "1s")
	viper.SetDefault("superadmin.check_timeout", "3s")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.Storage); err != nil {
		return nil, fmt.Errorf("failed to read storage environment: %w", err)
	}

	return &config, nil
}
