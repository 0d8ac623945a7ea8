// Package config содержит конфигурацию сервиса формы регистрации.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "regform/pkg/config"
	"regform/pkg/logger"
)

const (
	ServiceName = "regform"

	// EnvFileVar указывает путь к необязательному .env файлу.
	EnvFileVar     = "REGFORM_ENV_FILE"
	DefaultEnvFile = "deploy/.env"

	LogConfigSummary = "registration form configuration"
)

// Config - полная конфигурация сервиса.
type Config struct {
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Shutdown ShutdownConfig
	Remote   RemoteConfig
	Redis    RedisConfig
	Breaker  BreakerConfig
}

// Load читает конфигурацию из .env файла и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	envFile := os.Getenv(EnvFileVar)
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("countries_url", cfg.Remote.CountriesURL),
		zap.String("submit_url", cfg.Remote.SubmitURL),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("breaker_enabled", cfg.Breaker.Enabled))

	return cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Development) {
		return logger.Development
	}
	return logger.Production
}
