package config

import "time"

// BreakerConfig - настройки circuit breaker для отправки формы.
type BreakerConfig struct {
	Enabled          bool          `env:"REGFORM_BREAKER_ENABLED" env-default:"true"`
	ErrorThreshold   int           `env:"REGFORM_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	OpenTimeout      time.Duration `env:"REGFORM_BREAKER_OPEN_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `env:"REGFORM_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
}
