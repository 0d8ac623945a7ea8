package config

import "time"

// ShutdownConfig - настройки корректного завершения.
type ShutdownConfig struct {
	Timeout int `env:"REGFORM_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения в виде Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
