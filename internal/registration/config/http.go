package config

import (
	"fmt"
	"time"
)

// HTTPConfig - настройки HTTP сервера формы.
type HTTPConfig struct {
	Host         string        `env:"REGFORM_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"REGFORM_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"REGFORM_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"REGFORM_HTTP_WRITE_TIMEOUT" env-default:"30s"`
}

// GetAddress возвращает адрес в формате host:port.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
