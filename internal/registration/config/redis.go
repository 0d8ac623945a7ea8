package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig - настройки кэша списка стран.
type RedisConfig struct {
	Enabled         bool          `env:"REGFORM_REDIS_ENABLED" env-default:"false"`
	Host            string        `env:"REGFORM_REDIS_HOST" env-default:"localhost"`
	Port            int           `env:"REGFORM_REDIS_PORT" env-default:"6379"`
	Password        string        `env:"REGFORM_REDIS_PASSWORD" env-default:""`
	DB              int           `env:"REGFORM_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `env:"REGFORM_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"REGFORM_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `env:"REGFORM_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `env:"REGFORM_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `env:"REGFORM_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `env:"REGFORM_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `env:"REGFORM_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	CountriesTTL    time.Duration `env:"REGFORM_REDIS_COUNTRIES_TTL" env-default:"24h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
