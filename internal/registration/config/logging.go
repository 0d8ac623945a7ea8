package config

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `env:"REGFORM_LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"REGFORM_LOGGER_MODE" env-default:"production"`
}
