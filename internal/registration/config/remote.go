package config

import "time"

// RemoteConfig - адреса внешних сервисов.
// Timeout 0 оставляет таймаут HTTP клиента по умолчанию.
type RemoteConfig struct {
	CountriesURL string        `env:"REGFORM_COUNTRIES_URL" env-default:"https://restcountries.com/v3.1/all"`
	SubmitURL    string        `env:"REGFORM_SUBMIT_URL" env-default:"https://your-api-endpoint.com/register"`
	Timeout      time.Duration `env:"REGFORM_REMOTE_TIMEOUT" env-default:"0s"`
}
