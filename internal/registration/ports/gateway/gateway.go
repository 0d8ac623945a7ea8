// Package gateway определяет порты внешних HTTP сервисов формы.
package gateway

import (
	"context"

	"regform/internal/registration/domain/entities"
)

// CountrySource загружает справочник стран.
type CountrySource interface {
	FetchCountries(ctx context.Context) ([]entities.Country, error)
}

// Submitter отправляет проверенный черновик на удаленный endpoint.
// Любая ошибка сети или ответ вне диапазона 2xx - это ошибка.
type Submitter interface {
	Submit(ctx context.Context, draft entities.Draft) error
}
