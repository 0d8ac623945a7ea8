// Package countries содержит HTTP клиент справочника стран.
package countries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"regform/internal/registration/domain/entities"
	"regform/internal/registration/ports/gateway"
	"regform/pkg/logger"
)

const (
	LogFetchStarted  = "fetching countries"
	LogFetchFinished = "countries fetched"

	ErrorFailedToFetch  = "failed to fetch countries"
	ErrorFailedToDecode = "failed to decode countries"
)

// ErrUnexpectedStatus возвращается при ответе вне диапазона 2xx.
var ErrUnexpectedStatus = errors.New("unexpected status code")

type countryDTO struct {
	CCA2 string `json:"cca2"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

// Client загружает страны в формате restcountries v3.1.
type Client struct {
	http *client.Client
	url  string
}

var _ gateway.CountrySource = (*Client)(nil)

// NewClient создает клиент. Нулевой timeout оставляет таймаут клиента по умолчанию.
func NewClient(url string, timeout time.Duration) *Client {
	c := client.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c, url: url}
}

// FetchCountries выполняет один GET запрос и сохраняет порядок ответа.
func (c *Client) FetchCountries(ctx context.Context) ([]entities.Country, error) {
	log := logger.Log(ctx).With(zap.String("url", c.url))
	log.Debug(ctx, LogFetchStarted)

	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToFetch, err)
	}
	defer resp.Close()

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, fmt.Errorf("%s: %w: %d", ErrorFailedToFetch, ErrUnexpectedStatus, status)
	}

	var payload []countryDTO
	if err := resp.JSON(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	result := make([]entities.Country, 0, len(payload))
	for _, dto := range payload {
		result = append(result, entities.Country{
			Code:    dto.CCA2,
			Name:    dto.Name.Common,
			FlagURL: dto.Flags.PNG,
		})
	}

	log.Debug(ctx, LogFetchFinished, zap.Int("count", len(result)))

	return result, nil
}
