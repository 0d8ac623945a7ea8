// Package submission отправляет черновик регистрации на удаленный endpoint.
package submission

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
	LogSubmitRequest  = "posting registration"
	LogSubmitResponse = "registration endpoint responded"

	ErrorFailedToSubmit = "failed to submit registration"
)

// ErrRejected возвращается при ответе вне диапазона 2xx.
var ErrRejected = errors.New("registration endpoint rejected the request")

// Client выполняет POST с JSON телом, равным черновику. Тело ответа игнорируется.
type Client struct {
	http *client.Client
	url  string
}

var _ gateway.Submitter = (*Client)(nil)

func NewClient(url string, timeout time.Duration) *Client {
	c := client.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c, url: url}
}

// Submit отправляет черновик без заголовков авторизации.
func (c *Client) Submit(ctx context.Context, draft entities.Draft) error {
	log := logger.Log(ctx).With(zap.String("url", c.url))
	log.Debug(ctx, LogSubmitRequest)

	resp, err := c.http.R().SetContext(ctx).SetJSON(draft).Post(c.url)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSubmit, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	log.Debug(ctx, LogSubmitResponse, zap.Int("status", status))

	if status < 200 || status > 299 {
		return fmt.Errorf("%s: %w: %d", ErrorFailedToSubmit, ErrRejected, status)
	}

	return nil
}
