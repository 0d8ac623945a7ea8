package resilience

import (
	"context"

	"regform/internal/registration/domain/entities"
	"regform/internal/registration/ports/gateway"
)

// Submitter пропускает отправку через CircuitBreaker. Отклоненный запрос
// возвращает ErrCircuitOpen и для формы неотличим от сетевой ошибки.
type Submitter struct {
	next    gateway.Submitter
	breaker *CircuitBreaker
}

var _ gateway.Submitter = (*Submitter)(nil)

func NewSubmitter(next gateway.Submitter, breaker *CircuitBreaker) *Submitter {
	return &Submitter{next: next, breaker: breaker}
}

func (s *Submitter) Submit(ctx context.Context, draft entities.Draft) error {
	return s.breaker.Execute(ctx, func() error {
		return s.next.Submit(ctx, draft)
	})
}
