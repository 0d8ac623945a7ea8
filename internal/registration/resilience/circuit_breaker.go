// Package resilience защищает отправку формы от недоступного endpoint.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"regform/pkg/logger"
)

// CircuitState - состояние Circuit Breaker.
type CircuitState int

const (
	// StateClosed - запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - запросы отклоняются без обращения к сети.
	StateOpen
	// StateHalfOpen - пропускаются пробные запросы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда запрос отклонен без выполнения.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig - пороги переключения.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до перехода в open.
	ErrorThreshold int
	// Timeout - время в open до перехода в half-open.
	Timeout time.Duration
	// SuccessThreshold - число успехов в half-open до перехода в closed.
	SuccessThreshold int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker не повторяет запросы: он только решает, выполнять ли вызов.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// BreakerOption настраивает CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) BreakerOption {
	return func(cb *CircuitBreaker) {
		cb.now = now
	}
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig, opts ...BreakerOption) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:   name,
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
	for _, opt := range opts {
		opt(cb)
	}
	cb.lastStateChange = cb.now()
	return cb
}

// Execute выполняет fn, если breaker пропускает запрос, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest проверяет, можно ли выполнить запрос.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) >= cb.config.Timeout {
			cb.transition(ctx, StateHalfOpen)
			return true
		}
		logger.Log(ctx).Info(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
		return false
	default:
		return false
	}
}

// RecordResult учитывает исход выполненного запроса.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure(ctx)
		return
	}
	cb.onSuccess(ctx)
}

func (cb *CircuitBreaker) onFailure(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			logger.Log(ctx).Warn(ctx, LogCircuitTrip,
				zap.String("circuit_breaker", cb.name), zap.Int("failures", cb.failures))
			cb.transition(ctx, StateOpen)
		}
	case StateHalfOpen:
		cb.transition(ctx, StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

// transition вызывается под cb.mu.
func (cb *CircuitBreaker) transition(ctx context.Context, to CircuitState) {
	from := cb.state
	cb.state = to
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0

	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
