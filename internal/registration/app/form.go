package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"regform/internal/registration/domain/entities"
	"regform/internal/registration/domain/services"
	"regform/internal/registration/metrics"
	"regform/internal/registration/ports/gateway"
	"regform/internal/registration/ports/notify"
	"regform/pkg/logger"
)

// Сообщения уведомлений для пользователя.
const (
	MsgSubmitSucceeded = "Rejestracja udana! Dane zostały wysłane do konsoli."
	MsgSubmitFailed    = "Wystąpił problem podczas rejestracji. Spróbuj ponownie."
)

const (
	LogCountriesLoading    = "form: loading countries"
	LogCountriesLoaded     = "form: countries loaded"
	LogCountriesFailed     = "Error fetching countries"
	LogSubmitInvalid       = "form: validation failed"
	LogSubmitStarted       = "form: submitting registration"
	LogSubmitSucceeded     = "form: registration submitted"
	LogSubmitFailed        = "Error during registration"
	LogSubmitBusy          = "form: submission already in progress"
	LogCountryNotAvailable = "form: country is not selectable"
)

// Ошибки формы.
var (
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrCountryNotSelectable = errors.New("country is not in the loaded country list")
)

// SubmitStatus - исход попытки отправки.
type SubmitStatus string

const (
	SubmitInvalid   SubmitStatus = "invalid"
	SubmitSucceeded SubmitStatus = "succeeded"
	SubmitFailed    SubmitStatus = "failed"
)

// SubmitResult описывает результат Submit.
type SubmitResult struct {
	Status       SubmitStatus
	Errors       entities.ErrorMap
	Notification *entities.Notification
}

// Snapshot - согласованная копия состояния формы.
type Snapshot struct {
	Draft      entities.Draft
	Errors     entities.ErrorMap
	Submitting bool
}

// CountriesView - копия списка стран с его состоянием.
type CountriesView struct {
	State     entities.ListState
	Countries []entities.Country
}

// Form - один экземпляр формы регистрации.
type Form struct {
	mu         sync.Mutex
	state      *FormState
	countries  entities.CountryList
	submitting bool

	initOnce sync.Once
	ready    chan struct{}

	countrySource gateway.CountrySource
	submitter     gateway.Submitter
	notifier      notify.Notifier
	metrics       *metrics.Metrics
}

// Option настраивает Form.
type Option func(*Form)

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Form) {
		f.metrics = m
	}
}

// NewForm создает форму с пустым черновиком. Список стран остается в состоянии
// pending до вызова Init.
func NewForm(countrySource gateway.CountrySource, submitter gateway.Submitter, notifier notify.Notifier, opts ...Option) *Form {
	f := &Form{
		state:         NewFormState(),
		ready:         make(chan struct{}),
		countrySource: countrySource,
		submitter:     submitter,
		notifier:      notifier,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init загружает список стран. Запрос выполняется ровно один раз за время жизни
// формы; повторные вызовы ничего не делают. Ошибка только логируется.
func (f *Form) Init(ctx context.Context) {
	f.initOnce.Do(func() {
		defer close(f.ready)
		f.loadCountries(ctx)
	})
}

// Ready закрывается, когда загрузка стран завершена успехом или ошибкой.
func (f *Form) Ready() <-chan struct{} {
	return f.ready
}

func (f *Form) loadCountries(ctx context.Context) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogCountriesLoading)

	countries, err := f.countrySource.FetchCountries(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		log.Error(ctx, LogCountriesFailed, zap.Error(err))
		_ = f.countries.Fail(err)
		f.metrics.IncCountryLoad(entities.ListFailed.String())
		return
	}

	_ = f.countries.Load(countries)
	f.metrics.IncCountryLoad(entities.ListLoaded.String())
	log.Info(ctx, LogCountriesLoaded, zap.Int("count", len(countries)))
}

// SetField изменяет одно поле и снимает его ошибку.
// Страну можно выбрать только из загруженного списка; пустое значение снимает выбор.
func (f *Form) SetField(ctx context.Context, name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if name == entities.FieldCountry {
		if code, ok := value.(string); ok && code != "" && !f.countries.Contains(code) {
			logger.Log(ctx).Debug(ctx, LogCountryNotAvailable,
				zap.String("code", code),
				zap.String("list_state", f.countries.State().String()))
			return fmt.Errorf("%w: %q", ErrCountryNotSelectable, code)
		}
	}

	return f.state.SetField(name, value)
}

// Snapshot возвращает копию черновика, ошибок и флага отправки.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		Draft:      f.state.Draft(),
		Errors:     f.state.Errors(),
		Submitting: f.submitting,
	}
}

// Countries возвращает текущее состояние списка стран.
func (f *Form) Countries() CountriesView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return CountriesView{
		State:     f.countries.State(),
		Countries: f.countries.Countries(),
	}
}

// Submit проверяет черновик и при успехе отправляет его.
// Пока идет отправка, повторный вызов возвращает ErrSubmissionInProgress.
// Сетевая ошибка не возвращается как error: она превращается в уведомление.
func (f *Form) Submit(ctx context.Context) (*SubmitResult, error) {
	log := logger.Log(ctx)

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		log.Warn(ctx, LogSubmitBusy)
		f.metrics.IncSubmission(metrics.OutcomeBusy)
		return nil, ErrSubmissionInProgress
	}
	f.submitting = true

	draft := f.state.Draft()
	errs := services.Validate(draft)
	f.state.SetErrors(errs)
	f.mu.Unlock()

	defer f.finishSubmitting()

	if !errs.Valid() {
		log.Info(ctx, LogSubmitInvalid, zap.Int("invalid_fields", len(errs)))
		f.metrics.IncSubmission(metrics.OutcomeInvalid)
		f.metrics.IncValidationErrors(errs)
		return &SubmitResult{Status: SubmitInvalid, Errors: errs}, nil
	}

	log.Info(ctx, LogSubmitStarted)
	start := time.Now()
	err := f.submitter.Submit(ctx, draft)
	f.metrics.ObserveSubmitLatency(time.Since(start))

	if err != nil {
		log.Error(ctx, LogSubmitFailed, zap.Error(err))
		f.metrics.IncSubmission(metrics.OutcomeFailed)
		n := entities.Notification{Kind: entities.NotificationFailure, Message: MsgSubmitFailed}
		f.notifier.Notify(ctx, n)
		return &SubmitResult{Status: SubmitFailed, Errors: entities.ErrorMap{}, Notification: &n}, nil
	}

	n := entities.Notification{Kind: entities.NotificationSuccess, Message: MsgSubmitSucceeded}
	f.notifier.Notify(ctx, n)
	log.Info(ctx, LogSubmitSucceeded, zap.Any("payload", draft.Masked()))
	f.metrics.IncSubmission(metrics.OutcomeSucceeded)

	return &SubmitResult{Status: SubmitSucceeded, Errors: entities.ErrorMap{}, Notification: &n}, nil
}

func (f *Form) finishSubmitting() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
