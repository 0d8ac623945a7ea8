package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"regform/internal/registration/metrics"
	"regform/pkg/logger"
)

const (
	LogSessionOpened = "session opened"
	LogSessionClosed = "session closed"
)

// ErrSessionNotFound возвращается для неизвестного идентификатора сессии.
var ErrSessionNotFound = errors.New("form session not found")

// FormFactory создает новую форму для сессии.
type FormFactory func() *Form

// Sessions хранит формы в памяти процесса по идентификатору.
type Sessions struct {
	mu      sync.RWMutex
	forms   map[string]*Form
	factory FormFactory
	metrics *metrics.Metrics
}

// NewSessions создает пустой реестр сессий.
func NewSessions(factory FormFactory, m *metrics.Metrics) *Sessions {
	return &Sessions{
		forms:   make(map[string]*Form),
		factory: factory,
		metrics: m,
	}
}

// Open создает форму, регистрирует ее и запускает загрузку стран в фоне.
// Загрузка не привязана к ctx запроса: она живет вместе с формой.
func (s *Sessions) Open(ctx context.Context) (string, *Form) {
	id := uuid.NewString()
	form := s.factory()

	s.mu.Lock()
	s.forms[id] = form
	s.mu.Unlock()
	s.metrics.SessionOpened()

	initCtx := logger.NewRequestIDContext(context.Background(), requestIDOf(ctx))
	go form.Init(initCtx)

	logger.Log(ctx).Info(ctx, LogSessionOpened, zap.String("session_id", id))
	return id, form
}

// Get возвращает форму сессии.
func (s *Sessions) Get(id string) (*Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return form, nil
}

// Close удаляет сессию.
func (s *Sessions) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.forms[id]
	delete(s.forms, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.metrics.SessionClosed()
	logger.Log(ctx).Info(ctx, LogSessionClosed, zap.String("session_id", id))
	return nil
}

// Len возвращает число открытых сессий.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

func requestIDOf(ctx context.Context) string {
	id, _ := logger.GetRequestID(ctx)
	return id
}
