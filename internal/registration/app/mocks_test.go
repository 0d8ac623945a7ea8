package app_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"regform/internal/registration/domain/entities"
)

type mockCountrySource struct {
	mock.Mock
}

func (m *mockCountrySource) FetchCountries(ctx context.Context) ([]entities.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Country), args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, draft entities.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification entities.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) All() []entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entities.Notification(nil), n.sent...)
}
