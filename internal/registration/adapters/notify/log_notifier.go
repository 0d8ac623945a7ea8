// Package notify содержит реализации уведомлений пользователя.
package notify

import (
	"context"

	"go.uber.org/zap"

	"regform/internal/registration/domain/entities"
	"regform/internal/registration/ports/notify"
	"regform/pkg/logger"
)

const LogNotification = "user notification"

// LogNotifier пишет уведомление в журнал. Ответ HTTP несет то же
// уведомление, поэтому журнал - только след для оператора.
type LogNotifier struct{}

var _ notify.Notifier = LogNotifier{}

func NewLogNotifier() LogNotifier {
	return LogNotifier{}
}

func (LogNotifier) Notify(ctx context.Context, n entities.Notification) {
	log := logger.Log(ctx)
	fields := []zap.Field{
		zap.String("kind", string(n.Kind)),
		zap.String("message", n.Message),
	}

	if n.Kind == entities.NotificationFailure {
		log.Warn(ctx, LogNotification, fields...)
		return
	}
	log.Info(ctx, LogNotification, fields...)
}
