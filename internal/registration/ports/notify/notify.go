// Package notify определяет порт уведомлений пользователя.
package notify

import (
	"context"

	"regform/internal/registration/domain/entities"
)

// Notifier доставляет пользователю сообщение об исходе отправки формы.
type Notifier interface {
	Notify(ctx context.Context, n entities.Notification)
}
