package entities

// NotificationKind различает исход отправки формы.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationFailure NotificationKind = "failure"
)

// Notification - сообщение, которое пользователь должен подтвердить.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
