// Package dto содержит тела запросов и ответов HTTP API формы.
package dto

import "regform/internal/registration/domain/entities"

// CreateFormResponse - ответ на создание сессии формы.
type CreateFormResponse struct {
	ID string `json:"id"`
}

// FormResponse - состояние формы.
type FormResponse struct {
	ID         string            `json:"id"`
	Draft      entities.Draft    `json:"draft"`
	Errors     map[string]string `json:"errors"`
	Submitting bool              `json:"submitting"`
}

// CountriesResponse - список стран и стадия его загрузки.
type CountriesResponse struct {
	State     string             `json:"state"`
	Countries []entities.Country `json:"countries"`
}

// SetFieldRequest - новое значение поля: строка или bool.
type SetFieldRequest struct {
	Value any `json:"value"`
}

// SubmitResponse - исход отправки.
type SubmitResponse struct {
	Status       string                 `json:"status"`
	Errors       map[string]string      `json:"errors"`
	Notification *entities.Notification `json:"notification,omitempty"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
