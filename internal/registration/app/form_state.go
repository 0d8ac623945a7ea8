// Package app содержит прикладную логику формы регистрации:
// состояние формы, загрузку стран, отправку и реестр сессий.
package app

import (
	"regform/internal/registration/domain/entities"
)

// FormState хранит текущий черновик и карту ошибок.
// Не потокобезопасен: синхронизацию обеспечивает Form.
type FormState struct {
	draft  entities.Draft
	errors entities.ErrorMap
}

// NewFormState создает пустое состояние формы.
func NewFormState() *FormState {
	return &FormState{errors: entities.ErrorMap{}}
}

// SetField перезаписывает одно поле и снимает ошибку только с него.
// Полная валидация не запускается.
func (s *FormState) SetField(name string, value any) error {
	if err := s.draft.Set(name, value); err != nil {
		return err
	}
	s.errors.Clear(name)
	return nil
}

// SetErrors заменяет карту ошибок целиком.
func (s *FormState) SetErrors(errs entities.ErrorMap) {
	s.errors = errs.Clone()
}

// Draft возвращает копию черновика.
func (s *FormState) Draft() entities.Draft {
	return s.draft
}

// Errors возвращает копию карты ошибок.
func (s *FormState) Errors() entities.ErrorMap {
	return s.errors.Clone()
}
