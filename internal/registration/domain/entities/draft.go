// Package entities содержит модель данных формы регистрации.
package entities

import (
	"errors"
	"fmt"
)

// Имена полей формы. Совпадают с ключами JSON payload и ключами ErrorMap.
const (
	FieldFirstName               = "firstName"
	FieldLastName                = "lastName"
	FieldEmail                   = "email"
	FieldPassword                = "password"
	FieldConfirmPassword         = "confirmPassword"
	FieldAge                     = "age"
	FieldBirthDate               = "birthDate"
	FieldCountry                 = "country"
	FieldGender                  = "gender"
	FieldMarketingAgreement      = "marketingAgreement"
	FieldTermsOfServiceAgreement = "termsOfServiceAgreement"
)

// Ошибки изменения черновика.
var (
	ErrUnknownField      = errors.New("unknown form field")
	ErrInvalidFieldValue = errors.New("invalid value for form field")
	ErrInvalidGender     = errors.New("gender must be empty, male or female")
)

// Gender - необязательный выбор пола.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid сообщает, входит ли значение в допустимый набор.
func (g Gender) Valid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

// Draft - незавершенные данные регистрации. Нулевое значение - пустая форма.
type Draft struct {
	FirstName               string `json:"firstName"`
	LastName                string `json:"lastName"`
	Email                   string `json:"email"`
	Password                string `json:"password"`
	ConfirmPassword         string `json:"confirmPassword"`
	Age                     string `json:"age"`
	BirthDate               string `json:"birthDate"`
	Country                 string `json:"country"`
	Gender                  Gender `json:"gender"`
	MarketingAgreement      bool   `json:"marketingAgreement"`
	TermsOfServiceAgreement bool   `json:"termsOfServiceAgreement"`
}

// Fields возвращает имена всех полей в порядке формы.
func Fields() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldEmail,
		FieldPassword,
		FieldConfirmPassword,
		FieldAge,
		FieldBirthDate,
		FieldCountry,
		FieldGender,
		FieldMarketingAgreement,
		FieldTermsOfServiceAgreement,
	}
}

// IsBoolField сообщает, хранит ли поле флаг согласия.
func IsBoolField(name string) bool {
	return name == FieldMarketingAgreement || name == FieldTermsOfServiceAgreement
}

// Set перезаписывает одно поле. При ошибке черновик не изменяется.
func (d *Draft) Set(name string, value any) error {
	if IsBoolField(name) {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean, got %T", ErrInvalidFieldValue, name, value)
		}
		if name == FieldMarketingAgreement {
			d.MarketingAgreement = b
		} else {
			d.TermsOfServiceAgreement = b
		}
		return nil
	}

	target := d.stringField(name)
	if target == nil && name != FieldGender {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidFieldValue, name, value)
	}

	if name == FieldGender {
		g := Gender(s)
		if !g.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidFieldValue, ErrInvalidGender)
		}
		d.Gender = g
		return nil
	}

	*target = s
	return nil
}

func (d *Draft) stringField(name string) *string {
	switch name {
	case FieldFirstName:
		return &d.FirstName
	case FieldLastName:
		return &d.LastName
	case FieldEmail:
		return &d.Email
	case FieldPassword:
		return &d.Password
	case FieldConfirmPassword:
		return &d.ConfirmPassword
	case FieldAge:
		return &d.Age
	case FieldBirthDate:
		return &d.BirthDate
	case FieldCountry:
		return &d.Country
	default:
		return nil
	}
}

// Masked возвращает копию с замаскированными паролями для записи в лог.
func (d Draft) Masked() Draft {
	const mask = "********"
	if d.Password != "" {
		d.Password = mask
	}
	if d.ConfirmPassword != "" {
		d.ConfirmPassword = mask
	}
	return d
}
