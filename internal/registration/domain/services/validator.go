// Package services содержит чистую доменную логику формы регистрации.
package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"regform/internal/registration/domain/entities"
)

// Сообщения об ошибках, показываемые пользователю рядом с полем.
const (
	MsgFirstName       = "Imię musi zawierać co najmniej 2 znaki"
	MsgLastName        = "Nazwisko musi zawierać co najmniej 2 znaki"
	MsgEmail           = "Podaj poprawny adres email"
	MsgPassword        = "Hasło musi mieć co najmniej 8 znaków"
	MsgConfirmPassword = "Hasła nie zgadzają się"
	MsgAge             = "Wiek musi być liczbą z przedziału 18-99"
	MsgBirthDate       = "Data urodzenia nie zgadza się z wiekiem"
	MsgCountry         = "Wybierz kraj"
	MsgTermsOfService  = "Zgoda na regulamin jest wymagana"
)

const (
	minNameLength     = "2"
	minPasswordLength = "8"
	minAge            = 18
	maxAge            = 99
	epochYear         = 1970
)

// nonSpace - любой символ кроме пробельных в смысле Unicode: \s в RE2
// покрывает только ASCII, поэтому \v, \p{Z} и U+FEFF перечислены явно.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]`

// Намеренно свободная проверка формы адреса, а не RFC 5322.
var emailShape = regexp.MustCompile(nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+`)

var birthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"2006",
}

// Validate проверяет черновик и возвращает карту ошибок.
// Все правила независимы и вычисляются всегда; пустая карта означает валидную форму.
func Validate(d entities.Draft) entities.ErrorMap {
	errs := entities.ErrorMap{}

	if !validName(d.FirstName) {
		errs[entities.FieldFirstName] = MsgFirstName
	}
	if !validName(d.LastName) {
		errs[entities.FieldLastName] = MsgLastName
	}
	if govalidator.IsNull(d.Email) || !emailShape.MatchString(d.Email) {
		errs[entities.FieldEmail] = MsgEmail
	}
	if govalidator.IsNull(d.Password) || !govalidator.MinStringLength(d.Password, minPasswordLength) {
		errs[entities.FieldPassword] = MsgPassword
	}
	if d.Password != d.ConfirmPassword {
		errs[entities.FieldConfirmPassword] = MsgConfirmPassword
	}
	if !validAge(d.Age) {
		errs[entities.FieldAge] = MsgAge
	}
	if birthDateConflicts(d.BirthDate, d.Age) {
		errs[entities.FieldBirthDate] = MsgBirthDate
	}
	if d.Country == "" {
		errs[entities.FieldCountry] = MsgCountry
	}
	if !d.TermsOfServiceAgreement {
		errs[entities.FieldTermsOfServiceAgreement] = MsgTermsOfService
	}

	return errs
}

func validName(name string) bool {
	return !govalidator.IsNull(name) && govalidator.MinStringLength(name, minNameLength)
}

func validAge(age string) bool {
	if govalidator.IsNull(age) {
		return false
	}
	n, ok := parseNumber(age)
	if !ok {
		return false
	}
	return n >= minAge && n <= maxAge
}

// birthDateConflicts сохраняет исходное правило дословно:
// age + 1970 - year > age, что сводится к "год рождения < 1970".
// Возраст из даты здесь не вычисляется.
func birthDateConflicts(birthDate, age string) bool {
	if birthDate == "" || age == "" {
		return false
	}
	n, ok := parseNumber(age)
	if !ok {
		return false
	}
	year, ok := birthYear(birthDate)
	if !ok {
		return false
	}
	return n+epochYear-float64(year) > n
}

// parseNumber разбирает числовой текст по правилам поля ввода числа:
// пробелы по краям игнорируются, пустая строка равна нулю, NaN не является числом.
func parseNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, true
	}
	if !govalidator.IsFloat(trimmed) {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func birthYear(s string) (int, bool) {
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
