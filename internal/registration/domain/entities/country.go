package entities

import "errors"

// ErrCountryListSettled возвращается при попытке изменить уже загруженный или неудавшийся список.
var ErrCountryListSettled = errors.New("country list is already settled")

// Country описывает страну из справочника.
type Country struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	FlagURL string `json:"flagUrl"`
}

// ListState - стадия жизненного цикла списка стран.
type ListState int

const (
	ListPending ListState = iota
	ListLoaded
	ListFailed
)

func (s ListState) String() string {
	switch s {
	case ListPending:
		return "pending"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CountryList - упорядоченный список стран, заполняемый один раз.
// Нулевое значение - список в состоянии pending.
type CountryList struct {
	state     ListState
	countries []Country
	failure   string
}

// Load переводит список в состояние loaded.
func (l *CountryList) Load(countries []Country) error {
	if l.state != ListPending {
		return ErrCountryListSettled
	}
	l.countries = append([]Country(nil), countries...)
	l.state = ListLoaded
	return nil
}

// Fail переводит список в состояние failed; список остается пустым.
func (l *CountryList) Fail(cause error) error {
	if l.state != ListPending {
		return ErrCountryListSettled
	}
	l.state = ListFailed
	if cause != nil {
		l.failure = cause.Error()
	}
	return nil
}

func (l *CountryList) State() ListState {
	return l.state
}

// Failure возвращает текст ошибки загрузки, если она была.
func (l *CountryList) Failure() string {
	return l.failure
}

// Countries возвращает копию списка в исходном порядке.
func (l *CountryList) Countries() []Country {
	return append([]Country(nil), l.countries...)
}

func (l *CountryList) Len() int {
	return len(l.countries)
}

// Contains сообщает, можно ли выбрать страну с данным кодом.
func (l *CountryList) Contains(code string) bool {
	for _, c := range l.countries {
		if c.Code == code {
			return true
		}
	}
	return false
}
