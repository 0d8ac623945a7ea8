package entities

// ErrorMap сопоставляет имя поля с сообщением об ошибке.
// Отсутствие ключа означает, что поле сейчас корректно.
type ErrorMap map[string]string

// Valid возвращает true, если ошибок нет.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Has сообщает, есть ли ошибка у поля.
func (m ErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Clear удаляет ошибку одного поля.
func (m ErrorMap) Clear(field string) {
	delete(m, field)
}

// Clone возвращает независимую копию. Для nil возвращается пустая карта.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
