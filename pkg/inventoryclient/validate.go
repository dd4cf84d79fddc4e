package inventoryclient

import (
	"sort"
	"strings"
)

// minISBNLength — минимальная длина ISBN, которую требует форма ввода
const minISBNLength = 10

// ValidationError описывает нарушения правил формы до отправки на сервер
// Сервер эти правила намеренно не проверяет, поэтому единственный рубеж — здесь
type ValidationError struct {
	// Fields: имя поля -> сообщение
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate проверяет поля новой книги по правилам формы:
// title/author непустые, ISBN не короче 10 символов, количество и цена неотрицательные
func (input BookInput) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(input.Author) == "" {
		fields["author"] = "Author is required"
	}
	if len(input.ISBN) < minISBNLength {
		fields["isbn"] = "ISBN must be at least 10 characters"
	}
	if input.Quantity < 0 {
		fields["quantity"] = "Quantity must be positive"
	}
	if input.Price < 0 {
		fields["price"] = "Price must be positive"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate проверяет только переданные (не-nil) поля частичного обновления
func (patch BookPatch) Validate() error {
	fields := make(map[string]string)

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		fields["title"] = "Title is required"
	}
	if patch.Author != nil && strings.TrimSpace(*patch.Author) == "" {
		fields["author"] = "Author is required"
	}
	if patch.ISBN != nil && len(*patch.ISBN) < minISBNLength {
		fields["isbn"] = "ISBN must be at least 10 characters"
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		fields["quantity"] = "Quantity must be positive"
	}
	if patch.Price != nil && *patch.Price < 0 {
		fields["price"] = "Price must be positive"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
