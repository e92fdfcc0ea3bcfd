// Package validation содержит проверки пользовательского ввода, выполняемые до сетевого запроса.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/antrian-client/internal/money"
)

// Error описывает нарушение правила ввода для конкретного поля.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Reason
}

// Required проверяет, что поле не пустое и не состоит из одних пробелов.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Reason: "is required"}
	}
	return nil
}

// Amount разбирает неотрицательную сумму (баланс, скидку).
func Amount(field, value string) (decimal.Decimal, error) {
	d, ok := money.Parse(value)
	if !ok {
		return decimal.Zero, &Error{Field: field, Reason: "must be a valid number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &Error{Field: field, Reason: "must not be negative"}
	}
	return d, nil
}

// Price разбирает строго положительную цену.
func Price(field, value string) (decimal.Decimal, error) {
	d, err := Amount(field, value)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, &Error{Field: field, Reason: "must be greater than zero"}
	}
	return d, nil
}

// Quantity проверяет, что количество товара не меньше единицы.
func Quantity(field string, q int) error {
	if q < 1 {
		return &Error{Field: field, Reason: "must be at least 1"}
	}
	return nil
}

// NonNegative проверяет, что сумма не отрицательна.
func NonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &Error{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// Email выполняет поверхностную проверку адреса: непустой, ровно одна «@» с текстом по обе стороны.
func Email(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	local, domain, ok := strings.Cut(strings.TrimSpace(value), "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return &Error{Field: field, Reason: "must be a valid email address"}
	}
	return nil
}
