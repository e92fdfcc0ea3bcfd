// Package money содержит точную десятичную арифметику для цен, скидок и итогов очереди.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var unsignedDecimal = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// Parse разбирает введённую пользователем строку как беззнаковое десятичное число.
// Возвращает false для любого ввода, не совпадающего с шаблоном «цифры[.цифры]».
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !unsignedDecimal.MatchString(s) {
		return decimal.Zero, false
	}

	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Multiply умножает цену на количество без промежуточного округления.
func Multiply(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtract вычитает скидку из суммы.
func Subtract(amount, discount decimal.Decimal) decimal.Decimal {
	return amount.Sub(discount)
}

// Sum складывает значения; для пустого списка возвращает ноль.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// LineTotal вычисляет итог строки заказа: price*quantity - discount.
func LineTotal(price decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return Subtract(Multiply(price, quantity), discount)
}
