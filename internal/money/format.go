package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "Rp"

// Format возвращает представление суммы для отображения: «Rp 1.234.567,50».
// Результат используется только при выводе и никогда не разбирается обратно.
func Format(d decimal.Decimal) string {
	d = d.Round(2)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(currencySymbol)
	b.WriteString(" ")

	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(".")
		b.WriteString(intPart[i : i+3])
	}

	b.WriteString(",")
	b.WriteString(fracPart)
	return b.String()
}
