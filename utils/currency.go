package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount the way the distributor prints it on
// documents: "$ 1.703.500,00". Stored values are never altered.
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "$ " + b.String() + "," + fracPart
}
