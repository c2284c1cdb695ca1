package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Prices are Colombian pesos. COP has no meaningful cents, so every
// formatter renders whole units with es-CO digit grouping ("1.234.567").
var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatPrice renders an amount as a COP price string, e.g. "$ 1.234.567".
// The amount is rounded to the nearest whole unit.
func FormatPrice(amount float64) string {
	return "$ " + FormatNumber(amount)
}

// FormatNumber renders an amount with es-CO grouping and no decimals.
func FormatNumber(amount float64) string {
	return printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// DiscountedPrice applies a percentage discount to a unit price.
// A non-positive discount leaves the price untouched. Callers guarantee
// 0 <= discountPercent <= 100, so the result is never negative.
func DiscountedPrice(price, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return price
	}
	return price * (1 - discountPercent/100)
}

// Savings returns the absolute amount saved against the undiscounted price.
func Savings(price, discounted float64) float64 {
	s := price - discounted
	if s < 0 {
		return 0
	}
	return s
}
