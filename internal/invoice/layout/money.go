package layout

import (
	"fmt"
	"math"
	"strings"
)

// FormatMoney renders a minor-unit amount with its currency code. Currency is
// always an explicit parameter so renderers stay pure; there is no ambient
// default beyond the USD fallback for a blank code.
func FormatMoney(amount int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	value := float64(amount) / 100.0
	return fmt.Sprintf("%s %.2f", currency, value)
}

// FormatQuantity drops trailing zeros so "2.00" reads as "2" and "1.50" as
// "1.5".
func FormatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

// LineTotal computes the minor-unit total of a quantity priced at unitCost
// minor units, rounded half away from zero to the nearest minor unit.
func LineTotal(quantity float64, unitCost int64) int64 {
	return int64(math.Round(quantity * float64(unitCost)))
}
