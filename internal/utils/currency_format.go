package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencySymbols covers the currencies the bank offers. Other currencies are prefixed
// with their ISO code.
var currencySymbols = map[string]string{
	"KRW": "₩",
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
}

// CurrencyScale returns the number of minor-unit digits of an ISO 4217 currency.
// Unknown codes get 2.
func CurrencyScale(code string) int {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// FormatAmount renders a signed amount with the currency symbol, grouping the integer
// part the way tag expects. Example: -500000 KRW in ko gives "-₩500,000".
func FormatAmount(amount decimal.Decimal, currencyCode string, tag language.Tag) string {
	code := strings.ToUpper(currencyCode)
	scale := CurrencyScale(code)
	rounded := amount.Round(int32(scale))

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	if symbol, ok := currencySymbols[code]; ok {
		b.WriteString(symbol)
	} else if code != "" {
		b.WriteString(code + " ")
	}

	magnitude := rounded.Abs()
	b.WriteString(message.NewPrinter(tag).Sprintf("%d", magnitude.IntPart()))
	if scale > 0 {
		fixed := magnitude.StringFixed(int32(scale))
		b.WriteString(fixed[strings.IndexByte(fixed, '.'):])
	}
	return b.String()
}
