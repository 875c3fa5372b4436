// README: Money value object; all user-facing amounts are shown in the fixed planning currency.
package types

import "strconv"

// DefaultCurrency is the currency every prompt and flight price is rendered in.
const DefaultCurrency = "INR"

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

type Money struct {
	Amount   float64
	Currency string
}

// Symbol returns the display prefix for the currency, falling back to the ISO code.
func (m Money) Symbol() string {
	cur := m.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	if s, ok := currencySymbols[cur]; ok {
		return s
	}
	return cur + " "
}

// String renders the amount with its symbol prefix and no trailing zeros, e.g. "₹50000" or "₹1250.5".
func (m Money) String() string {
	return m.Symbol() + strconv.FormatFloat(m.Amount, 'f', -1, 64)
}
