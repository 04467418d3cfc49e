// Package money holds currency amounts quoted in job posts.
package money

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

func (c Currency) String() string { return c.code }

// Currencies seen in Sri Lankan job posts.
var (
	LKR = MustCurrency("LKR")
	USD = MustCurrency("USD")
	INR = MustCurrency("INR")
)

// symbols maps lower-cased price prefixes to currencies. "Rs" is read as
// Sri Lankan rupees.
var symbols = map[string]Currency{
	"$":    USD,
	"usd":  USD,
	"rs":   LKR,
	"rs.":  LKR,
	"r.s":  LKR,
	"r.s.": LKR,
	"lkr":  LKR,
	"₹":    INR,
	"inr":  INR,
}

// CurrencyFromSymbol resolves a price prefix such as "Rs.", "$" or "LKR".
func CurrencyFromSymbol(symbol string) (Currency, bool) {
	c, ok := symbols[strings.ToLower(strings.TrimSpace(symbol))]
	return c, ok
}

// Money is an immutable amount in a currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromString parses an amount string and currency code into a Money value.
func NewFromString(amount, currency string) (Money, error) {
	cur, err := NewCurrency(currency)
	if err != nil {
		return Money{}, fmt.Errorf("invalid currency: %w", err)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{amount: d, currency: cur}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency.
func (m Money) Currency() Currency { return m.currency }

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the value as "<amount> <currency>", for example "50000 LKR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency.Code())
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON encodes {"amount": "50000", "currency": "LKR"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency.code})
}

// UnmarshalJSON decodes the MarshalJSON form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cur, err := NewCurrency(raw.Currency)
	if err != nil {
		return err
	}
	*m = Money{amount: raw.Amount, currency: cur}
	return nil
}

// Max returns the largest amount in currency c among values.
func Max(c Currency, values ...Money) (Money, bool) {
	var (
		best  Money
		found bool
	)
	for _, v := range values {
		if v.currency != c {
			continue
		}
		if !found || v.amount.GreaterThan(best.amount) {
			best, found = v, true
		}
	}
	return best, found
}
