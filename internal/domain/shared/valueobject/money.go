package valueobject

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an upper-case ISO 4217 code
type Currency string

const USD Currency = "USD"

// DefaultCurrency prices the menu when no payment network says otherwise
const DefaultCurrency = USD

// zeroDecimal lists currencies the payment network charges in whole units
var zeroDecimal = map[Currency]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "JPY": true,
	"KMF": true, "KRW": true, "MGA": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// ParseCurrency normalises a code; blank means DefaultCurrency
func ParseCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return Currency(code)
}

// Exponent is the number of minor-unit digits charged for c
func (c Currency) Exponent() int32 {
	if zeroDecimal[c] {
		return 0
	}
	return 2
}

// Money is an immutable amount in one currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// Sum totals cart line prices. Prices are stored exactly, so no rounding happens here.
func Sum(currency Currency, amounts ...decimal.Decimal) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Money{amount: total, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// ErrMinorUnitsOverflow is returned when an amount has no int64 minor-unit form
var ErrMinorUnitsOverflow = errors.New("amount exceeds the chargeable range")

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// MinorUnits is the integer amount sent to the payment network, truncated toward zero
func (m Money) MinorUnits() (int64, error) {
	units := m.amount.Shift(m.currency.Exponent()).Truncate(0)
	if units.GreaterThan(maxMinorUnits) || units.LessThan(minMinorUnits) {
		return 0, ErrMinorUnitsOverflow
	}
	return units.IntPart(), nil
}

func (m Money) String() string {
	return m.amount.StringFixed(m.currency.Exponent()) + " " + string(m.currency)
}
