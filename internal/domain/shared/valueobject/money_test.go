package valueobject

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(12.5), USD)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, USD, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestParseCurrency(t *testing.T) {
	assert.Equal(t, USD, ParseCurrency(""))
	assert.Equal(t, Currency("EUR"), ParseCurrency(" eur "))
}

func TestSum(t *testing.T) {
	t.Run("sums amounts", func(t *testing.T) {
		total := Sum(USD, decimal.NewFromInt(5), decimal.NewFromInt(20), decimal.RequireFromString("0.25"))
		assert.True(t, total.Amount().Equal(decimal.RequireFromString("25.25")))
	})

	t.Run("empty sum is zero", func(t *testing.T) {
		assert.True(t, Sum(USD).IsZero())
	})
}

func TestMoney_MinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency Currency
		want     int64
	}{
		{"whole amount", "25", USD, 2500},
		{"two decimals", "19.99", USD, 1999},
		{"truncates extra precision", "10.129", USD, 1012},
		{"zero", "0", USD, 0},
		{"zero-decimal currency", "1500", "JPY", 1500},
		{"zero-decimal truncates fraction", "99.9", "KRW", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(decimal.RequireFromString(tt.amount), tt.currency)
			require.NoError(t, err)
			units, err := m.MinorUnits()
			require.NoError(t, err)
			assert.Equal(t, tt.want, units)
		})
	}
}

func TestMoney_MinorUnitsOverflow(t *testing.T) {
	for _, amount := range []string{"184467440737095516.17", "92233720368547758.08", "1e20", "-92233720368547758.09"} {
		t.Run(amount, func(t *testing.T) {
			m, err := NewMoney(decimal.RequireFromString(amount), USD)
			require.NoError(t, err)
			_, err = m.MinorUnits()
			assert.ErrorIs(t, err, ErrMinorUnitsOverflow)
		})
	}

	t.Run("largest chargeable amount", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("92233720368547758.07"), USD)
		require.NoError(t, err)
		units, err := m.MinorUnits()
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), units)
	})
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "7.50 USD", Sum(USD, decimal.RequireFromString("7.5")).String())
	assert.Equal(t, "300 JPY", Sum("JPY", decimal.NewFromInt(300)).String())
}
