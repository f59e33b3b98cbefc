package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductExtendedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		expected string
	}{
		{"integer price", "1000", 2, "2000"},
		{"fractional price", "10.5", 3, "31.5"},
		{"zero quantity", "630", 0, "0"},
		{"unit quantity", "4000", 1, "4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: d(tt.price), Quantity: tt.quantity}
			got := p.ExtendedPrice()
			assert.True(t, got.Equal(d(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestCurrencyTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   CurrencyTable
		wantErr bool
	}{
		{"valid table", CurrencyTable{"GBP": d("2.4"), "EU": d("2.1"), "PLN": d("1.0")}, false},
		{"base currency absent", CurrencyTable{"GBP": d("2.4")}, false},
		{"zero ratio", CurrencyTable{"GBP": d("0")}, true},
		{"negative ratio", CurrencyTable{"GBP": d("-2.4")}, true},
		{"base ratio not one", CurrencyTable{"PLN": d("1.5")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate("PLN")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCurrencyTableRatio(t *testing.T) {
	table := CurrencyTable{"EU": d("2.1")}

	ratio, ok := table.Ratio("EU")
	require.True(t, ok)
	assert.True(t, ratio.Equal(d("2.1")))

	_, ok = table.Ratio("USD")
	assert.False(t, ok)
}

func TestValidateProductCurrencies(t *testing.T) {
	table := CurrencyTable{"GBP": d("2.4"), "PLN": d("1")}

	err := ValidateProductCurrencies([]Product{
		{ID: 1, Currency: "GBP"},
		{ID: 2, Currency: "PLN"},
	}, table, "PLN")
	assert.NoError(t, err)

	err = ValidateProductCurrencies([]Product{
		{ID: 1, Currency: "GBP"},
		{ID: 3, Currency: "USD"},
	}, table, "PLN")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "product 3")

	// base-priced products never need a table entry
	err = ValidateProductCurrencies([]Product{
		{ID: 4, Currency: "PLN"},
	}, CurrencyTable{"GBP": d("2.4")}, "PLN")
	assert.NoError(t, err)
}
