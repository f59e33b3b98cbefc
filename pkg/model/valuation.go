package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents one priced inventory record from the data table.
type Product struct {
	ID         int             `json:"id"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Quantity   int             `json:"quantity"`
	MatchingID int             `json:"matching_id"`
}

// ExtendedPrice returns price multiplied by quantity, the ranking key used to
// select the top products of a matching group.
func (p Product) ExtendedPrice() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Matching represents one matching-group definition: which group to value and
// how many of its highest-priced products participate.
type Matching struct {
	MatchingID     int `json:"matching_id"`
	TopPricedCount int `json:"top_priced_count"`
}

// ValuationResult represents one output row: the aggregated valuation of a
// matching group's top set, normalized to the base currency.
type ValuationResult struct {
	MatchingID           int             `json:"matching_id"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	AvgPrice             decimal.Decimal `json:"avg_price"`
	Currency             string          `json:"currency"`
	IgnoredProductsCount int             `json:"ignored_products_count"`
}

// CurrencyTable maps a currency code to its conversion ratio relative to the
// base currency. A code's ratio is the factor that converts an amount in that
// currency into the base currency.
type CurrencyTable map[string]decimal.Decimal

// Ratio returns the conversion ratio for code.
func (t CurrencyTable) Ratio(code string) (decimal.Decimal, bool) {
	ratio, ok := t[code]
	return ratio, ok
}

// Validate checks that every ratio is positive and that the base currency,
// when present in the table, maps to exactly 1. An absent base currency is
// allowed; it is implicitly 1 and never looked up during conversion.
func (t CurrencyTable) Validate(base string) error {
	for code, ratio := range t {
		if !ratio.IsPositive() {
			return fmt.Errorf("currency %s: non-positive ratio %s: %w", code, ratio, ErrParse)
		}
	}
	if ratio, ok := t[base]; ok && !ratio.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("base currency %s: ratio %s, want 1: %w", base, ratio, ErrParse)
	}
	return nil
}

// ValidateProductCurrencies checks that every product references a currency
// present in the table, so the engine never hits an unknown code mid-run.
// Products priced in the base currency are exempt: the base ratio is
// implicitly 1 and never looked up.
func ValidateProductCurrencies(products []Product, table CurrencyTable, base string) error {
	for _, p := range products {
		if p.Currency == base {
			continue
		}
		if _, ok := table[p.Currency]; !ok {
			return fmt.Errorf("product %d: currency %q: %w", p.ID, p.Currency, ErrUnknownCurrency)
		}
	}
	return nil
}

// Dataset bundles the three inputs of one valuation run.
type Dataset struct {
	Currencies CurrencyTable
	Products   []Product
	Matchings  []Matching
}
