package valuation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/valuation/pkg/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRates() model.CurrencyTable {
	return model.CurrencyTable{
		"GBP": d("2.4"),
		"EU":  d("2.1"),
		"PLN": d("1.0"),
	}
}

func newTestEngine() *Engine {
	return NewEngine("PLN", testRates(), zap.NewNop())
}

func product(id int, price, currency string, quantity, matchingID int) model.Product {
	return model.Product{
		ID:         id,
		Price:      d(price),
		Currency:   currency,
		Quantity:   quantity,
		MatchingID: matchingID,
	}
}

// canonicalProducts is the demo dataset the tool ships with: nine products
// across three matching groups and three currencies.
func canonicalProducts() []model.Product {
	return []model.Product{
		product(1, "1000", "GBP", 2, 3),
		product(2, "1050", "EU", 1, 1),
		product(3, "2000", "PLN", 1, 1),
		product(4, "1750", "EU", 2, 2),
		product(5, "1400", "EU", 4, 3),
		product(6, "7000", "PLN", 3, 2),
		product(7, "630", "GBP", 5, 3),
		product(8, "4000", "EU", 1, 3),
		product(9, "1400", "GBP", 3, 1),
	}
}

func canonicalMatchings() []model.Matching {
	return []model.Matching{
		{MatchingID: 1, TopPricedCount: 2},
		{MatchingID: 2, TopPricedCount: 2},
		{MatchingID: 3, TopPricedCount: 3},
	}
}
