package valuation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/valuation/pkg/model"
)

// Engine computes one ValuationResult per matching group: rank the group's
// products by extended price, aggregate the top set, and normalize the result
// to the base currency.
//
// The top set may legitimately mix currencies. Extended prices are summed
// as-is and the single conversion ratio is chosen by the top-ranked product's
// currency alone; the result currency is always the base currency.
type Engine struct {
	base   string
	rates  model.CurrencyTable
	logger *zap.Logger
}

// NewEngine creates an engine bound to a base currency and a conversion table.
func NewEngine(base string, rates model.CurrencyTable, logger *zap.Logger) *Engine {
	return &Engine{
		base:   base,
		rates:  rates,
		logger: logger,
	}
}

// Valuate produces one result per matching, in the order the matchings were
// given. Any group-level failure aborts the whole pass; no partial result set
// is returned.
func (e *Engine) Valuate(products []model.Product, matchings []model.Matching) ([]model.ValuationResult, error) {
	results := make([]model.ValuationResult, 0, len(matchings))

	for _, m := range matchings {
		res, err := e.valuateGroup(m, products)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (e *Engine) valuateGroup(m model.Matching, products []model.Product) (model.ValuationResult, error) {
	group := filterByMatchingID(products, m.MatchingID)
	if len(group) == 0 {
		return model.ValuationResult{}, fmt.Errorf("matching %d: %w", m.MatchingID, model.ErrEmptyGroup)
	}
	if m.TopPricedCount <= 0 || m.TopPricedCount > len(group) {
		return model.ValuationResult{}, fmt.Errorf("matching %d: top_priced_count %d with %d products: %w",
			m.MatchingID, m.TopPricedCount, len(group), model.ErrInvalidTopCount)
	}

	sortByExtendedPriceDesc(group)
	top := group[:m.TopPricedCount]

	total := decimal.Zero
	for _, p := range top {
		total = total.Add(p.ExtendedPrice())
	}
	avg := total.Div(decimal.NewFromInt(int64(m.TopPricedCount)))

	if currency := top[0].Currency; currency != e.base {
		ratio, ok := e.rates.Ratio(currency)
		if !ok {
			return model.ValuationResult{}, fmt.Errorf("matching %d: currency %q: %w",
				m.MatchingID, currency, model.ErrUnknownCurrency)
		}
		total = total.Mul(ratio)
		avg = avg.Mul(ratio)
	}

	e.logger.Debug("valuation.group_valued",
		zap.Int("matching_id", m.MatchingID),
		zap.Int("group_size", len(group)),
		zap.Int("top_count", m.TopPricedCount),
		zap.String("total_price", total.String()),
		zap.String("currency", e.base),
	)

	return model.ValuationResult{
		MatchingID:           m.MatchingID,
		TotalPrice:           total,
		AvgPrice:             avg,
		Currency:             e.base,
		IgnoredProductsCount: len(group) - m.TopPricedCount,
	}, nil
}

//
// ────────────────────────────────────────────────
//   Helper functions
// ────────────────────────────────────────────────
//

// filterByMatchingID keeps one group's products in input order, so that a
// later stable sort breaks ties by original position.
func filterByMatchingID(products []model.Product, matchingID int) []model.Product {
	var group []model.Product
	for _, p := range products {
		if p.MatchingID == matchingID {
			group = append(group, p)
		}
	}
	return group
}

func sortByExtendedPriceDesc(group []model.Product) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].ExtendedPrice().GreaterThan(group[j].ExtendedPrice())
	})
}
