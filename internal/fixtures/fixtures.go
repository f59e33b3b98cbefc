package fixtures

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Checker-Finance/valuation/pkg/model"
)

// Canonical returns the demo dataset the valuation tool ships with: three
// currencies, nine products across three matching groups.
func Canonical() model.Dataset {
	return model.Dataset{
		Currencies: model.CurrencyTable{
			"GBP": decimal.RequireFromString("2.4"),
			"EU":  decimal.RequireFromString("2.1"),
			"PLN": decimal.RequireFromString("1.0"),
		},
		Products: []model.Product{
			{ID: 1, Price: decimal.NewFromInt(1000), Currency: "GBP", Quantity: 2, MatchingID: 3},
			{ID: 2, Price: decimal.NewFromInt(1050), Currency: "EU", Quantity: 1, MatchingID: 1},
			{ID: 3, Price: decimal.NewFromInt(2000), Currency: "PLN", Quantity: 1, MatchingID: 1},
			{ID: 4, Price: decimal.NewFromInt(1750), Currency: "EU", Quantity: 2, MatchingID: 2},
			{ID: 5, Price: decimal.NewFromInt(1400), Currency: "EU", Quantity: 4, MatchingID: 3},
			{ID: 6, Price: decimal.NewFromInt(7000), Currency: "PLN", Quantity: 3, MatchingID: 2},
			{ID: 7, Price: decimal.NewFromInt(630), Currency: "GBP", Quantity: 5, MatchingID: 3},
			{ID: 8, Price: decimal.NewFromInt(4000), Currency: "EU", Quantity: 1, MatchingID: 3},
			{ID: 9, Price: decimal.NewFromInt(1400), Currency: "GBP", Quantity: 3, MatchingID: 1},
		},
		Matchings: []model.Matching{
			{MatchingID: 1, TopPricedCount: 2},
			{MatchingID: 2, TopPricedCount: 2},
			{MatchingID: 3, TopPricedCount: 3},
		},
	}
}

// Options control Random dataset generation.
type Options struct {
	Products  int
	Matchings int
	Seed      int64
}

// Random returns a seeded pseudo-random dataset that honors every input
// invariant: positive prices, non-negative quantities, currencies drawn from
// the canonical table, every group non-empty, and each top_priced_count
// within [1, group size]. The same options always yield the same dataset.
func Random(opts Options) model.Dataset {
	if opts.Matchings < 1 {
		opts.Matchings = 1
	}
	if opts.Products < opts.Matchings {
		opts.Products = opts.Matchings
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	currencies := Canonical().Currencies

	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	products := make([]model.Product, 0, opts.Products)
	groupSizes := make(map[int]int, opts.Matchings)
	for i := 0; i < opts.Products; i++ {
		// the first product of each group is pinned so no group ends up empty
		matchingID := i + 1
		if i >= opts.Matchings {
			matchingID = rng.Intn(opts.Matchings) + 1
		}
		groupSizes[matchingID]++

		products = append(products, model.Product{
			ID:         i + 1,
			Price:      decimal.NewFromInt(int64(rng.Intn(9900) + 100)),
			Currency:   codes[rng.Intn(len(codes))],
			Quantity:   rng.Intn(10),
			MatchingID: matchingID,
		})
	}

	matchings := make([]model.Matching, 0, opts.Matchings)
	for id := 1; id <= opts.Matchings; id++ {
		matchings = append(matchings, model.Matching{
			MatchingID:     id,
			TopPricedCount: rng.Intn(groupSizes[id]) + 1,
		})
	}

	return model.Dataset{
		Currencies: currencies,
		Products:   products,
		Matchings:  matchings,
	}
}

// Write serializes a dataset into dir as currencies.csv, data.csv and
// matchings.csv, the file layout the valuation job expects.
func Write(dir string, ds model.Dataset) error {
	codes := make([]string, 0, len(ds.Currencies))
	for code := range ds.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	currencyRows := make([][]string, 0, len(codes))
	for _, code := range codes {
		currencyRows = append(currencyRows, []string{code, ds.Currencies[code].String()})
	}
	if err := writeCSV(filepath.Join(dir, "currencies.csv"), []string{"currency", "ratio"}, currencyRows); err != nil {
		return err
	}

	productRows := make([][]string, 0, len(ds.Products))
	for _, p := range ds.Products {
		productRows = append(productRows, []string{
			strconv.Itoa(p.ID),
			p.Price.String(),
			p.Currency,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MatchingID),
		})
	}
	if err := writeCSV(filepath.Join(dir, "data.csv"), []string{"id", "price", "currency", "quantity", "matching_id"}, productRows); err != nil {
		return err
	}

	matchingRows := make([][]string, 0, len(ds.Matchings))
	for _, m := range ds.Matchings {
		matchingRows = append(matchingRows, []string{
			strconv.Itoa(m.MatchingID),
			strconv.Itoa(m.TopPricedCount),
		})
	}
	return writeCSV(filepath.Join(dir, "matchings.csv"), []string{"matching_id", "top_priced_count"}, matchingRows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
