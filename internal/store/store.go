package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/valuation/pkg/model"
)

// Store defines the contract for reading valuation inputs and persisting
// valuation results.
type Store interface {
	LoadCurrencies() (model.CurrencyTable, error)
	LoadProducts() ([]model.Product, error)
	LoadMatchings() ([]model.Matching, error)
	SaveResults(results []model.ValuationResult) error
	LoadResults() ([]model.ValuationResult, error)
}

// Paths names the four flat files of one valuation run.
type Paths struct {
	Currencies string
	Products   string
	Matchings  string
	Output     string
}

// resultColumns is the fixed column order of the output table.
var resultColumns = []string{"matching_id", "total_price", "avg_price", "currency", "ignored_products_count"}

// CSVStore reads the three input tables and writes the result table as
// header-rowed CSV files. Each file is opened, fully read, and closed before
// the caller moves on; nothing is cached between calls.
type CSVStore struct {
	paths  Paths
	logger *zap.Logger
}

// NewCSV creates a flat-file store over the given paths.
func NewCSV(paths Paths, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{paths: paths, logger: logger}
}

// LoadCurrencies reads the conversion table from the currencies file.
func (s *CSVStore) LoadCurrencies() (model.CurrencyTable, error) {
	rows, idx, err := readTable(s.paths.Currencies, []string{"currency", "ratio"})
	if err != nil {
		return nil, err
	}

	table := make(model.CurrencyTable, len(rows))
	for i, row := range rows {
		ratio, err := parseDecimal(s.paths.Currencies, i+2, "ratio", row[idx["ratio"]])
		if err != nil {
			return nil, err
		}
		table[row[idx["currency"]]] = ratio
	}

	s.logger.Debug("store.currencies_loaded",
		zap.String("path", s.paths.Currencies),
		zap.Int("count", len(table)),
	)
	return table, nil
}

// LoadProducts reads the product records from the data file.
func (s *CSVStore) LoadProducts() ([]model.Product, error) {
	rows, idx, err := readTable(s.paths.Products, []string{"id", "price", "currency", "quantity", "matching_id"})
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		id, err := parseInt(s.paths.Products, rowNum, "id", row[idx["id"]])
		if err != nil {
			return nil, err
		}
		price, err := parseDecimal(s.paths.Products, rowNum, "price", row[idx["price"]])
		if err != nil {
			return nil, err
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("%s row %d: price %s must be positive: %w",
				s.paths.Products, rowNum, price, model.ErrParse)
		}
		quantity, err := parseInt(s.paths.Products, rowNum, "quantity", row[idx["quantity"]])
		if err != nil {
			return nil, err
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%s row %d: quantity %d must not be negative: %w",
				s.paths.Products, rowNum, quantity, model.ErrParse)
		}
		matchingID, err := parseInt(s.paths.Products, rowNum, "matching_id", row[idx["matching_id"]])
		if err != nil {
			return nil, err
		}

		products = append(products, model.Product{
			ID:         id,
			Price:      price,
			Currency:   row[idx["currency"]],
			Quantity:   quantity,
			MatchingID: matchingID,
		})
	}

	s.logger.Debug("store.products_loaded",
		zap.String("path", s.paths.Products),
		zap.Int("count", len(products)),
	)
	return products, nil
}

// LoadMatchings reads the matching-group definitions from the matchings file.
func (s *CSVStore) LoadMatchings() ([]model.Matching, error) {
	rows, idx, err := readTable(s.paths.Matchings, []string{"matching_id", "top_priced_count"})
	if err != nil {
		return nil, err
	}

	matchings := make([]model.Matching, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2

		matchingID, err := parseInt(s.paths.Matchings, rowNum, "matching_id", row[idx["matching_id"]])
		if err != nil {
			return nil, err
		}
		topCount, err := parseInt(s.paths.Matchings, rowNum, "top_priced_count", row[idx["top_priced_count"]])
		if err != nil {
			return nil, err
		}

		matchings = append(matchings, model.Matching{
			MatchingID:     matchingID,
			TopPricedCount: topCount,
		})
	}

	s.logger.Debug("store.matchings_loaded",
		zap.String("path", s.paths.Matchings),
		zap.Int("count", len(matchings)),
	)
	return matchings, nil
}

// SaveResults writes the result table, overwriting any existing output. The
// rows go to a temp file in the target directory and are renamed into place,
// so a failed run never leaves partial output behind.
func (s *CSVStore) SaveResults(results []model.ValuationResult) error {
	dir := filepath.Dir(s.paths.Output)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.paths.Output)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create output file in %s: %w", dir, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(resultColumns); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.paths.Output, err)
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.MatchingID),
			r.TotalPrice.String(),
			r.AvgPrice.String(),
			r.Currency,
			strconv.Itoa(r.IgnoredProductsCount),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.paths.Output, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.paths.Output, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.paths.Output); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.paths.Output, err)
	}

	s.logger.Debug("store.results_saved",
		zap.String("path", s.paths.Output),
		zap.Int("count", len(results)),
	)
	return nil
}

// LoadResults reads a previously written result table back.
func (s *CSVStore) LoadResults() ([]model.ValuationResult, error) {
	rows, idx, err := readTable(s.paths.Output, resultColumns)
	if err != nil {
		return nil, err
	}

	results := make([]model.ValuationResult, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2

		matchingID, err := parseInt(s.paths.Output, rowNum, "matching_id", row[idx["matching_id"]])
		if err != nil {
			return nil, err
		}
		total, err := parseDecimal(s.paths.Output, rowNum, "total_price", row[idx["total_price"]])
		if err != nil {
			return nil, err
		}
		avg, err := parseDecimal(s.paths.Output, rowNum, "avg_price", row[idx["avg_price"]])
		if err != nil {
			return nil, err
		}
		ignored, err := parseInt(s.paths.Output, rowNum, "ignored_products_count", row[idx["ignored_products_count"]])
		if err != nil {
			return nil, err
		}

		results = append(results, model.ValuationResult{
			MatchingID:           matchingID,
			TotalPrice:           total,
			AvgPrice:             avg,
			Currency:             row[idx["currency"]],
			IgnoredProductsCount: ignored,
		})
	}

	return results, nil
}

//
// ────────────────────────────────────────────────
//   Parsing helpers
// ────────────────────────────────────────────────
//

// readTable reads a whole CSV file and locates the required columns by header
// name, so column order does not matter and extra columns are ignored.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %v: %w", path, err, model.ErrParse)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: missing header row: %w", path, model.ErrParse)
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, nil, fmt.Errorf("%s: missing column %q: %w", path, name, model.ErrParse)
		}
	}

	return records[1:], idx, nil
}

func parseInt(file string, row int, field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s row %d: field %s %q: %w", file, row, field, raw, model.ErrParse)
	}
	return n, nil
}

func parseDecimal(file string, row int, field, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s row %d: field %s %q: %w", file, row, field, raw, model.ErrParse)
	}
	return v, nil
}
