package jobs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/valuation/internal/store"
	"github.com/Checker-Finance/valuation/internal/valuation"
	"github.com/Checker-Finance/valuation/pkg/model"
)

// ValuationRun executes one load → validate → compute → save pass over the
// configured input files. Every log event of the run carries a generated
// run_id so separate executions can be told apart downstream.
type ValuationRun struct {
	logger *zap.Logger
	store  store.Store
	base   string
	runID  uuid.UUID
}

// NewValuationRun constructs a one-shot batch run against a store and a base
// currency.
func NewValuationRun(logger *zap.Logger, st store.Store, base string) *ValuationRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New()
	return &ValuationRun{
		logger: logger.With(zap.String("run_id", runID.String())),
		store:  st,
		base:   base,
		runID:  runID,
	}
}

// RunID returns the identifier stamped on this run's log events.
func (r *ValuationRun) RunID() uuid.UUID {
	return r.runID
}

// Run executes the batch once. The result set is computed in full before the
// writer runs, so a failed run leaves no partial output behind.
func (r *ValuationRun) Run() error {
	start := time.Now()
	r.logger.Info("valuation.run.start", zap.String("base_currency", r.base))

	currencies, err := r.store.LoadCurrencies()
	if err != nil {
		r.logger.Error("valuation.load_currencies.failed", zap.Error(err))
		return fmt.Errorf("load currencies: %w", err)
	}
	products, err := r.store.LoadProducts()
	if err != nil {
		r.logger.Error("valuation.load_products.failed", zap.Error(err))
		return fmt.Errorf("load products: %w", err)
	}
	matchings, err := r.store.LoadMatchings()
	if err != nil {
		r.logger.Error("valuation.load_matchings.failed", zap.Error(err))
		return fmt.Errorf("load matchings: %w", err)
	}
	r.logger.Info("valuation.load.complete",
		zap.Int("currencies", len(currencies)),
		zap.Int("products", len(products)),
		zap.Int("matchings", len(matchings)),
	)

	if err := currencies.Validate(r.base); err != nil {
		r.logger.Error("valuation.validate.failed", zap.Error(err))
		return fmt.Errorf("validate currency table: %w", err)
	}
	if err := model.ValidateProductCurrencies(products, currencies, r.base); err != nil {
		r.logger.Error("valuation.validate.failed", zap.Error(err))
		return fmt.Errorf("validate products: %w", err)
	}

	engine := valuation.NewEngine(r.base, currencies, r.logger)
	results, err := engine.Valuate(products, matchings)
	if err != nil {
		r.logger.Error("valuation.compute.failed", zap.Error(err))
		return fmt.Errorf("valuate: %w", err)
	}
	r.logger.Info("valuation.compute.complete", zap.Int("results", len(results)))

	if err := r.store.SaveResults(results); err != nil {
		r.logger.Error("valuation.save.failed", zap.Error(err))
		return fmt.Errorf("save results: %w", err)
	}

	r.logger.Info("valuation.run.complete",
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
