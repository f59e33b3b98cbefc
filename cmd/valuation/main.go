package main

import (
	"github.com/Checker-Finance/valuation/internal/jobs"
	"github.com/Checker-Finance/valuation/internal/store"
	"github.com/Checker-Finance/valuation/pkg/config"
	"github.com/Checker-Finance/valuation/pkg/logger"
)

func main() {
	// --- Load configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.S().Fatalw("failed to load config", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [valuation]...")

	// --- CSV store (three inputs, one output) ---
	st := store.NewCSV(store.Paths{
		Currencies: cfg.CurrenciesPath,
		Products:   cfg.ProductsPath,
		Matchings:  cfg.MatchingsPath,
		Output:     cfg.OutputPath,
	}, logger.L())

	// --- Run the batch ---
	run := jobs.NewValuationRun(logger.L(), st, cfg.BaseCurrency)
	if err := run.Run(); err != nil {
		logg.Fatalw("valuation run failed", "run_id", run.RunID().String(), "error", err)
	}

	logg.Infow("[valuation] finished",
		"run_id", run.RunID().String(),
		"output", cfg.OutputPath)
}
