package main

import (
	"github.com/joho/godotenv"

	"github.com/Checker-Finance/valuation/internal/fixtures"
	"github.com/Checker-Finance/valuation/pkg/config"
	"github.com/Checker-Finance/valuation/pkg/logger"
	"github.com/Checker-Finance/valuation/pkg/model"
)

func main() {
	_ = godotenv.Load()

	logger.Init(
		config.GetEnv("SERVICE_NAME", "fixturegen"),
		config.GetEnv("ENV", "dev"),
		config.GetEnv("LOG_LEVEL", "info"),
	)
	defer logger.Sync()
	logg := logger.S()

	dir := config.GetEnv("FIXTURE_DIR", ".")
	mode := config.GetEnv("FIXTURE_MODE", "canonical")

	var ds model.Dataset
	switch mode {
	case "canonical":
		ds = fixtures.Canonical()
	case "random":
		ds = fixtures.Random(fixtures.Options{
			Products:  config.GetEnvInt("FIXTURE_PRODUCTS", 50),
			Matchings: config.GetEnvInt("FIXTURE_MATCHINGS", 5),
			Seed:      int64(config.GetEnvInt("FIXTURE_SEED", 1)),
		})
	default:
		logg.Fatalw("unknown fixture mode", "mode", mode)
	}

	if err := fixtures.Write(dir, ds); err != nil {
		logg.Fatalw("failed to write fixtures", "error", err)
	}

	logg.Infow("[fixturegen] finished",
		"dir", dir,
		"mode", mode,
		"products", len(ds.Products),
		"matchings", len(ds.Matchings))
}
