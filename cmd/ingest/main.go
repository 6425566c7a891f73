package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fantasy-hoops-be/internal/config"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/repository/implementation"
	"fantasy-hoops-be/internal/repository/specification"
	"fantasy-hoops-be/pkg/database"
	"fantasy-hoops-be/pkg/ingest"
	"fantasy-hoops-be/pkg/ingest/bbref"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := implementation.NewGameRepository(db)
	runner := &ingest.Runner{
		Fetcher: bbref.NewClient(cfg.Ingest.BaseURL, cfg.Ingest.Year, cfg.Ingest.Season),
		Sink:    games,
		Logger:  sysLogger,
		Months:  bbref.SeasonMonths,
		Delay:   cfg.Ingest.Delay,
	}

	color.Cyan("Ingesting %s schedule from %s", cfg.Ingest.Season, cfg.Ingest.BaseURL)

	sum, err := runner.Run(ctx)
	if err != nil {
		sysLogger.Error("INGEST", "Ingestion failed", map[string]interface{}{"error": err.Error()})
		color.Red("Ingestion failed: %v", err)
		os.Exit(1)
	}

	total, err := games.Count(ctx, specification.BySeason{Season: cfg.Ingest.Season})
	if err != nil {
		sysLogger.Warn("INGEST", "Failed to count season games", map[string]interface{}{"error": err.Error()})
	}

	sysLogger.Info("INGEST", "Ingestion complete", map[string]interface{}{
		"months":       sum.Months,
		"scraped":      sum.Scraped,
		"skipped":      sum.Skipped,
		"inserted":     sum.Inserted,
		"season_total": total,
	})

	color.Green("Done: %d months, %d scraped, %d skipped, %d new games", sum.Months, sum.Scraped, sum.Skipped, sum.Inserted)
	color.Green("%s now has %d games stored", cfg.Ingest.Season, total)
}
