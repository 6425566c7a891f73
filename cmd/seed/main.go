package main

import (
	"context"
	"log"
	"time"

	"fantasy-hoops-be/internal/config"
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/repository/implementation"
	"fantasy-hoops-be/pkg/database"
	"fantasy-hoops-be/pkg/nba"

	"github.com/fatih/color"
)

// Seeds a synthetic week of games so the schedule page has data locally
// without scraping.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	teams := nba.SortedTeams()

	var games []*entity.Game
	for d := 0; d < 7; d++ {
		date := start.AddDate(0, 0, d)
		// rotate pairings so each day has a different slate
		for i := 0; i+1 < len(teams); i += 2 {
			if (i/2+d)%3 == 0 {
				continue
			}
			games = append(games, &entity.Game{
				GameDate: date,
				HomeTeam: teams[(i+d)%len(teams)],
				AwayTeam: teams[(i+d+1)%len(teams)],
				Season:   cfg.Ingest.Season,
			})
		}
	}

	inserted, err := implementation.NewGameRepository(db).UpsertMany(context.Background(), games)
	if err != nil {
		log.Fatal("Error: Seeding failed:", err)
	}
	if inserted == 0 {
		color.Yellow("No new games: the %s slate is already seeded", start.Format("2006-01-02"))
		return
	}
	color.Green("Seeded %d of %d sample games starting %s", inserted, len(games), start.Format("2006-01-02"))
}
