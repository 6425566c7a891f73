// Package ingest loads a season schedule into the games table.
package ingest

import (
	"context"
	"errors"
	"time"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/pkg/ingest/bbref"
	"fantasy-hoops-be/pkg/nba"
)

type MonthFetcher interface {
	FetchMonth(ctx context.Context, month string) ([]bbref.ScrapedGame, error)
}

type GameSink interface {
	UpsertMany(ctx context.Context, games []*entity.Game) (int64, error)
}

type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type Summary struct {
	Months   int
	Scraped  int
	Skipped  int
	Inserted int64
}

type Runner struct {
	Fetcher MonthFetcher
	Sink    GameSink
	Logger  Logger
	Months  []string
	Delay   time.Duration
}

// Run fetches every month in order. Missing pages are skipped; any other
// fetch or write error stops the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	for i, month := range r.Months {
		if i > 0 && r.Delay > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(r.Delay):
			}
		}

		scraped, err := r.Fetcher.FetchMonth(ctx, month)
		if errors.Is(err, bbref.ErrNoPage) {
			r.Logger.Info("INGEST", "No schedule page, skipping", map[string]interface{}{"month": month})
			continue
		}
		if err != nil {
			return sum, err
		}
		sum.Months++
		sum.Scraped += len(scraped)

		games := make([]*entity.Game, 0, len(scraped))
		for _, g := range scraped {
			if !nba.IsCanonical(g.HomeTeam) || !nba.IsCanonical(g.AwayTeam) {
				sum.Skipped++
				r.Logger.Warn("INGEST", "Skipping game with unknown team", map[string]interface{}{
					"month": month,
					"home":  g.HomeTeam,
					"away":  g.AwayTeam,
				})
				continue
			}
			games = append(games, &entity.Game{
				GameDate:  g.GameDate,
				HomeTeam:  g.HomeTeam,
				AwayTeam:  g.AwayTeam,
				Season:    g.Season,
				Venue:     g.Venue,
				SourceURL: g.SourceURL,
			})
		}

		inserted, err := r.Sink.UpsertMany(ctx, games)
		if err != nil {
			return sum, err
		}
		sum.Inserted += inserted

		r.Logger.Info("INGEST", "Month loaded", map[string]interface{}{
			"month":    month,
			"scraped":  len(scraped),
			"inserted": inserted,
		})
	}
	return sum, nil
}
