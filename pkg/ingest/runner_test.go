package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/pkg/ingest/bbref"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string][]bbref.ScrapedGame
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) FetchMonth(ctx context.Context, month string) ([]bbref.ScrapedGame, error) {
	f.calls = append(f.calls, month)
	if err, ok := f.errs[month]; ok {
		return nil, err
	}
	return f.pages[month], nil
}

type fakeSink struct {
	games []*entity.Game
}

func (s *fakeSink) UpsertMany(ctx context.Context, games []*entity.Game) (int64, error) {
	s.games = append(s.games, games...)
	return int64(len(games)), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{}) {}
func (nopLogger) Warn(string, string, map[string]interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRunner_SkipsMissingPagesAndUnknownTeams(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string][]bbref.ScrapedGame{
			"october": {
				{GameDate: day(2025, 10, 21), HomeTeam: "Boston Celtics", AwayTeam: "New York Knicks", Season: "2025-26"},
				{GameDate: day(2025, 10, 21), HomeTeam: "Team World", AwayTeam: "Team USA", Season: "2025-26"},
			},
		},
		errs: map[string]error{"november": bbref.ErrNoPage},
	}
	sink := &fakeSink{}

	r := &Runner{Fetcher: fetcher, Sink: sink, Logger: nopLogger{}, Months: []string{"october", "november"}}
	sum, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"october", "november"}, fetcher.calls)
	assert.Equal(t, 1, sum.Months)
	assert.Equal(t, 2, sum.Scraped)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, int64(1), sum.Inserted)
	require.Len(t, sink.games, 1)
	assert.Equal(t, "Boston Celtics", sink.games[0].HomeTeam)
}

func TestRunner_StopsOnFetchError(t *testing.T) {
	boom := errors.New("connection reset")
	fetcher := &fakeFetcher{errs: map[string]error{"october": boom}}

	r := &Runner{Fetcher: fetcher, Sink: &fakeSink{}, Logger: nopLogger{}, Months: []string{"october", "november"}}
	_, err := r.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"october"}, fetcher.calls)
}

func TestRunner_DelayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{
		Fetcher: &fakeFetcher{},
		Sink:    &fakeSink{},
		Logger:  nopLogger{},
		Months:  []string{"october", "november"},
		Delay:   time.Hour,
	}
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
