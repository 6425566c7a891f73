package bbref

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schedulePage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"SportsEvent","name":"New York Knicks vs Boston Celtics",
 "startDate":"2025-10-21T19:30","url":"https://www.basketball-reference.com/boxscores/202510210BOS.html",
 "competitor":[{"@type":"SportsTeam","name":"New York Knicks"},{"@type":"SportsTeam","name":"Boston Celtics"}],
 "location":{"@type":"Place","name":"TD Garden"}}
</script>
<script type="application/ld+json">
[{"@type":"SportsEvent","startDate":"Wed, Oct 22, 2025",
  "competitor":[{"name":"Golden State Warriors"},{"name":"Los Angeles Lakers"}]},
 {"@type":"SportsEvent","startDate":"2025-10-22","competitor":[{"name":"Only One"}]}]
</script>
<script type="application/ld+json">{ not json </script>
<script type="application/ld+json">{"@type":"Organization","name":"Sports Reference"}</script>
<script>var ignored = {"@type":"SportsEvent"};</script>
</head><body></body></html>`

func TestParsePage(t *testing.T) {
	games, err := ParsePage(strings.NewReader(schedulePage), "2025-26")
	require.NoError(t, err)
	require.Len(t, games, 2)

	first := games[0]
	assert.Equal(t, time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC), first.GameDate)
	assert.Equal(t, "Boston Celtics", first.HomeTeam)
	assert.Equal(t, "New York Knicks", first.AwayTeam)
	assert.Equal(t, "2025-26", first.Season)
	require.NotNil(t, first.Venue)
	assert.Equal(t, "TD Garden", *first.Venue)
	require.NotNil(t, first.SourceURL)

	second := games[1]
	assert.Equal(t, time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC), second.GameDate)
	assert.Equal(t, "Los Angeles Lakers", second.HomeTeam)
	assert.Nil(t, second.Venue)
	assert.Nil(t, second.SourceURL)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-01-05", "2026-01-05T22:00", "2026-01-05T22:00:00-05:00", "Mon, Jan 5, 2026", "Jan 5, 2026"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDate("soon")
	assert.Error(t, err)
}

func TestClient_FetchMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leagues/NBA_2026_games-october.html":
			_, _ = w.Write([]byte(schedulePage))
		case "/leagues/NBA_2026_games-may.html":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "2026", "2025-26")

	games, err := c.FetchMonth(context.Background(), "october")
	require.NoError(t, err)
	assert.Len(t, games, 2)

	_, err = c.FetchMonth(context.Background(), "june")
	assert.True(t, errors.Is(err, ErrNoPage))

	_, err = c.FetchMonth(context.Background(), "may")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPage))
}
