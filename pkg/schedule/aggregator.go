// Package schedule counts games per team over a date range.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"fantasy-hoops-be/pkg/nba"
)

const DateLayout = "2006-01-02"

var (
	ErrMissingDates  = errors.New("both 'start' and 'end' query parameters are required (YYYY-MM-DD)")
	ErrMalformedDate = errors.New("dates must be in YYYY-MM-DD format")
	ErrInvertedRange = errors.New("start date must be before or equal to end date")
)

// Range is a closed interval of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) StartString() string { return r.Start.Format(DateLayout) }
func (r Range) EndString() string   { return r.End.Format(DateLayout) }

// ParseRange validates both ends of the interval. Nothing is queried until
// this succeeds.
func ParseRange(start, end string) (Range, error) {
	if start == "" || end == "" {
		return Range{}, ErrMissingDates
	}
	s, err := parseDay(start)
	if err != nil {
		return Range{}, err
	}
	e, err := parseDay(end)
	if err != nil {
		return Range{}, err
	}
	if s.After(e) {
		return Range{}, ErrInvertedRange
	}
	return Range{Start: s, End: e}, nil
}

func parseDay(value string) (time.Time, error) {
	// time.Parse accepts single-digit fields for some layouts; the length
	// check keeps the wire format strict.
	if len(value) != len(DateLayout) {
		return time.Time{}, ErrMalformedDate
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return t, nil
}

// Matchup is the part of a game the aggregator needs.
type Matchup struct {
	HomeTeam string
	AwayTeam string
}

// Counts is the aggregator result. GameCounts always holds all 30 teams.
type Counts struct {
	GameCounts map[string]int
	TotalGames int
}

// CountGames reduces matchups already restricted to a range into per-team
// counts. Home and away appearances contribute one each; TotalGames counts
// every game once.
func CountGames(games []Matchup) Counts {
	counts := make(map[string]int, len(nba.Teams))
	for _, team := range nba.Teams {
		counts[team] = 0
	}

	home := 0
	for _, g := range games {
		counts[g.HomeTeam]++
		counts[g.AwayTeam]++
		home++
	}

	return Counts{GameCounts: counts, TotalGames: home}
}

type TeamCount struct {
	Team  string `json:"team"`
	Games int    `json:"games"`
}

// Rank orders counts for display: most games first, ties by team name.
// A nil filter keeps every team.
func Rank(counts map[string]int, filter map[string]bool) []TeamCount {
	ranked := make([]TeamCount, 0, len(counts))
	for team, n := range counts {
		if filter != nil && !filter[team] {
			continue
		}
		ranked = append(ranked, TeamCount{Team: team, Games: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Games != ranked[j].Games {
			return ranked[i].Games > ranked[j].Games
		}
		return ranked[i].Team < ranked[j].Team
	})
	return ranked
}
