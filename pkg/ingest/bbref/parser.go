// Package bbref extracts scheduled games from basketball-reference monthly
// schedule pages.
package bbref

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/net/html"
)

type ScrapedGame struct {
	GameDate  time.Time
	HomeTeam  string
	AwayTeam  string
	Season    string
	Venue     *string
	SourceURL *string
}

type sportsEvent struct {
	Type       string `json:"@type"`
	StartDate  string `json:"startDate"`
	URL        string `json:"url"`
	Competitor []struct {
		Name string `json:"name"`
	} `json:"competitor"`
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Mon, Jan 2, 2006",
	"Jan 2, 2006",
}

// ParseDate reduces a schedule start date to its calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParsePage returns every SportsEvent found in the page's JSON-LD blocks.
// Malformed blocks and events are skipped.
func ParsePage(r io.Reader, season string) ([]ScrapedGame, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var games []ScrapedGame
	for _, block := range jsonLDBlocks(doc) {
		for _, ev := range decodeEvents(block) {
			if g, ok := toGame(ev, season); ok {
				games = append(games, g)
			}
		}
	}
	return games, nil
}

func jsonLDBlocks(n *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && attr(n, "type") == "application/ld+json" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			blocks = append(blocks, sb.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return blocks
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// decodeEvents accepts a single object or an array of objects.
func decodeEvents(block string) []sportsEvent {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}
	if strings.HasPrefix(block, "[") {
		var events []sportsEvent
		if err := json.Unmarshal([]byte(block), &events); err != nil {
			return nil
		}
		return events
	}
	var ev sportsEvent
	if err := json.Unmarshal([]byte(block), &ev); err != nil {
		return nil
	}
	return []sportsEvent{ev}
}

// competitor[0] is the away team, competitor[1] the home team.
func toGame(ev sportsEvent, season string) (ScrapedGame, bool) {
	if ev.Type != "SportsEvent" || len(ev.Competitor) < 2 {
		return ScrapedGame{}, false
	}
	date, err := ParseDate(ev.StartDate)
	if err != nil {
		return ScrapedGame{}, false
	}

	g := ScrapedGame{
		GameDate: date,
		AwayTeam: strings.TrimSpace(ev.Competitor[0].Name),
		HomeTeam: strings.TrimSpace(ev.Competitor[1].Name),
		Season:   season,
	}
	if ev.Location != nil && ev.Location.Name != "" {
		venue := ev.Location.Name
		g.Venue = &venue
	}
	if ev.URL != "" {
		u := ev.URL
		g.SourceURL = &u
	}
	return g, true
}
