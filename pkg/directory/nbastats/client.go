package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fantasy-hoops-be/pkg/directory"
	"fantasy-hoops-be/pkg/nba"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultBaseURL = "https://stats.nba.com/stats"
	DefaultSeason  = "2025-26"
)

// Client fetches the league-wide player index from the NBA Stats API.
type Client struct {
	BaseURL    string
	Season     string
	HTTPClient *http.Client
}

var _ directory.Fetcher = &Client{}

func NewClient(baseURL, season string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if season == "" {
		season = DefaultSeason
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Season:  season,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type commonAllPlayersResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

func (c *Client) FetchActivePlayers(ctx context.Context) ([]directory.Player, error) {
	q := url.Values{}
	q.Set("LeagueID", "00")
	q.Set("Season", c.Season)
	q.Set("IsOnlyCurrentSeason", "1")
	endpoint := c.BaseURL + "/commonallplayers?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// stats.nba.com rejects requests that do not look like they come from nba.com
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nba stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nba stats error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload commonAllPlayersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsePlayers(payload)
}

func parsePlayers(payload commonAllPlayersResponse) ([]directory.Player, error) {
	if len(payload.ResultSets) == 0 {
		return nil, fmt.Errorf("nba stats response has no result sets")
	}
	rs := payload.ResultSets[0]

	nameIdx := indexOf(rs.Headers, "DISPLAY_FIRST_LAST")
	abbrIdx := indexOf(rs.Headers, "TEAM_ABBREVIATION")
	statusIdx := indexOf(rs.Headers, "ROSTERSTATUS")
	if nameIdx < 0 || abbrIdx < 0 || statusIdx < 0 {
		return nil, fmt.Errorf("nba stats response missing expected headers")
	}

	players := make([]directory.Player, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		if len(row) <= nameIdx || len(row) <= abbrIdx || len(row) <= statusIdx {
			continue
		}
		if !isActive(row[statusIdx]) {
			continue
		}
		abbr, ok := row[abbrIdx].(string)
		if !ok || abbr == "" {
			continue
		}
		name, ok := row[nameIdx].(string)
		if !ok || name == "" {
			continue
		}
		players = append(players, directory.Player{
			Name: norm.NFC.String(name),
			Team: nba.TeamName(abbr),
		})
	}
	return players, nil
}

func isActive(v interface{}) bool {
	switch s := v.(type) {
	case float64:
		return s == 1
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return err == nil && n == 1
	default:
		return false
	}
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
