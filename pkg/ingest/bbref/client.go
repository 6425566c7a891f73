package bbref

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.basketball-reference.com"

// ErrNoPage is returned for months the site has no schedule page for.
var ErrNoPage = errors.New("schedule page not found")

// SeasonMonths are the regular season and playoff months, in page order.
var SeasonMonths = []string{
	"october",
	"november",
	"december",
	"january",
	"february",
	"march",
	"april",
}

type Client struct {
	BaseURL    string
	Year       string // season end year, e.g. "2026"
	Season     string // stored label, e.g. "2025-26"
	HTTPClient *http.Client
}

func NewClient(baseURL, year, season string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Year:       year,
		Season:     season,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) MonthURL(month string) string {
	return fmt.Sprintf("%s/leagues/NBA_%s_games-%s.html", c.BaseURL, c.Year, month)
}

// FetchMonth downloads and parses one monthly schedule page.
func (c *Client) FetchMonth(ctx context.Context, month string) ([]ScrapedGame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MonthURL(month), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", month, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoPage
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.MonthURL(month))
	}

	return ParsePage(resp.Body, c.Season)
}
