package entity

import "time"

// Game is one scheduled contest. Rows are written by ingestion only.
type Game struct {
	Id        int64
	GameDate  time.Time
	HomeTeam  string
	AwayTeam  string
	Season    string
	Venue     *string
	SourceURL *string
	CreatedAt time.Time
}
