package model

import "time"

type Game struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	GameDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_games_date_home_away,priority:1;index"`
	HomeTeam  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_games_date_home_away,priority:2"`
	AwayTeam  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_games_date_home_away,priority:3"`
	Season    string    `gorm:"type:varchar(16);not null;index"`
	Venue     *string   `gorm:"type:varchar(255)"`
	BbrefURL  *string   `gorm:"column:bbref_url;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Game) TableName() string {
	return "games"
}
