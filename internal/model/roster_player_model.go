package model

import (
	"time"

	"github.com/google/uuid"
)

type RosterPlayer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_user_player,priority:1"`
	PlayerName string    `gorm:"type:varchar(60);not null"`
	// PlayerKey is the case-folded name; duplicates are judged on it.
	PlayerKey  string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_roster_user_player,priority:2"`
	NbaTeam    string    `gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (RosterPlayer) TableName() string {
	return "roster_players"
}
