package entity

import (
	"time"

	"github.com/google/uuid"
)

type RosterPlayer struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	PlayerName string
	NbaTeam    string
	CreatedAt  time.Time
}
