package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddRosterPlayerRequest struct {
	PlayerName string `json:"player_name" form:"player_name" validate:"required"`
	NbaTeam    string `json:"nba_team" form:"nba_team"`
}

type RemoveRosterPlayerRequest struct {
	PlayerId string `json:"player_id" form:"player_id" validate:"required,uuid"`
}

type RosterPlayerResponse struct {
	Id         uuid.UUID `json:"id"`
	PlayerName string    `json:"player_name"`
	NbaTeam    string    `json:"nba_team"`
	CreatedAt  time.Time `json:"created_at"`
}

type AddRosterPlayerResponse struct {
	Player RosterPlayerResponse `json:"player"`
	// TeamSource is "directory" or "client_fallback".
	TeamSource string `json:"team_source"`
}

type RemoveRosterPlayerResponse struct {
	Removed bool `json:"removed"`
}
