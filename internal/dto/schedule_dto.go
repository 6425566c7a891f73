package dto

type GameCountsQuery struct {
	Start string `query:"start" validate:"required"`
	End   string `query:"end" validate:"required"`
	// Teams is an optional comma-separated list of canonical names that
	// restricts Rankings only.
	Teams string `query:"teams"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TeamRanking struct {
	Team  string `json:"team"`
	Games int    `json:"games"`
}

type GameCountsResponse struct {
	GameCounts map[string]int `json:"gameCounts"`
	TotalGames int            `json:"totalGames"`
	DateRange  DateRange      `json:"dateRange"`
	Rankings   []TeamRanking  `json:"rankings"`
}
