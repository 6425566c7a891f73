package dto

type PlayerSearchQuery struct {
	Search string `query:"search"`
}

type PlayerResponse struct {
	Name string `json:"name"`
	Team string `json:"team"`
}
