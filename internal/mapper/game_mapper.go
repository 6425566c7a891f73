package mapper

import (
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/model"
)

type GameMapper struct{}

func NewGameMapper() *GameMapper {
	return &GameMapper{}
}

func (m *GameMapper) ToEntity(g *model.Game) *entity.Game {
	if g == nil {
		return nil
	}
	return &entity.Game{
		Id:        g.Id,
		GameDate:  g.GameDate,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Season:    g.Season,
		Venue:     g.Venue,
		SourceURL: g.BbrefURL,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GameMapper) ToModel(g *entity.Game) *model.Game {
	if g == nil {
		return nil
	}
	return &model.Game{
		Id:        g.Id,
		GameDate:  g.GameDate,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Season:    g.Season,
		Venue:     g.Venue,
		BbrefURL:  g.SourceURL,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GameMapper) ToEntities(games []*model.Game) []*entity.Game {
	entities := make([]*entity.Game, len(games))
	for i, g := range games {
		entities[i] = m.ToEntity(g)
	}
	return entities
}

func (m *GameMapper) ToModels(games []*entity.Game) []*model.Game {
	models := make([]*model.Game, len(games))
	for i, g := range games {
		models[i] = m.ToModel(g)
	}
	return models
}
