package mapper

import (
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/model"
	"fantasy-hoops-be/pkg/directory"
)

type RosterPlayerMapper struct{}

func NewRosterPlayerMapper() *RosterPlayerMapper {
	return &RosterPlayerMapper{}
}

func (m *RosterPlayerMapper) ToEntity(r *model.RosterPlayer) *entity.RosterPlayer {
	if r == nil {
		return nil
	}
	return &entity.RosterPlayer{
		Id:         r.Id,
		UserId:     r.UserId,
		PlayerName: r.PlayerName,
		NbaTeam:    r.NbaTeam,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RosterPlayerMapper) ToModel(r *entity.RosterPlayer) *model.RosterPlayer {
	if r == nil {
		return nil
	}
	return &model.RosterPlayer{
		Id:         r.Id,
		UserId:     r.UserId,
		PlayerName: r.PlayerName,
		PlayerKey:  directory.Key(r.PlayerName),
		NbaTeam:    r.NbaTeam,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RosterPlayerMapper) ToEntities(rows []*model.RosterPlayer) []*entity.RosterPlayer {
	entities := make([]*entity.RosterPlayer, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
