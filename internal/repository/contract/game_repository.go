package contract

import (
	"context"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/repository/specification"
)

type GameRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpsertMany inserts games, skipping rows that collide on
	// (game_date, home_team, away_team). Returns the number inserted.
	UpsertMany(ctx context.Context, games []*entity.Game) (int64, error)
}
