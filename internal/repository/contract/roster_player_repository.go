package contract

import (
	"context"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RosterPlayerRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the owner already has the player.
	Create(ctx context.Context, player *entity.RosterPlayer) error
	// DeleteOwned removes id only if it belongs to userId and reports how
	// many rows went away.
	DeleteOwned(ctx context.Context, userId, id uuid.UUID) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RosterPlayer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
