package implementation

import (
	"context"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/mapper"
	"fantasy-hoops-be/internal/model"
	"fantasy-hoops-be/internal/repository/contract"
	"fantasy-hoops-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterPlayerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RosterPlayerMapper
}

func NewRosterPlayerRepository(db *gorm.DB) contract.RosterPlayerRepository {
	return &RosterPlayerRepositoryImpl{
		db:     db,
		mapper: mapper.NewRosterPlayerMapper(),
	}
}

func (r *RosterPlayerRepositoryImpl) Create(ctx context.Context, player *entity.RosterPlayer) error {
	m := r.mapper.ToModel(player)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*player = *r.mapper.ToEntity(m)
	return nil
}

func (r *RosterPlayerRepositoryImpl) DeleteOwned(ctx context.Context, userId, id uuid.UUID) (int64, error) {
	result := applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	).Delete(&model.RosterPlayer{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *RosterPlayerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RosterPlayer, error) {
	var models []*model.RosterPlayer
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RosterPlayerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.RosterPlayer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
