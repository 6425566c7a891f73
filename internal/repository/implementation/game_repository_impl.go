package implementation

import (
	"context"

	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/mapper"
	"fantasy-hoops-be/internal/model"
	"fantasy-hoops-be/internal/repository/contract"
	"fantasy-hoops-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

type GameRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameMapper
}

func NewGameRepository(db *gorm.DB) contract.GameRepository {
	return &GameRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error) {
	var models []*model.Game
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GameRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Game{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GameRepositoryImpl) UpsertMany(ctx context.Context, games []*entity.Game) (int64, error) {
	if len(games) == 0 {
		return 0, nil
	}
	models := r.mapper.ToModels(games)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "game_date"},
				{Name: "home_team"},
				{Name: "away_team"},
			},
			DoNothing: true,
		}).
		CreateInBatches(models, upsertBatchSize)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
