package implementation

import (
	"context"
	"errors"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/mapper"
	"portfolio-ai-be/internal/model"
	"portfolio-ai-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aiConfigRepository struct {
	db     *gorm.DB
	mapper *mapper.AiConfigMapper
}

// NewAiConfigRepository creates a new AI config repository
func NewAiConfigRepository(db *gorm.DB) contract.AiConfigRepository {
	return &aiConfigRepository{
		db:     db,
		mapper: mapper.NewAiConfigMapper(),
	}
}

func (r *aiConfigRepository) FindOrCreateDefault(ctx context.Context) (*entity.AiConfig, error) {
	var m model.AiConfig
	defaults := r.mapper.ToModel(entity.NewDefaultAiConfig())

	err := r.db.WithContext(ctx).
		Where(&model.AiConfig{Id: entity.AiConfigSingletonId}).
		Attrs(defaults).
		FirstOrCreate(&m).Error
	if err != nil {
		// Another request may have inserted the row between our read and create
		if retryErr := r.db.WithContext(ctx).First(&m, entity.AiConfigSingletonId).Error; retryErr != nil {
			return nil, err
		}
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *aiConfigRepository) FindForUpdate(ctx context.Context) (*entity.AiConfig, error) {
	var m model.AiConfig
	query := r.db.WithContext(ctx)
	// SQLite has no row locks
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.First(&m, entity.AiConfigSingletonId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.FindOrCreateDefault(ctx)
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *aiConfigRepository) Update(ctx context.Context, config *entity.AiConfig) error {
	config.Id = entity.AiConfigSingletonId
	m := r.mapper.ToModel(config)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*config = *r.mapper.ToEntity(m)
	return nil
}
