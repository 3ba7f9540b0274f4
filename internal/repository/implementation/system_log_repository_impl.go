package implementation

import (
	"context"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/mapper"
	"portfolio-ai-be/internal/model"
	"portfolio-ai-be/internal/repository/contract"
	"portfolio-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type systemLogRepository struct {
	db     *gorm.DB
	mapper *mapper.SystemLogMapper
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &systemLogRepository{
		db:     db,
		mapper: mapper.NewSystemLogMapper(),
	}
}

func (r *systemLogRepository) Create(ctx context.Context, log *entity.SystemLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(log)).Error
}

func (r *systemLogRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error) {
	var models []*model.SystemLog
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.SystemLog, 0, len(models))
	for _, m := range models {
		logs = append(logs, r.mapper.ToEntity(m))
	}
	return logs, nil
}
