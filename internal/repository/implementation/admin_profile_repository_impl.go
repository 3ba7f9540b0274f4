package implementation

import (
	"context"
	"errors"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/mapper"
	"portfolio-ai-be/internal/model"
	"portfolio-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminProfileRepository struct {
	db     *gorm.DB
	mapper *mapper.AdminProfileMapper
}

func NewAdminProfileRepository(db *gorm.DB) contract.AdminProfileRepository {
	return &adminProfileRepository{
		db:     db,
		mapper: mapper.NewAdminProfileMapper(),
	}
}

func (r *adminProfileRepository) FindFirst(ctx context.Context) (*entity.AdminProfile, error) {
	var m model.AdminProfile
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *adminProfileRepository) Save(ctx context.Context, profile *entity.AdminProfile) error {
	if profile.Id == uuid.Nil {
		profile.Id = uuid.New()
	}
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}
