package mapper

import (
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/model"

	"gorm.io/datatypes"
)

type AdminProfileMapper struct{}

func NewAdminProfileMapper() *AdminProfileMapper {
	return &AdminProfileMapper{}
}

func (m *AdminProfileMapper) ToEntity(p *model.AdminProfile) *entity.AdminProfile {
	if p == nil {
		return nil
	}

	skills := make([]string, len(p.Skills))
	copy(skills, p.Skills)

	return &entity.AdminProfile{
		Id:           p.Id,
		Name:         p.Name,
		Position:     p.Position,
		Location:     p.Location,
		Introduction: p.Introduction,
		Education:    p.Education,
		Skills:       skills,
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *AdminProfileMapper) ToModel(p *entity.AdminProfile) *model.AdminProfile {
	if p == nil {
		return nil
	}

	return &model.AdminProfile{
		Id:           p.Id,
		Name:         p.Name,
		Position:     p.Position,
		Location:     p.Location,
		Introduction: p.Introduction,
		Education:    p.Education,
		Skills:       datatypes.JSONSlice[string](p.Skills),
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
