package contract

import (
	"context"

	"portfolio-ai-be/internal/entity"
)

type AdminProfileRepository interface {
	// FindFirst returns nil, nil when no profile has been created
	FindFirst(ctx context.Context) (*entity.AdminProfile, error)
	Save(ctx context.Context, profile *entity.AdminProfile) error
}
