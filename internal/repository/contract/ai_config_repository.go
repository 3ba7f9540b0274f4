package contract

import (
	"context"

	"portfolio-ai-be/internal/entity"
)

// AiConfigRepository reads and writes the singleton AI configuration
type AiConfigRepository interface {
	// FindOrCreateDefault returns the configuration row, storing the default one on first read
	FindOrCreateDefault(ctx context.Context) (*entity.AiConfig, error)
	// FindForUpdate locks the row when running inside a transaction
	FindForUpdate(ctx context.Context) (*entity.AiConfig, error)
	Update(ctx context.Context, config *entity.AiConfig) error
}
