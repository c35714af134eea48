package catalog

import (
	"context"

	"cabinrentals/internal/domain"
	"cabinrentals/internal/repository"
)

// CabinRepository defines the interface for cabin reads.
type CabinRepository interface {
	List(ctx context.Context, f repository.CabinFilters) ([]domain.Cabin, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Cabin, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Cabin, error)
}
