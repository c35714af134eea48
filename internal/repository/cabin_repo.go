package repository

import (
	"context"
	"errors"
	"time"

	"cabinrentals/internal/domain"

	"gorm.io/gorm"
)

var ErrCabinNotFound = errors.New("cabin not found")

type CabinRepository struct {
	db *gorm.DB
}

func NewCabinRepository(db *gorm.DB) *CabinRepository {
	return &CabinRepository{db: db}
}

type cabinModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Slug         string    `gorm:"column:cabin_slug"`
	Status       string    `gorm:"column:status"`
	StreamlineID *int64    `gorm:"column:streamline_id"`
	Bedrooms     int       `gorm:"column:bedrooms"`
	Bathrooms    int       `gorm:"column:bathrooms"`
	Sleeps       int       `gorm:"column:sleeps"`
	Summary      *string   `gorm:"column:summary"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (cabinModel) TableName() string { return "cabins" }

func toDomainCabin(m cabinModel) *domain.Cabin {
	var summary string
	if m.Summary != nil {
		summary = *m.Summary
	}

	return &domain.Cabin{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Status:       domain.CabinStatus(m.Status),
		StreamlineID: m.StreamlineID,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		Sleeps:       m.Sleeps,
		Summary:      summary,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type CabinFilters struct {
	Status string
	Limit  int
	Offset int
}

func (r *CabinRepository) List(ctx context.Context, f CabinFilters) ([]domain.Cabin, int64, error) {
	q := r.db.WithContext(ctx).Model(&cabinModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []cabinModel
	if err := q.Order("name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Cabin, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainCabin(row))
	}
	return out, total, nil
}

func (r *CabinRepository) GetByID(ctx context.Context, id string) (*domain.Cabin, error) {
	var m cabinModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, tx.Error
	}
	return toDomainCabin(m), nil
}

// GetBySlug resolves a published cabin by its slug. Unpublished cabins are
// invisible through this path.
func (r *CabinRepository) GetBySlug(ctx context.Context, slug string) (*domain.Cabin, error) {
	var m cabinModel
	tx := r.db.WithContext(ctx).
		Where("cabin_slug = ? AND status = ?", slug, string(domain.CabinPublished)).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, tx.Error
	}
	return toDomainCabin(m), nil
}
