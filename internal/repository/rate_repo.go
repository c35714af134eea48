package repository

import (
	"context"
	"time"

	"cabinrentals/internal/domain"

	"gorm.io/gorm"
)

type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

type dailyRateModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	CabinID      *string    `gorm:"column:cabin_id"`
	StreamlineID int64      `gorm:"column:streamline_id"`
	Date         string     `gorm:"column:date"`
	DailyRate    float64    `gorm:"column:daily_rate"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (dailyRateModel) TableName() string { return "daily_rates" }

func (r *RateRepository) ListRange(ctx context.Context, streamlineID int64, from, to string) ([]domain.DailyRate, error) {
	var rows []dailyRateModel
	tx := r.db.WithContext(ctx).
		Where("streamline_id = ? AND date >= ? AND date <= ?", streamlineID, from, to).
		Order("date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.DailyRate, 0, len(rows))
	for _, row := range rows {
		var cabinID string
		if row.CabinID != nil {
			cabinID = *row.CabinID
		}
		out = append(out, domain.DailyRate{
			ID:           row.ID,
			CabinID:      cabinID,
			StreamlineID: row.StreamlineID,
			Date:         row.Date,
			DailyRate:    row.DailyRate,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return out, nil
}
