package repository

import (
	"context"
	"errors"

	"cabinrentals/internal/domain"

	"gorm.io/gorm"
)

var ErrMappingNotFound = errors.New("calendar mapping not found")

type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

type mappingModel struct {
	CabinID      string `gorm:"column:cabin_id;primaryKey"`
	CalendarID   int64  `gorm:"column:calendar_id"`
	StreamlineID int64  `gorm:"column:streamline_id"`
}

func (mappingModel) TableName() string { return "cabin_calendar_mapping" }

func toDomainMapping(m mappingModel) *domain.CalendarMapping {
	return &domain.CalendarMapping{
		CabinID:      m.CabinID,
		CalendarID:   m.CalendarID,
		StreamlineID: m.StreamlineID,
	}
}

func (r *MappingRepository) ListAll(ctx context.Context) ([]domain.CalendarMapping, error) {
	var rows []mappingModel
	tx := r.db.WithContext(ctx).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CalendarMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainMapping(row))
	}
	return out, nil
}

func (r *MappingRepository) GetByCabinID(ctx context.Context, cabinID string) (*domain.CalendarMapping, error) {
	var m mappingModel
	tx := r.db.WithContext(ctx).Where("cabin_id = ?", cabinID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, tx.Error
	}
	return toDomainMapping(m), nil
}

func (r *MappingRepository) GetByStreamlineID(ctx context.Context, streamlineID int64) (*domain.CalendarMapping, error) {
	var m mappingModel
	tx := r.db.WithContext(ctx).Where("streamline_id = ?", streamlineID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, tx.Error
	}
	return toDomainMapping(m), nil
}
